package services

import (
	"context"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type ProfileService struct {
	users    repo.Users
	friends  repo.Friendships
	profiles repo.Profiles
}

func NewProfileService(users repo.Users, friends repo.Friendships, profiles repo.Profiles) *ProfileService {
	return &ProfileService{users: users, friends: friends, profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	count, err := s.friends.CountAccepted(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	payments, err := s.profiles.ListPaymentMethods(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	banks, err := s.profiles.ListBankDetails(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	if payments == nil {
		payments = []models.PaymentMethod{}
	}
	if banks == nil {
		banks = []models.BankDetail{}
	}
	return models.Profile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Email:          u.Email,
		AvatarID:       u.AvatarID,
		Bio:            u.Bio,
		FriendsCount:   count,
		PaymentMethods: payments,
		BankDetails:    banks,
	}, nil
}

type ProfileUpdate struct {
	FullName *string
	Bio      *string
	AvatarID *int
}

// Update patches the mutable profile fields; username and email stay locked.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileUpdate) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	fullName, bio, avatarID := u.FullName, u.Bio, u.AvatarID
	if in.FullName != nil {
		fullName = *in.FullName
	}
	if in.Bio != nil {
		bio = *in.Bio
	}
	if in.AvatarID != nil {
		avatarID = *in.AvatarID
	}
	if len(fullName) > 255 {
		return Invalid("Full name is too long")
	}
	if len(bio) > 500 {
		return Invalid("Bio is too long")
	}
	return s.users.UpdateProfile(ctx, userID, fullName, bio, avatarID)
}

// SetPaymentMethod upserts one of the fixed wallet types; the bool reports
// whether a new row was created.
func (s *ProfileService) SetPaymentMethod(ctx context.Context, userID string, paymentType models.PaymentType, accountNumber string) (bool, error) {
	if paymentType == "" || accountNumber == "" {
		return false, Invalid("Payment type and account number are required")
	}
	if !paymentType.Valid() {
		return false, Invalid("Invalid payment type")
	}
	return s.profiles.UpsertPaymentMethod(ctx, models.PaymentMethod{
		UserID:        userID,
		PaymentType:   paymentType,
		AccountNumber: accountNumber,
	})
}

func (s *ProfileService) SetBankDetail(ctx context.Context, userID, bankName, accountNumber string) (bool, error) {
	if bankName == "" || accountNumber == "" {
		return false, Invalid("Bank name and account number are required")
	}
	return s.profiles.UpsertBankDetail(ctx, models.BankDetail{
		UserID:        userID,
		BankName:      bankName,
		AccountNumber: accountNumber,
	})
}

func (s *ProfileService) RemoveBankDetail(ctx context.Context, userID, bankName string) error {
	return s.profiles.DeleteBankDetail(ctx, userID, bankName)
}
