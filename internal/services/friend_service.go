package services

import (
	"context"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type FriendService struct {
	friends repo.Friendships
	users   repo.Users
}

func NewFriendService(friends repo.Friendships, users repo.Users) *FriendService {
	return &FriendService{friends: friends, users: users}
}

func (s *FriendService) Add(ctx context.Context, senderID, receiverID string) error {
	if receiverID == "" {
		return Invalid("Receiver ID is required")
	}
	if receiverID == senderID {
		return Invalid("Cannot add yourself as friend")
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return err
	}

	already, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if already {
		return Invalid("Already friends")
	}
	pending, err := s.friends.HasPendingFrom(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if pending {
		return Invalid("Already sent a request")
	}

	_, err = s.friends.Create(ctx, models.Friendship{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendPending,
	})
	return err
}

func (s *FriendService) Accept(ctx context.Context, receiverID, senderID string) error {
	if senderID == "" {
		return Invalid("Sender ID is required")
	}
	return s.friends.AcceptPending(ctx, senderID, receiverID)
}

// Search matches users by exact username or email, case-insensitive.
func (s *FriendService) Search(ctx context.Context, query string) ([]models.PublicUser, error) {
	if query == "" {
		return nil, Invalid("Search query is required")
	}
	users, err := s.users.SearchExact(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

type FriendsList struct {
	Friends         []models.PublicUser `json:"friends"`
	PendingRequests []models.PublicUser `json:"pending_requests"`
	SentRequests    []models.PublicUser `json:"sent_requests"`
}

func (s *FriendService) List(ctx context.Context, userID string) (FriendsList, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return FriendsList{}, err
	}
	incoming, err := s.friends.ListIncoming(ctx, userID)
	if err != nil {
		return FriendsList{}, err
	}
	sent, err := s.friends.ListSent(ctx, userID)
	if err != nil {
		return FriendsList{}, err
	}
	return FriendsList{
		Friends:         orEmpty(friends),
		PendingRequests: orEmpty(incoming),
		SentRequests:    orEmpty(sent),
	}, nil
}

func orEmpty(users []models.PublicUser) []models.PublicUser {
	if users == nil {
		return []models.PublicUser{}
	}
	return users
}
