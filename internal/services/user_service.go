package services

import (
	"context"
	"errors"
	"strings"

	"github.com/pawcat-app/pawcat-backend/internal/auth"
	"github.com/pawcat-app/pawcat-backend/internal/metrics"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type UserService struct {
	users    repo.Users
	tm       *auth.TokenManager
	attempts *auth.AttemptLimiter
}

func NewUserService(users repo.Users, tm *auth.TokenManager, attempts *auth.AttemptLimiter) *UserService {
	return &UserService{users: users, tm: tm, attempts: attempts}
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Password2 string
	HexColor string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if in.Password != in.Password2 {
		return models.User{}, InvalidField("password", "Passwords do not match")
	}
	if len(in.Password) < 8 {
		return models.User{}, InvalidField("password", "must be at least 8 characters")
	}

	u := models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		FullName: strings.TrimSpace(in.FullName),
		Role:     models.RoleUser,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, Invalid(err.Error())
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	if in.HexColor != "" {
		colorHash, err := auth.HashColor(in.HexColor)
		if err != nil {
			return models.User{}, err
		}
		u.HexColorHash = &colorHash
	}

	created, err := s.users.Create(ctx, u)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, Invalid("username or email already taken")
	}
	return created, err
}

type TokenPair struct {
	Access  string
	Refresh string
}

// Login verifies credentials under the per-identifier attempt limit and
// issues a cookie token pair. Failures count toward the lockout regardless of
// whether the identifier exists.
func (s *UserService) Login(ctx context.Context, identifier, password string) (models.User, TokenPair, error) {
	key := "login_attempts_" + strings.ToLower(identifier)
	if s.attempts.IsLimited(key) {
		return models.User{}, TokenPair{}, ErrRateLimited
	}

	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil || auth.VerifyPassword(password, u.PasswordHash) != nil {
		s.attempts.Fail(key)
		metrics.LoginFailures.Inc()
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	s.attempts.Reset(key)

	access, refresh, _, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		return models.User{}, TokenPair{}, err
	}
	return u, TokenPair{Access: access, Refresh: refresh}, nil
}

// Logout revokes the refresh token so it cannot mint new access tokens.
func (s *UserService) Logout(refreshToken string) error {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return Invalid("Invalid refresh token")
	}
	s.tm.Revoke(claims)
	return nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return "", Invalid("Invalid refresh token")
	}
	access, _, err := s.tm.GenerateAccess(claims.UserID, claims.Role)
	return access, err
}

// ForgotPassword resets the password after the caller proves knowledge of the
// account's security color. Attempt-limited like login.
func (s *UserService) ForgotPassword(ctx context.Context, identifier, hexColor, newPassword string) error {
	key := "forgot_password_attempts_" + strings.ToLower(identifier)
	if s.attempts.IsLimited(key) {
		return ErrRateLimited
	}

	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		s.attempts.Fail(key)
		return Invalid("Verification failed")
	}
	if u.HexColorHash == nil || auth.VerifyColor(hexColor, *u.HexColorHash) != nil {
		s.attempts.Fail(key)
		return Invalid("Verification failed")
	}
	s.attempts.Reset(key)

	if newPassword == "" {
		return Invalid("New password is required")
	}
	if len(newPassword) < 8 {
		return InvalidField("new_password", "must be at least 8 characters")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}
