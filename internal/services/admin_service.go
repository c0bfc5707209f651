package services

import (
	"context"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/pawcat-app/pawcat-backend/internal/worker"
)

// inactivityWindow is how long a user may go without logging in before the
// admin dashboard lists them as inactive.
const inactivityWindow = 5 // months

type AdminService struct {
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
	now   func() time.Time
}

func NewAdminService(users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *AdminService {
	return &AdminService{users: users, audit: audit, wp: wp, now: time.Now}
}

// AdminUser is the admin dashboard's view of an account. No saldo, no hashes.
type AdminUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	AvatarID  int        `json:"avatar_id"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

func adminView(users []models.User) []AdminUser {
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			FullName:  u.FullName,
			AvatarID:  u.AvatarID,
			IsActive:  u.IsActive,
			LastLogin: u.LastLogin,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}

func (s *AdminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return adminView(users), nil
}

func (s *AdminService) ListInactiveUsers(ctx context.Context) ([]AdminUser, error) {
	cutoff := s.now().AddDate(0, -inactivityWindow, 0)
	users, err := s.users.ListInactiveSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return adminView(users), nil
}

// DeleteUser removes a regular account. Admin accounts cannot be deleted this
// way.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	id := userID
	s.wp.Submit(func() {
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "user",
			EntityID:   &id,
			Action:     "deleted",
			Details:    map[string]any{"by": actorID},
		})
	})
	return nil
}
