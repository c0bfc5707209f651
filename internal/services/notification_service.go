package services

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/pawcat-app/pawcat-backend/internal/worker"
)

type NotificationService struct {
	notes repo.Notifications
	users repo.Users
	wp    *worker.Pool
}

func NewNotificationService(notes repo.Notifications, users repo.Users, wp *worker.Pool) *NotificationService {
	return &NotificationService{notes: notes, users: users, wp: wp}
}

// Send delivers a notification to one active user, or fans out to every
// active user (except the sender) when receiverID is empty. The broadcast
// insert runs on the worker pool.
func (s *NotificationService) Send(ctx context.Context, senderID, title, message, receiverID string) (broadcast bool, err error) {
	title = sanitize(title)
	message = sanitize(message)
	if title == "" || message == "" {
		return false, Invalid("Title and message are required")
	}

	if receiverID == "" {
		ids, err := s.users.ListActiveIDs(ctx)
		if err != nil {
			return false, err
		}
		var batch []models.Notification
		for _, id := range ids {
			if id == senderID {
				continue
			}
			batch = append(batch, models.Notification{
				Title:      title,
				Message:    message,
				SenderID:   senderID,
				ReceiverID: id,
			})
		}
		s.wp.Submit(func() {
			if err := s.notes.CreateBulk(context.Background(), batch); err != nil {
				slog.Error("notification broadcast", "err", err)
			}
		})
		return true, nil
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return false, err
	}
	if !receiver.IsActive {
		return false, ErrNotFound
	}
	if receiver.ID == senderID {
		return false, Invalid("Cannot send notification to yourself")
	}
	_, err = s.notes.Create(ctx, models.Notification{
		Title:      title,
		Message:    message,
		SenderID:   senderID,
		ReceiverID: receiver.ID,
	})
	return false, err
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notes.ListByReceiver(ctx, userID)
}

func (s *NotificationService) ListAll(ctx context.Context) ([]models.Notification, error) {
	return s.notes.ListAll(ctx)
}

// Titles and messages are user-authored and rendered by web clients, so they
// are stored HTML-escaped.
func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
