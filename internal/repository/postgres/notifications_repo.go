package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
)

type notificationsRepo struct{ pool *pgxpool.Pool }

func (r *notificationsRepo) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notifications(id, title, message, sender_id, receiver_id)
		 VALUES($1,$2,$3,$4,$5) RETURNING created_at`,
		n.ID, n.Title, n.Message, n.SenderID, n.ReceiverID,
	).Scan(&n.CreatedAt)
	return n, err
}

// CreateBulk inserts a broadcast fan-out in one batch round trip.
func (r *notificationsRepo) CreateBulk(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range ns {
		id := n.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(
			`INSERT INTO notifications(id, title, message, sender_id, receiver_id)
			 VALUES($1,$2,$3,$4,$5)`,
			id, n.Title, n.Message, n.SenderID, n.ReceiverID,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *notificationsRepo) ListByReceiver(ctx context.Context, userID string) ([]models.Notification, error) {
	return r.listWhere(ctx,
		`SELECT id, title, message, sender_id, receiver_id, created_at
		   FROM notifications WHERE receiver_id=$1 ORDER BY created_at DESC`,
		userID)
}

func (r *notificationsRepo) ListAll(ctx context.Context) ([]models.Notification, error) {
	return r.listWhere(ctx,
		`SELECT id, title, message, sender_id, receiver_id, created_at
		   FROM notifications ORDER BY created_at DESC`)
}

func (r *notificationsRepo) listWhere(ctx context.Context, sql string, args ...any) ([]models.Notification, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.SenderID, &n.ReceiverID, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
