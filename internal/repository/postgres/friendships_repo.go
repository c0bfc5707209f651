package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type friendshipsRepo struct{ pool *pgxpool.Pool }

func (r *friendshipsRepo) Create(ctx context.Context, f models.Friendship) (models.Friendship, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = models.FriendPending
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO friendships(id, sender_id, receiver_id, status) VALUES($1,$2,$3,$4)
		 RETURNING created_at`,
		f.ID, f.SenderID, f.ReceiverID, f.Status,
	).Scan(&f.CreatedAt)
	return f, err
}

func (r *friendshipsRepo) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM friendships
		    WHERE status='accepted'
		      AND ((sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)))`,
		a, b,
	).Scan(&exists)
	return exists, err
}

func (r *friendshipsRepo) HasPendingFrom(ctx context.Context, senderID, receiverID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM friendships
		    WHERE sender_id=$1 AND receiver_id=$2 AND status='pending')`,
		senderID, receiverID,
	).Scan(&exists)
	return exists, err
}

func (r *friendshipsRepo) AcceptPending(ctx context.Context, senderID, receiverID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE friendships SET status='accepted'
		  WHERE sender_id=$1 AND receiver_id=$2 AND status='pending'`,
		senderID, receiverID,
	)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}

func (r *friendshipsRepo) ListFriends(ctx context.Context, userID string) ([]models.PublicUser, error) {
	return r.listUsers(ctx,
		`SELECT u.id, u.username, u.avatar_id
		   FROM friendships f
		   JOIN users u ON u.id = CASE WHEN f.sender_id=$1 THEN f.receiver_id ELSE f.sender_id END
		  WHERE f.status='accepted' AND (f.sender_id=$1 OR f.receiver_id=$1)`,
		userID)
}

func (r *friendshipsRepo) ListIncoming(ctx context.Context, userID string) ([]models.PublicUser, error) {
	return r.listUsers(ctx,
		`SELECT u.id, u.username, u.avatar_id
		   FROM friendships f JOIN users u ON u.id = f.sender_id
		  WHERE f.receiver_id=$1 AND f.status='pending'`,
		userID)
}

func (r *friendshipsRepo) ListSent(ctx context.Context, userID string) ([]models.PublicUser, error) {
	return r.listUsers(ctx,
		`SELECT u.id, u.username, u.avatar_id
		   FROM friendships f JOIN users u ON u.id = f.receiver_id
		  WHERE f.sender_id=$1 AND f.status='pending'`,
		userID)
}

func (r *friendshipsRepo) CountAccepted(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM friendships
		  WHERE status='accepted' AND (sender_id=$1 OR receiver_id=$1)`,
		userID,
	).Scan(&n)
	return n, err
}

func (r *friendshipsRepo) listUsers(ctx context.Context, sql string, args ...any) ([]models.PublicUser, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PublicUser
	for rows.Next() {
		var u models.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.AvatarID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
