package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, username, email, full_name, password_hash, hex_color_hash, role,
       saldo, avatar_id, bio, is_active, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.HexColorHash,
		&u.Role, &u.Saldo, &u.AvatarID, &u.Bio, &u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	return u, notFound(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, email, full_name, password_hash, hex_color_hash, role)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.HexColorHash, u.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, repo.ErrConflict
		}
		return models.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByIdentifier(ctx context.Context, usernameOrEmail string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1 OR email=$1`, usernameOrEmail))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	return r.listWhere(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

func (r *usersRepo) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	return r.listWhere(ctx,
		`SELECT `+userColumns+` FROM users WHERE last_login IS NOT NULL AND last_login < $1
		 ORDER BY last_login ASC`, cutoff)
}

func (r *usersRepo) SearchExact(ctx context.Context, query string) ([]models.User, error) {
	return r.listWhere(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username)=lower($1) OR lower(email)=lower($1)`,
		query)
}

func (r *usersRepo) listWhere(ctx context.Context, sql string, args ...any) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM users WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id, fullName, bio string, avatarID int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET full_name=$2, bio=$3, avatar_id=$4, updated_at=now() WHERE id=$1`,
		id, fullName, bio, avatarID,
	)
	if err == nil && tag.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows)
	}
	return err
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, id, passwordHash)
	if err == nil && tag.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows)
	}
	return err
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login=now() WHERE id=$1`, id)
	return err
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err == nil && tag.RowsAffected() == 0 {
		return notFound(pgx.ErrNoRows)
	}
	return err
}
