package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories(id, user_id, name) VALUES($1,$2,$3)`, c.ID, c.UserID, c.Name)
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *categoriesRepo) Get(ctx context.Context, ownerID, id string) (models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name FROM categories WHERE id=$1 AND user_id=$2`, id, ownerID,
	).Scan(&c.ID, &c.UserID, &c.Name)
	return c, notFound(err)
}

func (r *categoriesRepo) List(ctx context.Context, ownerID string) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name FROM categories WHERE user_id=$1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) Update(ctx context.Context, c models.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name=$3 WHERE id=$1 AND user_id=$2`, c.ID, c.UserID, c.Name)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}

// Delete relies on the ON DELETE SET NULL constraint to detach the category's
// transactions instead of removing them.
func (r *categoriesRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}
