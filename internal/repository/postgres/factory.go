package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type Repositories struct {
	Users         repo.Users
	Ledger        repo.Ledger
	Categories    repo.Categories
	Friendships   repo.Friendships
	Notifications repo.Notifications
	Profiles      repo.Profiles
	AuditLogs     repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         &usersRepo{pool},
		Ledger:        &ledgerRepo{q: pool, pool: pool},
		Categories:    &categoriesRepo{pool},
		Friendships:   &friendshipsRepo{pool},
		Notifications: &notificationsRepo{pool},
		Profiles:      &profilesRepo{pool},
		AuditLogs:     &auditLogsRepo{pool},
	}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the same queries
// run inside and outside an explicit transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}
