package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ledgerRepo serves both pool-scoped and transaction-scoped access: InTx hands
// out a copy whose querier is the open pgx.Tx.
type ledgerRepo struct {
	q    querier
	pool *pgxpool.Pool
}

const txnSelect = `
SELECT t.id, t.user_id, t.category_id, t.amount, t.type, t.description, t.date, t.created_at,
       c.id, c.name
  FROM transactions t
  LEFT JOIN categories c ON c.id = t.category_id`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		t       models.Transaction
		catID   *string
		catName *string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Description,
		&t.Date.Time, &t.CreatedAt, &catID, &catName)
	if err != nil {
		return models.Transaction{}, notFound(err)
	}
	if catID != nil {
		t.Category = &models.Category{ID: *catID, UserID: t.UserID, Name: *catName}
	}
	return t, nil
}

func (r *ledgerRepo) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO transactions(id, user_id, category_id, amount, type, description, date)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		t.ID, t.UserID, t.CategoryID, t.Amount, t.Type, t.Description, t.Date.Time,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	return r.GetTransaction(ctx, t.UserID, t.ID)
}

func (r *ledgerRepo) GetTransaction(ctx context.Context, ownerID, id string) (models.Transaction, error) {
	return scanTransaction(r.q.QueryRow(ctx,
		txnSelect+` WHERE t.id=$1 AND t.user_id=$2`, id, ownerID))
}

func (r *ledgerRepo) ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	return r.listWhere(ctx,
		txnSelect+` WHERE t.user_id=$1 ORDER BY t.date DESC, t.created_at DESC`, ownerID)
}

func (r *ledgerRepo) ListTransactionsBetween(ctx context.Context, ownerID string, from, to models.Date) ([]models.Transaction, error) {
	return r.listWhere(ctx,
		txnSelect+` WHERE t.user_id=$1 AND t.date BETWEEN $2 AND $3
		 ORDER BY t.date DESC, t.created_at DESC`,
		ownerID, from.Time, to.Time)
}

func (r *ledgerRepo) listWhere(ctx context.Context, sql string, args ...any) ([]models.Transaction, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ledgerRepo) UpdateTransaction(ctx context.Context, t models.Transaction) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE transactions
		    SET category_id=$3, amount=$4, type=$5, description=$6, date=$7
		  WHERE id=$1 AND user_id=$2`,
		t.ID, t.UserID, t.CategoryID, t.Amount, t.Type, t.Description, t.Date.Time,
	)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}

func (r *ledgerRepo) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM transactions WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}

func (r *ledgerRepo) GetSaldo(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT saldo FROM users WHERE id=$1`, ownerID).Scan(&saldo)
	return saldo, notFound(err)
}

func (r *ledgerRepo) AdjustSaldo(ctx context.Context, ownerID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE users SET saldo = saldo + $2, updated_at=now() WHERE id=$1 RETURNING saldo`,
		ownerID, delta,
	).Scan(&saldo)
	return saldo, notFound(err)
}

// InTx serializes reconciliation per user: it opens a serializable
// transaction, locks the owner's user row, and runs fn against a tx-scoped
// ledger. Any error rolls the whole unit back.
func (r *ledgerRepo) InTx(ctx context.Context, ownerID string, fn func(repo.Ledger) error) error {
	if r.pool == nil {
		// Already inside a transaction.
		return fn(r)
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE id=$1 FOR UPDATE`, ownerID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := fn(&ledgerRepo{q: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
