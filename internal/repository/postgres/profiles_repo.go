package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
)

type profilesRepo struct{ pool *pgxpool.Pool }

func (r *profilesRepo) UpsertPaymentMethod(ctx context.Context, pm models.PaymentMethod) (bool, error) {
	var created bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payment_methods(id, user_id, payment_type, account_number)
		 VALUES($1,$2,$3,$4)
		 ON CONFLICT (user_id, payment_type)
		 DO UPDATE SET account_number = EXCLUDED.account_number
		 RETURNING (xmax = 0)`,
		uuid.NewString(), pm.UserID, pm.PaymentType, pm.AccountNumber,
	).Scan(&created)
	return created, err
}

func (r *profilesRepo) ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, payment_type, account_number
		   FROM payment_methods WHERE user_id=$1 ORDER BY payment_type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentMethod
	for rows.Next() {
		var pm models.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.UserID, &pm.PaymentType, &pm.AccountNumber); err != nil {
			return nil, err
		}
		out = append(out, pm)
	}
	return out, rows.Err()
}

func (r *profilesRepo) UpsertBankDetail(ctx context.Context, bd models.BankDetail) (bool, error) {
	var created bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO bank_details(id, user_id, bank_name, account_number)
		 VALUES($1,$2,$3,$4)
		 ON CONFLICT (user_id, bank_name)
		 DO UPDATE SET account_number = EXCLUDED.account_number
		 RETURNING (xmax = 0)`,
		uuid.NewString(), bd.UserID, bd.BankName, bd.AccountNumber,
	).Scan(&created)
	return created, err
}

func (r *profilesRepo) DeleteBankDetail(ctx context.Context, userID, bankName string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM bank_details WHERE user_id=$1 AND bank_name=$2`, userID, bankName)
	if err == nil && tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return err
}

func (r *profilesRepo) ListBankDetails(ctx context.Context, userID string) ([]models.BankDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, bank_name, account_number
		   FROM bank_details WHERE user_id=$1 ORDER BY bank_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BankDetail
	for rows.Next() {
		var bd models.BankDetail
		if err := rows.Scan(&bd.ID, &bd.UserID, &bd.BankName, &bd.AccountNumber); err != nil {
			return nil, err
		}
		out = append(out, bd)
	}
	return out, rows.Err()
}
