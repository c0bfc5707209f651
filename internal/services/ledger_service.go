package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcat-app/pawcat-backend/internal/metrics"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/pawcat-app/pawcat-backend/internal/worker"
	"github.com/shopspring/decimal"
)

// LedgerService owns transaction CRUD and keeps the owner's saldo in lockstep
// with every mutation. All writes go through Ledger.InTx so the ledger row and
// the saldo commit as one unit.
type LedgerService struct {
	ledger repo.Ledger
	cats   repo.Categories
	audit  repo.AuditLogs
	wp     *worker.Pool
}

func NewLedgerService(l repo.Ledger, c repo.Categories, a repo.AuditLogs, wp *worker.Pool) *LedgerService {
	return &LedgerService{ledger: l, cats: c, audit: a, wp: wp}
}

// TransactionInput is a partial payload: nil fields are left unchanged on
// update and are required-checked on create.
type TransactionInput struct {
	Amount      *decimal.Decimal
	Type        *models.TransactionType
	Description *string
	Date        *models.Date
	CategoryID  *string
}

func (s *LedgerService) List(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	return s.ledger.ListTransactions(ctx, ownerID)
}

func (s *LedgerService) Create(ctx context.Context, ownerID string, in TransactionInput) (models.Transaction, error) {
	var fields []FieldError
	if in.Amount == nil {
		fields = append(fields, FieldError{Field: "amount", Msg: "required"})
	} else if in.Amount.IsNegative() {
		fields = append(fields, FieldError{Field: "amount", Msg: "must not be negative"})
	}
	if in.Type == nil {
		fields = append(fields, FieldError{Field: "type", Msg: "required"})
	} else if !in.Type.Valid() {
		fields = append(fields, FieldError{Field: "type", Msg: "must be income or expense"})
	}
	if in.Date == nil {
		fields = append(fields, FieldError{Field: "date", Msg: "required"})
	}
	if len(fields) > 0 {
		return models.Transaction{}, &ValidationError{Msg: "Invalid data", Fields: fields}
	}
	if err := s.checkCategory(ctx, ownerID, in.CategoryID); err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		UserID:     ownerID,
		CategoryID: in.CategoryID,
		Amount:     *in.Amount,
		Type:       *in.Type,
		Date:       *in.Date,
	}
	if in.Description != nil {
		t.Description = *in.Description
	}

	err := s.ledger.InTx(ctx, ownerID, func(l repo.Ledger) error {
		created, err := l.CreateTransaction(ctx, t)
		if err != nil {
			return err
		}
		t = created
		_, err = l.AdjustSaldo(ctx, ownerID, t.SaldoEffect())
		return err
	})
	if err != nil {
		metrics.TransactionsFailed.Inc()
		return models.Transaction{}, err
	}

	metrics.TransactionsTotal.WithLabelValues(string(t.Type)).Inc()
	s.auditAsync(t.ID, "created", fmt.Sprintf("%s %s", t.Type, t.Amount))
	return t, nil
}

// Update applies a partial edit and reconciles saldo by reversing the old
// stored effect before applying the new one, inside one locked transaction.
func (s *LedgerService) Update(ctx context.Context, ownerID, id string, in TransactionInput) (models.Transaction, error) {
	if in.Amount != nil && in.Amount.IsNegative() {
		return models.Transaction{}, InvalidField("amount", "must not be negative")
	}
	if in.Type != nil && !in.Type.Valid() {
		return models.Transaction{}, InvalidField("type", "must be income or expense")
	}
	if err := s.checkCategory(ctx, ownerID, in.CategoryID); err != nil {
		return models.Transaction{}, err
	}

	var updated models.Transaction
	err := s.ledger.InTx(ctx, ownerID, func(l repo.Ledger) error {
		old, err := l.GetTransaction(ctx, ownerID, id)
		if err != nil {
			return err
		}

		next := old
		if in.Amount != nil {
			next.Amount = *in.Amount
		}
		if in.Type != nil {
			next.Type = *in.Type
		}
		if in.Description != nil {
			next.Description = *in.Description
		}
		if in.Date != nil {
			next.Date = *in.Date
		}
		if in.CategoryID != nil {
			next.CategoryID = in.CategoryID
		}

		if err := l.UpdateTransaction(ctx, next); err != nil {
			return err
		}
		// Reverse the old effect, then apply the new one.
		delta := old.SaldoEffect().Neg().Add(next.SaldoEffect())
		if _, err := l.AdjustSaldo(ctx, ownerID, delta); err != nil {
			return err
		}
		updated, err = l.GetTransaction(ctx, ownerID, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.TransactionsFailed.Inc()
		}
		return models.Transaction{}, err
	}

	s.auditAsync(id, "updated", fmt.Sprintf("%s %s", updated.Type, updated.Amount))
	return updated, nil
}

func (s *LedgerService) Delete(ctx context.Context, ownerID, id string) error {
	err := s.ledger.InTx(ctx, ownerID, func(l repo.Ledger) error {
		old, err := l.GetTransaction(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if _, err := l.AdjustSaldo(ctx, ownerID, old.SaldoEffect().Neg()); err != nil {
			return err
		}
		return l.DeleteTransaction(ctx, ownerID, id)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.TransactionsFailed.Inc()
		}
		return err
	}

	s.auditAsync(id, "deleted", "")
	return nil
}

// checkCategory rejects a category reference the owner does not hold. The
// miss is reported as a field error, not NotFound, since the transaction
// payload is what is wrong.
func (s *LedgerService) checkCategory(ctx context.Context, ownerID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.cats.Get(ctx, ownerID, *categoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return InvalidField("category_id", "unknown category")
		}
		return err
	}
	return nil
}

func (s *LedgerService) auditAsync(entityID, action, details string) {
	if s.audit == nil || s.wp == nil {
		return
	}
	var det map[string]any
	if details != "" {
		det = map[string]any{"message": details}
	}
	id := entityID
	s.wp.Submit(func() {
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "transaction",
			EntityID:   &id,
			Action:     action,
			Details:    det,
		})
	})
}

// Category CRUD, owner-scoped like everything else.

func (s *LedgerService) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	return s.cats.List(ctx, ownerID)
}

func (s *LedgerService) CreateCategory(ctx context.Context, ownerID, name string) (models.Category, error) {
	if err := validCategoryName(name); err != nil {
		return models.Category{}, err
	}
	return s.cats.Create(ctx, models.Category{UserID: ownerID, Name: name})
}

func (s *LedgerService) UpdateCategory(ctx context.Context, ownerID, id, name string) (models.Category, error) {
	if err := validCategoryName(name); err != nil {
		return models.Category{}, err
	}
	c := models.Category{ID: id, UserID: ownerID, Name: name}
	if err := s.cats.Update(ctx, c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *LedgerService) DeleteCategory(ctx context.Context, ownerID, id string) error {
	return s.cats.Delete(ctx, ownerID, id)
}

func validCategoryName(name string) error {
	if name == "" {
		return InvalidField("name", "required")
	}
	if len(name) > 50 {
		return InvalidField("name", "too long")
	}
	return nil
}
