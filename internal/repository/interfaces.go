package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned for rows that do not exist, including rows that
// exist but belong to another owner. Callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("already exists")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByIdentifier(ctx context.Context, usernameOrEmail string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListInactiveSince(ctx context.Context, cutoff time.Time) ([]models.User, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	SearchExact(ctx context.Context, query string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, bio string, avatarID int) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Ledger covers transactions and the owner's running balance. InTx runs fn
// against a transaction-scoped Ledger with the owner's user row locked, so
// reversal-then-apply reconciliation is serial per user and the ledger row and
// saldo commit together or not at all.
type Ledger interface {
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, ownerID, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error)
	ListTransactionsBetween(ctx context.Context, ownerID string, from, to models.Date) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, t models.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	GetSaldo(ctx context.Context, ownerID string) (decimal.Decimal, error)
	AdjustSaldo(ctx context.Context, ownerID string, delta decimal.Decimal) (decimal.Decimal, error)

	InTx(ctx context.Context, ownerID string, fn func(Ledger) error) error
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Get(ctx context.Context, ownerID, id string) (models.Category, error)
	List(ctx context.Context, ownerID string) ([]models.Category, error)
	Update(ctx context.Context, c models.Category) error
	// Delete nulls category_id on dependent transactions rather than
	// cascading into them.
	Delete(ctx context.Context, ownerID, id string) error
}

type Friendships interface {
	Create(ctx context.Context, f models.Friendship) (models.Friendship, error)
	AreFriends(ctx context.Context, a, b string) (bool, error)
	HasPendingFrom(ctx context.Context, senderID, receiverID string) (bool, error)
	AcceptPending(ctx context.Context, senderID, receiverID string) error
	ListFriends(ctx context.Context, userID string) ([]models.PublicUser, error)
	ListIncoming(ctx context.Context, userID string) ([]models.PublicUser, error)
	ListSent(ctx context.Context, userID string) ([]models.PublicUser, error)
	CountAccepted(ctx context.Context, userID string) (int, error)
}

type Notifications interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
	CreateBulk(ctx context.Context, ns []models.Notification) error
	ListByReceiver(ctx context.Context, userID string) ([]models.Notification, error)
	ListAll(ctx context.Context) ([]models.Notification, error)
}

type Profiles interface {
	UpsertPaymentMethod(ctx context.Context, pm models.PaymentMethod) (created bool, err error)
	ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	UpsertBankDetail(ctx context.Context, bd models.BankDetail) (created bool, err error)
	DeleteBankDetail(ctx context.Context, userID, bankName string) error
	ListBankDetails(ctx context.Context, userID string) ([]models.BankDetail, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
