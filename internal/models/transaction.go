package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnIncome  TransactionType = "income"
	TxnExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TxnIncome || t == TxnExpense
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  *string         `json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaldoEffect is the transaction's contribution to its owner's running
// balance: +amount for income, -amount for expense.
func (t Transaction) SaldoEffect() decimal.Decimal {
	if t.Type == TxnIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

type Category struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
