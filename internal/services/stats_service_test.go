package services

import (
	"context"
	"testing"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2025-06-18: week starts Monday 06-16, month 06-01, year 01-01.
var statsNow = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func newStatsService() (*StatsService, *fakeLedger) {
	ledger := newFakeLedger()
	svc := NewStatsService(ledger)
	svc.now = func() time.Time { return statsNow }
	return svc, ledger
}

func seedTxn(t *testing.T, ledger *fakeLedger, owner, amount string, kind models.TransactionType, day string, cat *models.Category) models.Transaction {
	t.Helper()
	date, err := models.ParseDate(day)
	require.NoError(t, err)
	txn := models.Transaction{
		UserID: owner,
		Amount: decimal.RequireFromString(amount),
		Type:   kind,
		Date:   date,
	}
	if cat != nil {
		txn.CategoryID = &cat.ID
		txn.Category = cat
	}
	created, err := ledger.CreateTransaction(context.Background(), txn)
	require.NoError(t, err)
	_, err = ledger.AdjustSaldo(context.Background(), owner, created.SaldoEffect())
	require.NoError(t, err)
	return created
}

func TestSummaryWindows(t *testing.T) {
	svc, ledger := newStatsService()
	ctx := context.Background()

	seedTxn(t, ledger, "alice", "100.00", models.TxnIncome, "2025-06-18", nil)  // today
	seedTxn(t, ledger, "alice", "30.00", models.TxnExpense, "2025-06-16", nil)  // this week
	seedTxn(t, ledger, "alice", "50.00", models.TxnIncome, "2025-06-05", nil)   // this month
	seedTxn(t, ledger, "alice", "20.00", models.TxnExpense, "2025-02-10", nil)  // this year
	seedTxn(t, ledger, "alice", "999.00", models.TxnIncome, "2024-12-31", nil)  // out of range
	seedTxn(t, ledger, "someone-else", "5.00", models.TxnIncome, "2025-06-18", nil)

	sum, err := svc.Summary(ctx, "alice")
	require.NoError(t, err)

	assert.True(t, sum.Today.Income.Total.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, 1, sum.Today.Income.Count)
	assert.True(t, sum.Today.Expenses.Total.IsZero())

	assert.True(t, sum.ThisWeek.Income.Total.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, sum.ThisWeek.Expenses.Total.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, sum.ThisWeek.Net.Equal(decimal.RequireFromString("70.00")))

	assert.True(t, sum.ThisMonth.Income.Total.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, sum.ThisMonth.Expenses.Total.Equal(decimal.RequireFromString("30.00")))

	assert.True(t, sum.ThisYear.Income.Total.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, sum.ThisYear.Expenses.Total.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, sum.ThisYear.Net.Equal(decimal.RequireFromString("100.00")))

	// Saldo still includes the out-of-range transaction.
	assert.True(t, sum.Saldo.Equal(decimal.RequireFromString("1099.00")), "saldo = %s", sum.Saldo)
}

func TestCategoryStatsPercentages(t *testing.T) {
	svc, ledger := newStatsService()
	food := &models.Category{ID: "cat-food", UserID: "alice", Name: "Food"}
	other := &models.Category{ID: "cat-other", UserID: "alice", Name: "Other"}

	seedTxn(t, ledger, "alice", "50.00", models.TxnExpense, "2025-06-10", food)
	seedTxn(t, ledger, "alice", "25.00", models.TxnExpense, "2025-06-12", food)
	seedTxn(t, ledger, "alice", "225.00", models.TxnExpense, "2025-06-15", other)
	seedTxn(t, ledger, "alice", "400.00", models.TxnIncome, "2025-06-15", nil) // wrong kind, excluded

	stats, err := svc.CategoryStats(context.Background(), "alice", models.TxnExpense, PeriodMonth)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Sorted by total descending.
	assert.Equal(t, "Other", stats[0].CategoryName)
	assert.True(t, stats[0].Percentage.Equal(decimal.RequireFromString("75")))
	assert.Equal(t, "Food", stats[1].CategoryName)
	assert.Equal(t, 2, stats[1].Count)
	assert.True(t, stats[1].Total.Equal(decimal.RequireFromString("75.00")))
	assert.True(t, stats[1].Percentage.Equal(decimal.RequireFromString("25")))

	sumPct := stats[0].Percentage.Add(stats[1].Percentage)
	assert.True(t, sumPct.Equal(decimal.RequireFromString("100")))
}

func TestCategoryStatsUncategorized(t *testing.T) {
	svc, ledger := newStatsService()
	seedTxn(t, ledger, "alice", "10.00", models.TxnExpense, "2025-06-10", nil)

	stats, err := svc.CategoryStats(context.Background(), "alice", "", "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Nil(t, stats[0].CategoryID)
	assert.Equal(t, "Uncategorized", stats[0].CategoryName)
}

func TestCategoryStatsZeroTotal(t *testing.T) {
	svc, ledger := newStatsService()
	seedTxn(t, ledger, "alice", "0.00", models.TxnExpense, "2025-06-10", nil)

	stats, err := svc.CategoryStats(context.Background(), "alice", models.TxnExpense, PeriodMonth)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Percentage.IsZero())
}

func TestCategoryStatsDefaultPeriodIsMonth(t *testing.T) {
	svc, ledger := newStatsService()
	seedTxn(t, ledger, "alice", "10.00", models.TxnExpense, "2025-06-10", nil)
	seedTxn(t, ledger, "alice", "99.00", models.TxnExpense, "2025-05-20", nil) // last month

	stats, err := svc.CategoryStats(context.Background(), "alice", models.TxnExpense, "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Total.Equal(decimal.RequireFromString("10.00")))
}

func TestCategoryStatsRejectsBadParams(t *testing.T) {
	svc, _ := newStatsService()
	var vErr *ValidationError

	_, err := svc.CategoryStats(context.Background(), "alice", "transfer", PeriodMonth)
	require.ErrorAs(t, err, &vErr)

	_, err = svc.CategoryStats(context.Background(), "alice", models.TxnExpense, "quarter")
	require.ErrorAs(t, err, &vErr)
}

func TestMonthlyTrendsZeroFilled(t *testing.T) {
	svc, ledger := newStatsService()
	seedTxn(t, ledger, "alice", "100.00", models.TxnIncome, "2025-03-05", nil)
	seedTxn(t, ledger, "alice", "40.00", models.TxnExpense, "2025-03-20", nil)
	seedTxn(t, ledger, "alice", "10.00", models.TxnExpense, "2025-07-01", nil)

	trends, err := svc.MonthlyTrends(context.Background(), "alice", "2025")
	require.NoError(t, err)
	require.Len(t, trends, 12)

	assert.Equal(t, 3, trends[2].Month)
	assert.Equal(t, "March", trends[2].MonthName)
	assert.True(t, trends[2].IncomeTotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, trends[2].ExpensesTotal.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, trends[2].Net.Equal(decimal.RequireFromString("60.00")))

	assert.True(t, trends[6].Net.Equal(decimal.RequireFromString("-10.00")))

	for _, m := range []int{0, 1, 3, 4, 5, 7, 8, 9, 10, 11} {
		assert.True(t, trends[m].IncomeTotal.IsZero(), "month %d", m+1)
		assert.True(t, trends[m].ExpensesTotal.IsZero(), "month %d", m+1)
	}
}

func TestMonthlyTrendsDefaultsToCurrentYear(t *testing.T) {
	svc, ledger := newStatsService()
	seedTxn(t, ledger, "alice", "10.00", models.TxnIncome, "2025-01-15", nil)
	seedTxn(t, ledger, "alice", "99.00", models.TxnIncome, "2024-01-15", nil)

	trends, err := svc.MonthlyTrends(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.True(t, trends[0].IncomeTotal.Equal(decimal.RequireFromString("10.00")))
}

func TestMonthlyTrendsBadYear(t *testing.T) {
	svc, _ := newStatsService()
	_, err := svc.MonthlyTrends(context.Background(), "alice", "20x5")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
