package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// StatsService derives read-only aggregates from the ledger. It reduces an
// owner-filtered, date-bounded fetch in memory rather than building dynamic
// SQL aggregates.
type StatsService struct {
	ledger repo.Ledger
	now    func() time.Time
}

func NewStatsService(l repo.Ledger) *StatsService {
	return &StatsService{ledger: l, now: time.Now}
}

type SummaryBucket struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type PeriodSummary struct {
	Income   SummaryBucket   `json:"income"`
	Expenses SummaryBucket   `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type Summary struct {
	Today     PeriodSummary   `json:"today"`
	ThisWeek  PeriodSummary   `json:"this_week"`
	ThisMonth PeriodSummary   `json:"this_month"`
	ThisYear  PeriodSummary   `json:"this_year"`
	Saldo     decimal.Decimal `json:"saldo"`
}

type CategoryStat struct {
	CategoryID   *string         `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
	Percentage   decimal.Decimal `json:"percentage"`
}

type MonthlyTrend struct {
	Month         int             `json:"month"`
	MonthName     string          `json:"month_name"`
	IncomeTotal   decimal.Decimal `json:"income_total"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Net           decimal.Decimal `json:"net"`
}

// Summary aggregates income/expense totals and counts for the four calendar
// windows ending today, plus the current saldo.
func (s *StatsService) Summary(ctx context.Context, ownerID string) (Summary, error) {
	now := s.now()
	today := models.DateOf(now)
	weekStart := periodStart(now, PeriodWeek)
	monthStart := periodStart(now, PeriodMonth)
	yearStart := periodStart(now, PeriodYear)

	// The week window can reach into the previous year in early January, so
	// fetch from whichever boundary is earliest.
	fetchFrom := yearStart
	if weekStart.Time.Before(fetchFrom.Time) {
		fetchFrom = weekStart
	}
	txs, err := s.ledger.ListTransactionsBetween(ctx, ownerID, fetchFrom, today)
	if err != nil {
		return Summary{}, err
	}
	saldo, err := s.ledger.GetSaldo(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Today:     summarize(txs, models.DateOf(now), today),
		ThisWeek:  summarize(txs, weekStart, today),
		ThisMonth: summarize(txs, monthStart, today),
		ThisYear:  summarize(txs, yearStart, today),
		Saldo:     saldo,
	}, nil
}

func summarize(txs []models.Transaction, from, to models.Date) PeriodSummary {
	ps := PeriodSummary{
		Income:   SummaryBucket{Total: decimal.Zero},
		Expenses: SummaryBucket{Total: decimal.Zero},
	}
	for _, t := range txs {
		if !t.Date.In(from, to) {
			continue
		}
		switch t.Type {
		case models.TxnIncome:
			ps.Income.Total = ps.Income.Total.Add(t.Amount)
			ps.Income.Count++
		case models.TxnExpense:
			ps.Expenses.Total = ps.Expenses.Total.Add(t.Amount)
			ps.Expenses.Count++
		}
	}
	ps.Net = ps.Income.Total.Sub(ps.Expenses.Total)
	return ps
}

// CategoryStats groups the owner's transactions of one kind by category over
// the selected window (default: first of this month through today). Shares
// are rounded to two decimals and all zero when the grand total is zero.
func (s *StatsService) CategoryStats(ctx context.Context, ownerID string, kind models.TransactionType, period Period) ([]CategoryStat, error) {
	if kind == "" {
		kind = models.TxnExpense
	}
	if !kind.Valid() {
		return nil, InvalidField("type", "must be income or expense")
	}
	if period == "" {
		period = PeriodMonth
	}
	if !period.Valid() {
		return nil, InvalidField("period", "must be today, week, month or year")
	}

	now := s.now()
	txs, err := s.ledger.ListTransactionsBetween(ctx, ownerID, periodStart(now, period), models.DateOf(now))
	if err != nil {
		return nil, err
	}

	type key struct{ id string }
	byCat := make(map[key]*CategoryStat)
	grand := decimal.Zero
	for _, t := range txs {
		if t.Type != kind {
			continue
		}
		k := key{}
		if t.CategoryID != nil {
			k.id = *t.CategoryID
		}
		stat, ok := byCat[k]
		if !ok {
			stat = &CategoryStat{CategoryName: "Uncategorized", Total: decimal.Zero}
			if t.Category != nil {
				id := t.Category.ID
				stat.CategoryID = &id
				stat.CategoryName = t.Category.Name
			}
			byCat[k] = stat
		}
		stat.Total = stat.Total.Add(t.Amount)
		stat.Count++
		grand = grand.Add(t.Amount)
	}

	hundred := decimal.NewFromInt(100)
	out := make([]CategoryStat, 0, len(byCat))
	for _, stat := range byCat {
		if grand.IsZero() {
			stat.Percentage = decimal.Zero
		} else {
			stat.Percentage = stat.Total.Div(grand).Mul(hundred).Round(2)
		}
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

// MonthlyTrends returns exactly twelve entries for the given year, zero-filled
// for months without transactions.
func (s *StatsService) MonthlyTrends(ctx context.Context, ownerID, yearParam string) ([]MonthlyTrend, error) {
	year := s.now().Year()
	if yearParam != "" {
		y, err := strconv.Atoi(yearParam)
		if err != nil {
			return nil, InvalidField("year", "must be an integer")
		}
		year = y
	}

	txs, err := s.ledger.ListTransactionsBetween(ctx, ownerID,
		models.NewDate(year, time.January, 1), models.NewDate(year, time.December, 31))
	if err != nil {
		return nil, err
	}

	trends := make([]MonthlyTrend, 12)
	for m := 0; m < 12; m++ {
		trends[m] = MonthlyTrend{
			Month:         m + 1,
			MonthName:     time.Month(m + 1).String(),
			IncomeTotal:   decimal.Zero,
			ExpensesTotal: decimal.Zero,
			Net:           decimal.Zero,
		}
	}
	for _, t := range txs {
		m := int(t.Date.Month()) - 1
		switch t.Type {
		case models.TxnIncome:
			trends[m].IncomeTotal = trends[m].IncomeTotal.Add(t.Amount)
		case models.TxnExpense:
			trends[m].ExpensesTotal = trends[m].ExpensesTotal.Add(t.Amount)
		}
	}
	for m := range trends {
		trends[m].Net = trends[m].IncomeTotal.Sub(trends[m].ExpensesTotal)
	}
	return trends, nil
}
