package services

import (
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// periodStart returns the first day of the window that ends at now. Weeks
// start on Monday, months on day 1, years on Jan 1.
func periodStart(now time.Time, p Period) models.Date {
	today := models.DateOf(now)
	switch p {
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		return models.DateOf(today.AddDate(0, 0, -offset))
	case PeriodMonth:
		return models.NewDate(now.Year(), now.Month(), 1)
	case PeriodYear:
		return models.NewDate(now.Year(), time.January, 1)
	default:
		return today
	}
}
