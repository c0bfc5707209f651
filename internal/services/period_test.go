package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodValid(t *testing.T) {
	for _, p := range []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Period("quarter").Valid())
	assert.False(t, Period("").Valid())
}

func TestPeriodStart(t *testing.T) {
	wednesday := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-18", periodStart(wednesday, PeriodToday).String())
	assert.Equal(t, "2025-06-16", periodStart(wednesday, PeriodWeek).String())
	assert.Equal(t, "2025-06-01", periodStart(wednesday, PeriodMonth).String())
	assert.Equal(t, "2025-01-01", periodStart(wednesday, PeriodYear).String())
}

func TestPeriodStartWeekBoundaries(t *testing.T) {
	// A Monday is its own week start.
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-16", periodStart(monday, PeriodWeek).String())

	// A Sunday belongs to the week that started six days earlier.
	sunday := time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-16", periodStart(sunday, PeriodWeek).String())
}

func TestPeriodStartWeekCrossesMonth(t *testing.T) {
	// Tuesday 2025-07-01: the week reaches back into June.
	tuesday := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-30", periodStart(tuesday, PeriodWeek).String())
}
