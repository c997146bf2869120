package domain

import (
	"fmt"
	"time"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
)

// Period is a parsed reporting-period token: "YYYY" for annual statements or
// "YYYY-MM" for monthly ones (e.g. VAT returns).
type Period struct {
	Token string
	Year  int
	Month time.Month // 0 for annual periods
}

// ParsePeriod validates and parses a period token. The token format must be
// checked at the facade boundary before any strategy work begins.
func ParsePeriod(token string) (Period, error) {
	switch len(token) {
	case 4:
		t, err := time.Parse("2006", token)
		if err != nil {
			return Period{}, fmt.Errorf("%w: invalid period token %q", apperrors.ErrValidation, token)
		}
		return Period{Token: token, Year: t.Year()}, nil
	case 7:
		t, err := time.Parse("2006-01", token)
		if err != nil {
			return Period{}, fmt.Errorf("%w: invalid period token %q", apperrors.ErrValidation, token)
		}
		return Period{Token: token, Year: t.Year(), Month: t.Month()}, nil
	default:
		return Period{}, fmt.Errorf("%w: period must be YYYY or YYYY-MM, got %q", apperrors.ErrValidation, token)
	}
}

// IsMonthly reports whether the period covers a single calendar month.
func (p Period) IsMonthly() bool {
	return p.Month != 0
}

// Window returns the inclusive [start, end] date range covered by the
// period, in UTC.
func (p Period) Window() (time.Time, time.Time) {
	if p.IsMonthly() {
		start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return start, end
	}
	start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(p.Year, time.December, 31, 23, 59, 59, 999999999, time.UTC)
	return start, end
}

// DueDate derives the filing deadline for this period under the given
// country configuration. Annual statements fall due on the configured
// deadline month-day of the following year; monthly declarations fall due on
// the deadline's day-of-month in the month after the period, clamped to the
// target month's length.
func (p Period) DueDate(cfg CountryConfig) time.Time {
	var month, day int
	if _, err := fmt.Sscanf(cfg.FilingDeadline, "%2d-%2d", &month, &day); err != nil {
		// Malformed reference data; fall back to end of the fiscal window.
		_, end := p.Window()
		return end.Truncate(24 * time.Hour)
	}

	if p.IsMonthly() {
		next := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		due := time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.UTC)
		if due.Month() != next.Month() {
			// Day overflowed the month (e.g. 31st in February).
			due = time.Date(next.Year(), next.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		}
		return due
	}

	return time.Date(p.Year+1, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
