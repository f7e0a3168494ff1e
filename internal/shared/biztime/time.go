// Package biztime computes business-calendar boundaries.
// Storage and transport stay in UTC; the business timezone is only used to
// decide where a day, week, month or year starts.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Shanghai"

	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone once. An empty tz selects Asia/Shanghai.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, initialising the default if needed.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to load default timezone: %v", err))
		}
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// BusinessDate returns the business calendar date of t as midnight UTC.
// Record validity windows (start_date, end_date) are stored in this form.
func BusinessDate(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// StartOfDayUTC returns business midnight of t's day as a UTC instant.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last nanosecond of t's business day.
func EndOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 23, 59, 59, 999999999, Location()).UTC()
}

// StartOfWeekUTC returns business midnight of the Sunday starting t's week.
func StartOfWeekUTC(t time.Time) time.Time {
	b := t.In(Location())
	sunday := time.Date(b.Year(), b.Month(), b.Day()-int(b.Weekday()), 0, 0, 0, 0, Location())
	return sunday.UTC()
}

// EndOfWeekUTC returns the last nanosecond of the Saturday ending t's week.
func EndOfWeekUTC(t time.Time) time.Time {
	return StartOfWeekUTC(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).UTC()
}

func EndOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, Location()).Add(-time.Nanosecond).UTC()
}

func StartOfYearUTC(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, Location()).UTC()
}

func EndOfYearUTC(year int) time.Time {
	return time.Date(year+1, 1, 1, 0, 0, 0, 0, Location()).Add(-time.Nanosecond).UTC()
}

// ToBizTimezone converts t for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// ParseDateInBizTimezone parses YYYY-MM-DD as business midnight and returns
// the UTC instant.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatBizDate formats an instant as its business calendar date.
func FormatBizDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}
