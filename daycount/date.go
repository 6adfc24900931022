// Package daycount implements civil-date arithmetic and the four ISDA
// day-count conventions used to convert a date pair into a year fraction,
// plus weekend-only business-day adjustment.
//
// Grounded on the teacher's utils.AddMonth (EOM-safe month addition) and
// calendar.Adjust (Modified Following), generalized from molib's
// time.Time-based helpers into a dedicated Date value type so an invalid
// civil date (e.g. Feb 30) can never be constructed.
package daycount

import (
	"sort"
	"time"

	"github.com/quantcore/isdacds/cdserr"
)

// Date is a proleptic-Gregorian civil date with no time-of-day component.
type Date struct {
	t time.Time
}

// New constructs a Date, normalizing to UTC midnight.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its UTC calendar date.
func FromTime(t time.Time) Date {
	u := t.UTC()
	return New(u.Year(), u.Month(), u.Day())
}

// Parse reads a "2006-01-02" formatted date.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, cdserr.Wrap(cdserr.InvalidInput, err, "date parse")
	}
	return FromTime(t), nil
}

// Time returns the underlying UTC-midnight time.Time.
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// IsZero reports whether d is the zero value (never a valid trade date).
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// Compare returns -1, 0, or 1 as d is before, equal to, or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Before(o):
		return -1
	case d.After(o):
		return 1
	default:
		return 0
	}
}

// DaysUntil returns the signed number of calendar days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths behaves like Excel's EDATE: it clamps to the last day of the
// target month rather than letting time.Time roll into the following month.
// Grounded on utils.AddMonth.
func (d Date) AddMonths(months int) Date {
	naive := d.t.AddDate(0, months, 0)
	firstOfTarget := time.Date(d.t.Year(), d.t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if naive.Month() == firstOfTarget.Month() {
		return Date{t: naive}
	}
	// naive overflowed into the month after the target: walk back to the
	// target month's last day.
	origMonth := firstOfTarget.Month()
	walked := naive
	for walked.Month() != origMonth {
		walked = walked.AddDate(0, 0, -1)
	}
	return Date{t: walked}
}

// AddYears adds whole years with the same end-of-month clamping as
// AddMonths.
func (d Date) AddYears(years int) Date {
	return d.AddMonths(years * 12)
}

// String renders d as "2006-01-02".
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// SortDates sorts dates ascending in place. Grounded on utils.SortDates.
func SortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
