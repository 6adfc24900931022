package daycount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateParseAndString(t *testing.T) {
	should := require.New(t)

	d, err := Parse("2026-03-15")
	should.NoError(err)
	should.Equal("2026-03-15", d.String())
	should.Equal(2026, d.Year())
	should.Equal(time.March, d.Month())
	should.Equal(15, d.Day())
}

func TestDateOrdering(t *testing.T) {
	should := require.New(t)

	a := New(2026, time.January, 1)
	b := New(2026, time.June, 30)

	should.True(a.Before(b))
	should.True(b.After(a))
	should.False(a.Equal(b))
	should.Equal(-1, a.Compare(b))
	should.Equal(1, b.Compare(a))
	should.Equal(0, a.Compare(a))
}

func TestDateAddMonthsEndOfMonthClamp(t *testing.T) {
	should := require.New(t)

	jan31 := New(2026, time.January, 31)
	should.Equal(New(2026, time.February, 28), jan31.AddMonths(1))
	should.Equal(New(2026, time.March, 31), jan31.AddMonths(2))

	leapJan31 := New(2028, time.January, 31)
	should.Equal(New(2028, time.February, 29), leapJan31.AddMonths(1))
}

func TestDateAddYears(t *testing.T) {
	should := require.New(t)

	d := New(2024, time.February, 29)
	should.Equal(New(2025, time.February, 28), d.AddYears(1))
	should.Equal(New(2028, time.February, 29), d.AddYears(4))
}

func TestDaysUntil(t *testing.T) {
	should := require.New(t)

	a := New(2026, time.January, 1)
	b := New(2026, time.January, 11)
	should.Equal(10, a.DaysUntil(b))
	should.Equal(-10, b.DaysUntil(a))
}

func TestMinMax(t *testing.T) {
	should := require.New(t)

	a := New(2026, time.January, 1)
	b := New(2026, time.June, 1)
	should.Equal(a, Min(a, b))
	should.Equal(b, Max(a, b))
}

func TestSortDates(t *testing.T) {
	should := require.New(t)

	dates := []Date{
		New(2026, time.June, 1),
		New(2026, time.January, 1),
		New(2026, time.March, 15),
	}
	SortDates(dates)
	should.Equal(New(2026, time.January, 1), dates[0])
	should.Equal(New(2026, time.March, 15), dates[1])
	should.Equal(New(2026, time.June, 1), dates[2])
}
