package daycount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestYearFractionACT365F(t *testing.T) {
	should := require.New(t)

	d1 := New(2026, time.January, 1)
	d2 := New(2027, time.January, 1)
	yf := YearFraction(d1, d2, ACT365F)
	should.InDelta(365.0/365.0, yf, 1e-12)
}

func TestYearFractionACT360(t *testing.T) {
	should := require.New(t)

	d1 := New(2026, time.January, 1)
	d2 := New(2026, time.April, 1)
	yf := YearFraction(d1, d2, ACT360)
	should.InDelta(90.0/360.0, yf, 1e-12)
}

func TestYearFractionThirty360(t *testing.T) {
	should := require.New(t)

	d1 := New(2026, time.January, 31)
	d2 := New(2026, time.February, 28)
	yf := YearFraction(d1, d2, Thirty360)
	should.InDelta(28.0/360.0, yf, 1e-12)
}

func TestYearFractionActActISDASingleYear(t *testing.T) {
	should := require.New(t)

	d1 := New(2026, time.January, 1)
	d2 := New(2026, time.July, 1)
	yf := YearFraction(d1, d2, ActActISDA)
	should.InDelta(181.0/365.0, yf, 1e-12)
}

func TestYearFractionActActISDAAcrossLeapYearBoundary(t *testing.T) {
	should := require.New(t)

	// 2028 is a leap year; the interval spans year-end.
	d1 := New(2027, time.July, 1)
	d2 := New(2028, time.July, 1)
	yf := YearFraction(d1, d2, ActActISDA)
	// days in 2027 portion (Jul1-Dec31 2027) / 365 + days in 2028 portion / 366
	should.InDelta(1.0, yf, 5e-3)
}

func TestYearFractionZeroWidth(t *testing.T) {
	should := require.New(t)

	d := New(2026, time.May, 5)
	should.Equal(0.0, YearFraction(d, d, ACT365F))
	should.Equal(0.0, YearFraction(d, d, Thirty360))
	should.Equal(0.0, YearFraction(d, d, ActActISDA))
}

func TestIsFinite(t *testing.T) {
	should := require.New(t)

	should.True(IsFinite(0.05))
	should.False(IsFinite(1.0 / zero()))
	should.False(IsFinite(zero() / zero()))
}

func zero() float64 { return 0 }
