package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDFFromRateContinuous(t *testing.T) {
	should := require.New(t)

	df := DFFromRate(0.05, 2.0, Continuous)
	should.InDelta(math.Exp(-0.1), df, 1e-12)
}

func TestDFFromRateAnnual(t *testing.T) {
	should := require.New(t)

	df := DFFromRate(0.05, 2.0, Annual)
	should.InDelta(math.Pow(1.05, -2), df, 1e-12)
}

func TestDFFromRateAtZeroYearFraction(t *testing.T) {
	should := require.New(t)

	should.Equal(1.0, DFFromRate(0.05, 0, Continuous))
	should.Equal(1.0, DFFromRate(0.05, -1, SemiAnnual))
}

func TestRateFromDFRoundTripContinuous(t *testing.T) {
	should := require.New(t)

	r := 0.0375
	tenor := 3.25
	df := DFFromRate(r, tenor, Continuous)
	back := RateFromDF(df, tenor, Continuous)
	should.InDelta(r, back, 1e-10)
}

func TestRateFromDFRoundTripPeriodic(t *testing.T) {
	should := require.New(t)

	for _, basis := range []CompoundingBasis{Annual, SemiAnnual, Quarterly, Monthly} {
		r := 0.042
		tenor := 5.0
		df := DFFromRate(r, tenor, basis)
		back := RateFromDF(df, tenor, basis)
		should.InDelta(r, back, 1e-9, "basis %v", basis)
	}
}
