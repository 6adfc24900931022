package bootstrap

import (
	"testing"
	"time"

	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/daycount"
	"github.com/quantcore/isdacds/pricer"
	"github.com/stretchr/testify/require"
)

func flatDiscount(should *require.Assertions, valuationDate daycount.Date, rate float64) *curve.Curve {
	c, err := curve.New(curve.KindZero, valuationDate, []curve.Point{{Date: valuationDate.AddYears(30), Rate: rate}}, daycount.ACT365F, curve.Continuous)
	should.NoError(err)
	return c
}

func TestStandardCDSDates(t *testing.T) {
	should := require.New(t)

	valuationDate := daycount.New(2026, time.January, 8) // a Thursday
	effective, stepIn, settlement, maturity := StandardCDSDates(valuationDate, 5)

	should.Equal(valuationDate.AddDays(1), effective)
	should.Equal(effective, stepIn)
	should.True(settlement.After(valuationDate))
	should.Equal(valuationDate.AddMonths(60), maturity)
}

func TestBootstrapRejectsEmptyQuotes(t *testing.T) {
	should := require.New(t)

	valuationDate := daycount.New(2026, time.January, 8)
	disc := flatDiscount(should, valuationDate, 0.03)
	conv := Conventions{PaymentFrequency: 4, CouponDayCount: daycount.ACT360, BusinessDayConvention: daycount.ModifiedFollowing}

	_, err := Bootstrap(disc, valuationDate, nil, 0.4, conv, curve.FlatForward, config.Default)
	should.Error(err)
}

func TestBootstrapRejectsNonIncreasingTenors(t *testing.T) {
	should := require.New(t)

	valuationDate := daycount.New(2026, time.January, 8)
	disc := flatDiscount(should, valuationDate, 0.03)
	conv := Conventions{PaymentFrequency: 4, CouponDayCount: daycount.ACT360, BusinessDayConvention: daycount.ModifiedFollowing}

	quotes := []Quote{{TenorYears: 5, Spread: 0.02}, {TenorYears: 3, Spread: 0.015}}
	_, err := Bootstrap(disc, valuationDate, quotes, 0.4, conv, curve.FlatForward, config.Default)
	should.Error(err)
}

func TestBootstrapReprisesEachBenchmarkToPar(t *testing.T) {
	should := require.New(t)

	valuationDate := daycount.New(2026, time.January, 8)
	disc := flatDiscount(should, valuationDate, 0.03)
	conv := Conventions{PaymentFrequency: 4, CouponDayCount: daycount.ACT360, BusinessDayConvention: daycount.ModifiedFollowing}
	recovery := 0.4

	quotes := []Quote{
		{TenorYears: 1, Spread: 0.01},
		{TenorYears: 3, Spread: 0.015},
		{TenorYears: 5, Spread: 0.02},
		{TenorYears: 7, Spread: 0.022},
		{TenorYears: 10, Spread: 0.025},
	}

	creditCurve, err := Bootstrap(disc, valuationDate, quotes, recovery, conv, curve.FlatForward, config.Default)
	should.NoError(err)

	for _, q := range quotes {
		effective, stepIn, settlement, maturity := StandardCDSDates(valuationDate, q.TenorYears)
		contract := pricer.Contract{
			TradeDate:             valuationDate,
			EffectiveDate:         effective,
			MaturityDate:          maturity,
			ValueDate:             valuationDate,
			SettlementDate:        settlement,
			StepInDate:            stepIn,
			PaymentFrequency:      conv.PaymentFrequency,
			CouponDayCount:        conv.CouponDayCount,
			BusinessDayConvention: conv.BusinessDayConvention,
			CouponRate:            q.Spread,
			Notional:              1.0,
			RecoveryRate:          recovery,
			IncludeAccruedPremium: true,
			IsBuyProtection:       true,
		}
		mtm, err := pricer.MTM(contract, disc, creditCurve, curve.FlatForward, config.Default)
		should.NoError(err)
		// The solver converges each hazard on |MTM| < config.Default.ConvergenceTolerance
		// (1e-12); re-pricing independently here should reproduce that to
		// well within 1e-9.
		should.InDelta(0.0, mtm, 1e-9, "tenor %v", q.TenorYears)
	}
}

func TestBootstrapSurvivalIsMonotoneDecreasing(t *testing.T) {
	should := require.New(t)

	valuationDate := daycount.New(2026, time.January, 8)
	disc := flatDiscount(should, valuationDate, 0.03)
	conv := Conventions{PaymentFrequency: 4, CouponDayCount: daycount.ACT360, BusinessDayConvention: daycount.ModifiedFollowing}

	quotes := []Quote{
		{TenorYears: 1, Spread: 0.01},
		{TenorYears: 3, Spread: 0.015},
		{TenorYears: 5, Spread: 0.02},
	}
	creditCurve, err := Bootstrap(disc, valuationDate, quotes, 0.4, conv, curve.FlatForward, config.Default)
	should.NoError(err)

	prev := 1.0
	for _, q := range quotes {
		_, _, _, maturity := StandardCDSDates(valuationDate, q.TenorYears)
		s, err := creditCurve.Survival(maturity, curve.FlatForward)
		should.NoError(err)
		should.Less(s, prev)
		prev = s
	}
}
