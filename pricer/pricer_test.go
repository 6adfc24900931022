package pricer

import (
	"testing"
	"time"

	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/daycount"
	"github.com/stretchr/testify/require"
)

func flatCurve(should *require.Assertions, kind curve.Kind, base daycount.Date, rate float64, maturity daycount.Date) *curve.Curve {
	c, err := curve.New(kind, base, []curve.Point{{Date: maturity, Rate: rate}}, daycount.ACT365F, curve.Continuous)
	should.NoError(err)
	return c
}

func TestPriceBuySellAreMirrorImages(t *testing.T) {
	should := require.New(t)

	c := baseContract()
	disc := flatCurve(should, curve.KindZero, c.ValueDate, 0.03, c.MaturityDate)
	surv := flatCurve(should, curve.KindSurvival, c.ValueDate, 0.02, c.MaturityDate)

	buy := c
	buy.IsBuyProtection = true
	sell := c
	sell.IsBuyProtection = false

	rBuy, err := Price(buy, disc, surv, curve.FlatForward, config.Default)
	should.NoError(err)
	rSell, err := Price(sell, disc, surv, curve.FlatForward, config.Default)
	should.NoError(err)

	should.InDelta(rBuy.MTM, -rSell.MTM, 1e-8)
	should.InDelta(rBuy.ParSpread, rSell.ParSpread, 1e-12)
}

func TestPriceUpfrontEqualsMTM(t *testing.T) {
	should := require.New(t)

	c := baseContract()
	disc := flatCurve(should, curve.KindZero, c.ValueDate, 0.03, c.MaturityDate)
	surv := flatCurve(should, curve.KindSurvival, c.ValueDate, 0.02, c.MaturityDate)

	r, err := Price(c, disc, surv, curve.FlatForward, config.Default)
	should.NoError(err)
	should.Equal(r.MTM, r.UpfrontCharge)
	should.InDelta(r.MTM/c.Notional, r.UpfrontPercent, 1e-12)
}

func TestPriceAtParSpreadCouponRepricesToZero(t *testing.T) {
	should := require.New(t)

	c := baseContract()
	disc := flatCurve(should, curve.KindZero, c.ValueDate, 0.03, c.MaturityDate)
	surv := flatCurve(should, curve.KindSurvival, c.ValueDate, 0.02, c.MaturityDate)

	r, err := Price(c, disc, surv, curve.FlatForward, config.Default)
	should.NoError(err)

	atPar := c
	atPar.CouponRate = r.ParSpread
	rPar, err := Price(atPar, disc, surv, curve.FlatForward, config.Default)
	should.NoError(err)

	// This is an algebraic identity (par spread is defined so MTM cancels
	// exactly), not a solver-controlled tolerance, so the residual is
	// floating-point roundoff on PV terms of order 1e4-1e5 rather than
	// config.Default.ConvergenceTolerance.
	should.InDelta(0.0, rPar.MTM, 1e-7)
}

func TestMTMAffineInCoupon(t *testing.T) {
	should := require.New(t)

	c := baseContract()
	disc := flatCurve(should, curve.KindZero, c.ValueDate, 0.03, c.MaturityDate)
	surv := flatCurve(should, curve.KindSurvival, c.ValueDate, 0.02, c.MaturityDate)

	at := func(coupon float64) float64 {
		trial := c
		trial.CouponRate = coupon
		m, err := MTM(trial, disc, surv, curve.FlatForward, config.Default)
		should.NoError(err)
		return m
	}

	// MTM is affine in the flat coupon at fixed curves (intercept from the
	// protection leg, slope from the premium+AOD legs), so three equally
	// spaced coupons must be collinear.
	m1, m2, m3 := at(0.005), at(0.010), at(0.015)
	should.InDelta(m2-m1, m3-m2, 1e-6)
}
