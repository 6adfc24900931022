// Package bootstrap sequentially solves for the piecewise-constant hazard
// term structure that reprices each benchmark CDS quote to par, given an
// external discount curve.
//
// Grounded on the teacher's swap/curve.bootstrapDiscountFactors (sequential
// pillar-by-pillar solve, each depending only on previously solved pillars)
// and basis.solveReceiveSpread (root-find a flat level against a priced
// NPV), generalized from an OIS fixed-leg par condition to a CDS par
// condition (MTM == 0 under a trial survival curve).
package bootstrap

import (
	"math"
	"strconv"

	"github.com/quantcore/isdacds/cdserr"
	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/daycount"
	"github.com/quantcore/isdacds/pricer"
)

// Quote is one benchmark CDS tenor/spread pair used to bootstrap a credit
// curve. Spread is a decimal running coupon (e.g. 0.02 for 200bp).
type Quote struct {
	TenorYears float64
	Spread     float64
}

// Conventions are the CDS coupon conventions shared by every bootstrapped
// benchmark.
type Conventions struct {
	PaymentFrequency      int
	CouponDayCount        daycount.Convention
	BusinessDayConvention daycount.BusinessDayConvention
}

// StandardCDSDates derives the standard-CDS date set for a benchmark of the
// given tenor from valuationDate: effective and step-in are T+1 calendar
// day, settlement is T+3 business days, and maturity is valuationDate plus
// the tenor with day-accurate addition. This is the documented constant
// spec.md §4.6 calls for.
func StandardCDSDates(valuationDate daycount.Date, tenorYears float64) (effective, stepIn, settlement, maturity daycount.Date) {
	effective = valuationDate.AddDays(1)
	stepIn = effective
	settlement = daycount.AddBusinessDays(valuationDate, 3)
	months := int(tenorYears*12 + 0.5)
	maturity = valuationDate.AddMonths(months)
	return
}

// Bootstrap sequentially solves for a piecewise-constant hazard curve such
// that every benchmark in quotes (strictly increasing tenor order) prices
// to par under conv, given discountCurve and recovery. Each hazard depends
// only on knots at or before its own maturity: the loop never revisits an
// already-committed point.
func Bootstrap(discountCurve *curve.Curve, valuationDate daycount.Date, quotes []Quote, recovery float64, conv Conventions, interp curve.Interpolation, cfg config.Config) (*curve.Curve, error) {
	if len(quotes) == 0 {
		return nil, cdserr.New(cdserr.InvalidInput, "bootstrap requires at least one benchmark quote")
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i].TenorYears <= quotes[i-1].TenorYears {
			return nil, cdserr.New(cdserr.InvalidInput, "benchmark tenors must be strictly increasing")
		}
	}
	if recovery < 0 || recovery >= 1 {
		return nil, cdserr.New(cdserr.InvalidInput, "recovery_rate must be in [0,1)")
	}

	points := make([]curve.Point, 0, len(quotes))

	for j, q := range quotes {
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

		committed := points
		// Knot rates are average hazards from valuationDate, so a trial rate
		// below hMin would make survival rise after the previous knot; such
		// trials are evaluated at hMin (zero hazard since that knot).
		hMin := 0.0
		if n := len(committed); n > 0 {
			tPrev := daycount.YearFraction(valuationDate, committed[n-1].Date, daycount.ACT365F)
			tCur := daycount.YearFraction(valuationDate, maturity, daycount.ACT365F)
			hMin = committed[n-1].Rate * tPrev / tCur * (1 + 1e-12)
		}
		objective := func(h float64) (float64, error) {
			h = math.Max(h, hMin)
			trial := make([]curve.Point, len(committed), len(committed)+1)
			copy(trial, committed)
			trial = append(trial, curve.Point{Date: maturity, Rate: h})
			trialCurve, err := curve.New(curve.KindSurvival, valuationDate, trial, daycount.ACT365F, curve.Continuous)
			if err != nil {
				return 0, err
			}
			survAtMaturity, err := trialCurve.Survival(maturity, interp)
			if err != nil {
				return 0, err
			}
			if survAtMaturity < cfg.MinDiscountFactor {
				return 0, cdserr.Newf(cdserr.NumericalError, "trial hazard %.6f drives survival below floor at tenor index %d", h, j)
			}
			result, err := pricer.Price(contract, discountCurve, trialCurve, interp, cfg)
			if err != nil {
				return 0, err
			}
			return result.MTM, nil
		}

		guess := q.Spread / (1 - recovery)
		if guess <= 0 {
			guess = 0.01
		}
		h, err := solveHazard(objective, guess, cfg)
		if err != nil {
			return nil, cdserr.Wrap(cdserr.NumericalError, err, "non-convergent at tenor index "+strconv.Itoa(j))
		}
		points = append(points, curve.Point{Date: maturity, Rate: math.Max(h, hMin)})
	}

	return curve.New(curve.KindSurvival, valuationDate, points, daycount.ACT365F, curve.Continuous)
}
