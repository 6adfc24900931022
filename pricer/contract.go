// Package pricer composes the schedule and valuation packages into the CDS
// contract type and the three pricing operations: mark-to-market, par
// spread, and upfront charge.
//
// Grounded on the teacher's swap.InterestRateSwapParams / SwapTrade split
// (a flat input struct plus a priced-result struct) and
// basis.solveReceiveSpread (closed-form/solved par level), adapted from a
// two-leg swap to a protection-vs-premium CDS.
package pricer

import (
	"github.com/quantcore/isdacds/cdserr"
	"github.com/quantcore/isdacds/daycount"
)

// Contract is a single-name CDS, immutable once constructed.
type Contract struct {
	TradeDate      daycount.Date
	EffectiveDate  daycount.Date
	MaturityDate   daycount.Date
	ValueDate      daycount.Date
	SettlementDate daycount.Date
	StepInDate     daycount.Date

	// PaymentFrequency is coupons per year: 1, 2, 4, or 12.
	PaymentFrequency      int
	CouponDayCount        daycount.Convention
	BusinessDayConvention daycount.BusinessDayConvention
	CouponRate            float64

	Notional              float64
	RecoveryRate          float64
	IncludeAccruedPremium bool
	IsBuyProtection       bool
}

// Validate checks the contract invariants in spec.md §3.
func (c Contract) Validate() error {
	if c.MaturityDate.Before(c.EffectiveDate) {
		return cdserr.New(cdserr.InvalidInput, "maturity_date must not precede effective_date")
	}
	if c.Notional <= 0 {
		return cdserr.New(cdserr.InvalidInput, "notional must be positive")
	}
	if c.RecoveryRate < 0 || c.RecoveryRate >= 1 {
		return cdserr.New(cdserr.InvalidInput, "recovery_rate must be in [0,1)")
	}
	if !daycount.IsFinite(c.CouponRate) {
		return cdserr.New(cdserr.InvalidInput, "coupon_rate must be finite")
	}
	switch c.PaymentFrequency {
	case 1, 2, 4, 12:
	default:
		return cdserr.Newf(cdserr.InvalidInput, "unrecognized payment frequency %d", c.PaymentFrequency)
	}
	return nil
}
