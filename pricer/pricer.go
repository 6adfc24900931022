package pricer

import (
	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/schedule"
	"github.com/quantcore/isdacds/valuation"
)

// Result is the full output of Price: MTM, the par spread, both leg PVs,
// the accrued-premium PV, and the upfront charge expressed both ways.
type Result struct {
	MTM              float64
	ParSpread        float64
	PremiumLegPV     float64
	ProtectionLegPV  float64
	AccruedPremiumPV float64
	UpfrontCharge    float64
	UpfrontPercent   float64
}

// Price runs the full valuation: builds the premium schedule, prices both
// legs (and the accrued-on-default term if requested), and derives MTM, par
// spread, and upfront.
//
// Per spec.md §4.5, upfront is "signed MTM as defined in the post-2009
// market convention" — this implementation treats UpfrontCharge as
// identical to MTM (both already discounted from value_date to
// settlement_date), differing only in that UpfrontPercent additionally
// expresses it as a fraction of notional.
func Price(c Contract, discountCurve, survivalCurve *curve.Curve, interp curve.Interpolation, cfg config.Config) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	periods, err := schedule.Generate(c.EffectiveDate, c.MaturityDate, c.PaymentFrequency, c.BusinessDayConvention, cfg)
	if err != nil {
		return Result{}, err
	}

	unitPremiumPV, err := valuation.PremiumLegPV(periods, c.CouponDayCount, 1.0, c.Notional, discountCurve, survivalCurve, interp, c.StepInDate, c.ValueDate)
	if err != nil {
		return Result{}, err
	}

	unitAODPV := 0.0
	if c.IncludeAccruedPremium {
		unitAODPV, err = valuation.AccruedOnDefault(periods, c.CouponDayCount, 1.0, c.Notional, discountCurve, survivalCurve, interp, c.StepInDate, c.ValueDate, cfg.Epsilon)
		if err != nil {
			return Result{}, err
		}
	}

	protectionPV, err := valuation.ProtectionLegPV(c.ValueDate, c.MaturityDate, c.RecoveryRate, c.Notional, discountCurve, survivalCurve, interp, cfg.Epsilon)
	if err != nil {
		return Result{}, err
	}

	premiumPV := c.CouponRate * unitPremiumPV
	accruedPV := c.CouponRate * unitAODPV
	totalPremiumPV := premiumPV + accruedPV

	sign := 1.0
	if !c.IsBuyProtection {
		sign = -1.0
	}

	settleDF, err := valuation.DiscountFactorFrom(discountCurve, c.ValueDate, c.SettlementDate, interp)
	if err != nil {
		return Result{}, err
	}

	mtm := sign * (protectionPV - totalPremiumPV) / settleDF

	unitTotal := unitPremiumPV + unitAODPV
	parSpread := 0.0
	if unitTotal != 0 {
		parSpread = protectionPV / unitTotal
	}

	return Result{
		MTM:              mtm,
		ParSpread:        parSpread,
		PremiumLegPV:     premiumPV / settleDF,
		ProtectionLegPV:  protectionPV / settleDF,
		AccruedPremiumPV: accruedPV / settleDF,
		UpfrontCharge:    mtm,
		UpfrontPercent:   mtm / c.Notional,
	}, nil
}

// MTM is a convenience wrapper returning only the mark-to-market value.
func MTM(c Contract, discountCurve, survivalCurve *curve.Curve, interp curve.Interpolation, cfg config.Config) (float64, error) {
	r, err := Price(c, discountCurve, survivalCurve, interp, cfg)
	if err != nil {
		return 0, err
	}
	return r.MTM, nil
}

// ParSpread is a convenience wrapper returning only the par spread.
func ParSpread(c Contract, discountCurve, survivalCurve *curve.Curve, interp curve.Interpolation, cfg config.Config) (float64, error) {
	r, err := Price(c, discountCurve, survivalCurve, interp, cfg)
	if err != nil {
		return 0, err
	}
	return r.ParSpread, nil
}

// Upfront is a convenience wrapper returning the upfront charge and its
// fraction of notional.
func Upfront(c Contract, discountCurve, survivalCurve *curve.Curve, interp curve.Interpolation, cfg config.Config) (charge, percent float64, err error) {
	r, err := Price(c, discountCurve, survivalCurve, interp, cfg)
	if err != nil {
		return 0, 0, err
	}
	return r.UpfrontCharge, r.UpfrontPercent, nil
}
