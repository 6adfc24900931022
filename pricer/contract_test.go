package pricer

import (
	"testing"
	"time"

	"github.com/quantcore/isdacds/daycount"
	"github.com/stretchr/testify/require"
)

func baseContract() Contract {
	return Contract{
		TradeDate:             daycount.New(2026, time.January, 1),
		EffectiveDate:         daycount.New(2026, time.January, 1),
		MaturityDate:          daycount.New(2031, time.January, 1),
		ValueDate:             daycount.New(2026, time.January, 1),
		SettlementDate:        daycount.New(2026, time.January, 4),
		StepInDate:            daycount.New(2026, time.January, 1),
		PaymentFrequency:      4,
		CouponDayCount:        daycount.ACT360,
		BusinessDayConvention: daycount.ModifiedFollowing,
		CouponRate:            0.01,
		Notional:              1_000_000,
		RecoveryRate:          0.4,
		IncludeAccruedPremium: true,
		IsBuyProtection:       true,
	}
}

func TestValidateAcceptsWellFormedContract(t *testing.T) {
	should := require.New(t)
	should.NoError(baseContract().Validate())
}

func TestValidateRejectsMaturityBeforeEffective(t *testing.T) {
	should := require.New(t)
	c := baseContract()
	c.MaturityDate = c.EffectiveDate.AddDays(-1)
	should.Error(c.Validate())
}

func TestValidateRejectsNonPositiveNotional(t *testing.T) {
	should := require.New(t)
	c := baseContract()
	c.Notional = 0
	should.Error(c.Validate())
}

func TestValidateRejectsOutOfRangeRecovery(t *testing.T) {
	should := require.New(t)
	c := baseContract()
	c.RecoveryRate = 1.0
	should.Error(c.Validate())

	c.RecoveryRate = -0.1
	should.Error(c.Validate())
}

func TestValidateRejectsUnrecognizedFrequency(t *testing.T) {
	should := require.New(t)
	c := baseContract()
	c.PaymentFrequency = 3
	should.Error(c.Validate())
}

func TestValidateRejectsNonFiniteCoupon(t *testing.T) {
	should := require.New(t)
	c := baseContract()
	c.CouponRate = 1.0 / zero()
	should.Error(c.Validate())
}

func zero() float64 { return 0 }
