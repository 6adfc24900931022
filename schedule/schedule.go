// Package schedule constructs CDS premium payment and accrual schedules:
// regular periods stepping back from maturity at the contract's coupon
// frequency, with a front stub absorbing any remainder.
//
// Grounded on the teacher's swap/basis.buildSchedule (forward-stepping
// period construction with pay-date adjustment), inverted here to roll
// backward from maturity per the ISDA convention the spec calls for.
package schedule

import (
	"github.com/quantcore/isdacds/cdserr"
	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/daycount"
)

// Period is one accrual period of a premium leg.
//
// AccrualStart/AccrualEnd are unadjusted (used for day-count measurement);
// PayDate is AccrualEnd business-day adjusted.
type Period struct {
	AccrualStart daycount.Date
	AccrualEnd   daycount.Date
	PayDate      daycount.Date
}

// Generate builds the payment schedule for a contract running from
// effective to maturity at the given number of coupon payments per year
// (1, 2, 4, or 12), adjusting pay dates under bdc.
//
// A zero-length or negative-length contract (maturity <= effective) yields
// an empty schedule, per the spec's edge case. cfg.MaxPaymentDates bounds the
// number of periods generated; a contract that would exceed it (e.g. a
// multi-decade maturity at monthly frequency fed a bad date by mistake)
// fails fast with cdserr.OutOfRange instead of allocating unboundedly.
func Generate(effective, maturity daycount.Date, paymentFrequency int, bdc daycount.BusinessDayConvention, cfg config.Config) ([]Period, error) {
	if paymentFrequency != 1 && paymentFrequency != 2 && paymentFrequency != 4 && paymentFrequency != 12 {
		return nil, cdserr.Newf(cdserr.InvalidInput, "unrecognized payment frequency %d", paymentFrequency)
	}
	if !maturity.After(effective) {
		return nil, nil
	}

	stepMonths := 12 / paymentFrequency

	// Walk backward from maturity producing unadjusted period-end dates
	// until the previous end would be <= effective; the first period then
	// begins at effective (absorbing any stub).
	var ends []daycount.Date
	cur := maturity
	for cur.After(effective) {
		if cfg.MaxPaymentDates > 0 && len(ends) >= cfg.MaxPaymentDates {
			return nil, cdserr.Newf(cdserr.OutOfRange, "schedule would exceed %d periods", cfg.MaxPaymentDates)
		}
		ends = append([]daycount.Date{cur}, ends...)
		cur = cur.AddMonths(-stepMonths)
	}

	periods := make([]Period, 0, len(ends))
	start := effective
	for _, end := range ends {
		periods = append(periods, Period{
			AccrualStart: start,
			AccrualEnd:   end,
			PayDate:      daycount.Adjust(end, bdc),
		})
		start = end
	}
	return periods, nil
}
