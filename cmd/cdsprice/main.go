// Command cdsprice prices a single-name CDS contract against a discount
// curve and a survival curve, reporting mark-to-market, par spread, and
// upfront.
//
// Grounded on the teacher's cmd/npv/internal/ois.go entry-point shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/daycount"
	"github.com/quantcore/isdacds/internal/cdsio"
	"github.com/quantcore/isdacds/internal/cliconfig"
	"github.com/quantcore/isdacds/pricer"
)

// CurvePointInput is one curve knot, shared by the discount and survival
// curve inputs.
type CurvePointInput struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// CurveInput describes a full term structure.
type CurveInput struct {
	DayCount string            `json:"day_count"`
	Basis    string            `json:"compounding_basis"`
	Points   []CurvePointInput `json:"points"`
}

// Input is the JSON input schema for cdsprice.
type Input struct {
	TradeDate             string     `json:"trade_date"`
	EffectiveDate         string     `json:"effective_date"`
	MaturityDate          string     `json:"maturity_date"`
	ValueDate             string     `json:"value_date"`
	SettlementDate        string     `json:"settlement_date"`
	StepInDate            string     `json:"step_in_date"`
	PaymentFrequency      int        `json:"payment_frequency"`
	CouponDayCount        string     `json:"coupon_day_count"`
	BusinessDayConvention string     `json:"business_day_convention"`
	CouponRateBP          float64    `json:"coupon_rate_bp"`
	Notional              float64    `json:"notional"`
	RecoveryRate          float64    `json:"recovery_rate"`
	IncludeAccruedPremium bool       `json:"include_accrued_premium"`
	IsBuyProtection       bool       `json:"is_buy_protection"`
	Interpolation         string     `json:"interpolation"`
	DiscountCurve         CurveInput `json:"discount_curve"`
	SurvivalCurve         CurveInput `json:"survival_curve"`
}

// Output is the JSON output schema for cdsprice.
type Output struct {
	MTM              float64 `json:"mtm,omitempty"`
	ParSpreadBP      float64 `json:"par_spread_bp,omitempty"`
	PremiumLegPV     float64 `json:"premium_leg_pv,omitempty"`
	ProtectionLegPV  float64 `json:"protection_leg_pv,omitempty"`
	AccruedPremiumPV float64 `json:"accrued_premium_pv,omitempty"`
	UpfrontCharge    float64 `json:"upfront_charge,omitempty"`
	UpfrontPercent   float64 `json:"upfront_percent,omitempty"`
	Error            string  `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cdsprice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	settings := cliconfig.Load()
	log := cliconfig.NewLogger(settings)

	path := strings.TrimSpace(*inputPath)
	inputBytes, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var input Input
	if err := json.Unmarshal(inputBytes, &input); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	log.WithField("notional", input.Notional).Debug("pricing CDS contract")

	output, err := priceContract(input)
	if err != nil {
		log.WithError(err).Warn("cdsprice failed")
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdsprice < input.json")
	fmt.Fprintln(w, "  cdsprice -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Price a CDS contract against a discount curve and a survival curve.")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	outputBytes, _ := json.Marshal(Output{Error: msg})
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}

func priceContract(input Input) (*Output, error) {
	interp, err := cdsio.ParseInterpolation(input.Interpolation)
	if err != nil {
		return nil, err
	}
	tradeDate, err := cdsio.ParseDate(input.TradeDate)
	if err != nil {
		return nil, err
	}
	effectiveDate, err := cdsio.ParseDate(input.EffectiveDate)
	if err != nil {
		return nil, err
	}
	maturityDate, err := cdsio.ParseDate(input.MaturityDate)
	if err != nil {
		return nil, err
	}
	valueDate, err := cdsio.ParseDate(input.ValueDate)
	if err != nil {
		return nil, err
	}
	settlementDate, err := cdsio.ParseDate(input.SettlementDate)
	if err != nil {
		return nil, err
	}
	stepInDate, err := cdsio.ParseDate(input.StepInDate)
	if err != nil {
		return nil, err
	}
	couponDCC, err := cdsio.ParseDayCount(input.CouponDayCount)
	if err != nil {
		return nil, err
	}
	bdc, err := cdsio.ParseBusinessDayConvention(input.BusinessDayConvention)
	if err != nil {
		return nil, err
	}

	discountCurve, err := buildCurve(curve.KindZero, valueDate, input.DiscountCurve)
	if err != nil {
		return nil, fmt.Errorf("failed to build discount_curve: %w", err)
	}
	survivalCurve, err := buildCurve(curve.KindSurvival, valueDate, input.SurvivalCurve)
	if err != nil {
		return nil, fmt.Errorf("failed to build survival_curve: %w", err)
	}

	contract := pricer.Contract{
		TradeDate:             tradeDate,
		EffectiveDate:         effectiveDate,
		MaturityDate:          maturityDate,
		ValueDate:             valueDate,
		SettlementDate:        settlementDate,
		StepInDate:            stepInDate,
		PaymentFrequency:      input.PaymentFrequency,
		CouponDayCount:        couponDCC,
		BusinessDayConvention: bdc,
		CouponRate:            input.CouponRateBP / 10000.0,
		Notional:              input.Notional,
		RecoveryRate:          input.RecoveryRate,
		IncludeAccruedPremium: input.IncludeAccruedPremium,
		IsBuyProtection:       input.IsBuyProtection,
	}

	result, err := pricer.Price(contract, discountCurve, survivalCurve, interp, config.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to price contract: %w", err)
	}

	return &Output{
		MTM:              result.MTM,
		ParSpreadBP:      result.ParSpread * 10000.0,
		PremiumLegPV:     result.PremiumLegPV,
		ProtectionLegPV:  result.ProtectionLegPV,
		AccruedPremiumPV: result.AccruedPremiumPV,
		UpfrontCharge:    result.UpfrontCharge,
		UpfrontPercent:   result.UpfrontPercent,
	}, nil
}

func buildCurve(kind curve.Kind, baseDate daycount.Date, input CurveInput) (*curve.Curve, error) {
	dcc, err := cdsio.ParseDayCount(input.DayCount)
	if err != nil {
		return nil, err
	}
	basis, err := cdsio.ParseBasis(input.Basis)
	if err != nil {
		return nil, err
	}
	if len(input.Points) == 0 {
		return nil, fmt.Errorf("points is required")
	}
	points := make([]curve.Point, len(input.Points))
	for i, p := range input.Points {
		d, err := cdsio.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		points[i] = curve.Point{Date: d, Rate: p.Rate}
	}
	return curve.New(kind, baseDate, points, dcc, basis)
}
