// Command cdsbootstrap builds a discount curve and a set of benchmark CDS
// quotes into a bootstrapped survival curve, reporting each tenor's solved
// hazard rate and implied survival probability.
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

	"github.com/quantcore/isdacds/bootstrap"
	"github.com/quantcore/isdacds/config"
	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/internal/cdsio"
	"github.com/quantcore/isdacds/internal/cliconfig"
)

// CurvePointInput is one discount-curve knot.
type CurvePointInput struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// QuoteInput is one benchmark CDS tenor/spread pair.
type QuoteInput struct {
	TenorYears float64 `json:"tenor_years"`
	SpreadBP   float64 `json:"spread_bp"`
}

// Input is the JSON input schema for cdsbootstrap.
type Input struct {
	ValuationDate         string            `json:"valuation_date"`
	DayCount              string            `json:"discount_day_count"`
	Basis                 string            `json:"discount_compounding_basis"`
	DiscountPoints        []CurvePointInput `json:"discount_points"`
	Interpolation         string            `json:"interpolation"`
	RecoveryRate          float64           `json:"recovery_rate"`
	PaymentFrequency      int               `json:"payment_frequency"`
	CouponDayCount        string            `json:"coupon_day_count"`
	BusinessDayConvention string            `json:"business_day_convention"`
	Quotes                []QuoteInput      `json:"quotes"`
}

// HazardResult is the solved hazard and implied survival at one benchmark
// maturity.
type HazardResult struct {
	TenorYears float64 `json:"tenor_years"`
	Maturity   string  `json:"maturity"`
	HazardRate float64 `json:"hazard_rate"`
	Survival   float64 `json:"survival_probability"`
}

// Output is the JSON output schema for cdsbootstrap.
type Output struct {
	Results []HazardResult `json:"results,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cdsbootstrap", flag.ContinueOnError)
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

	log.WithField("quotes", len(input.Quotes)).Debug("bootstrapping credit curve")

	output, err := bootstrapCurve(input)
	if err != nil {
		log.WithError(err).Warn("cdsbootstrap failed")
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdsbootstrap < input.json")
	fmt.Fprintln(w, "  cdsbootstrap -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bootstrap a credit curve from a discount curve and benchmark CDS quotes.")
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

func bootstrapCurve(input Input) (*Output, error) {
	valuationDate, err := cdsio.ParseDate(input.ValuationDate)
	if err != nil {
		return nil, err
	}
	discDCC, err := cdsio.ParseDayCount(input.DayCount)
	if err != nil {
		return nil, err
	}
	discBasis, err := cdsio.ParseBasis(input.Basis)
	if err != nil {
		return nil, err
	}
	interp, err := cdsio.ParseInterpolation(input.Interpolation)
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
	if len(input.DiscountPoints) == 0 {
		return nil, fmt.Errorf("discount_points is required")
	}
	if len(input.Quotes) == 0 {
		return nil, fmt.Errorf("quotes is required")
	}

	discPoints := make([]curve.Point, len(input.DiscountPoints))
	for i, p := range input.DiscountPoints {
		d, err := cdsio.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		discPoints[i] = curve.Point{Date: d, Rate: p.Rate}
	}
	discountCurve, err := curve.New(curve.KindZero, valuationDate, discPoints, discDCC, discBasis)
	if err != nil {
		return nil, fmt.Errorf("failed to build discount curve: %w", err)
	}

	quotes := make([]bootstrap.Quote, len(input.Quotes))
	for i, q := range input.Quotes {
		quotes[i] = bootstrap.Quote{TenorYears: q.TenorYears, Spread: q.SpreadBP / 10000.0}
	}

	conv := bootstrap.Conventions{
		PaymentFrequency:      input.PaymentFrequency,
		CouponDayCount:        couponDCC,
		BusinessDayConvention: bdc,
	}

	creditCurve, err := bootstrap.Bootstrap(discountCurve, valuationDate, quotes, input.RecoveryRate, conv, interp, config.Default)
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	results := make([]HazardResult, len(quotes))
	for i, q := range quotes {
		_, _, _, maturity := bootstrap.StandardCDSDates(valuationDate, q.TenorYears)
		survival, err := creditCurve.Survival(maturity, interp)
		if err != nil {
			return nil, err
		}
		hazard, err := creditCurve.ZeroRate(maturity, interp)
		if err != nil {
			return nil, err
		}
		results[i] = HazardResult{
			TenorYears: q.TenorYears,
			Maturity:   cdsio.FormatDate(maturity),
			HazardRate: hazard,
			Survival:   survival,
		}
	}

	return &Output{Results: results}, nil
}
