// Command cdscurve builds a zero or survival curve from a set of knot
// points and reports discount factors, zero rates, and pairwise forward
// rates at a list of query dates.
//
// Grounded on the teacher's cmd/npv/internal/ois.go: flag-parsed input path
// (falling back to stdin), JSON in, JSON out, a testable
// run(args, stdin, stdout, stderr) entry point.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quantcore/isdacds/curve"
	"github.com/quantcore/isdacds/internal/cdsio"
	"github.com/quantcore/isdacds/internal/cliconfig"
)

// PointInput is one knot of the curve being built.
type PointInput struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// ForwardPairInput is one (start, end) pair to report a forward rate over.
type ForwardPairInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Input is the JSON input schema for cdscurve.
type Input struct {
	Kind          string             `json:"kind"` // "zero" or "survival"
	BaseDate      string             `json:"base_date"`
	DayCount      string             `json:"day_count"`
	Basis         string             `json:"compounding_basis"`
	Interpolation string             `json:"interpolation"`
	Points        []PointInput       `json:"points"`
	QueryDates    []string           `json:"query_dates"`
	ForwardDates  []ForwardPairInput `json:"forward_dates,omitempty"`
}

// QueryResult is the curve's output at a single query date.
type QueryResult struct {
	Date           string  `json:"date"`
	DiscountFactor float64 `json:"discount_factor"`
	ZeroRate       float64 `json:"zero_rate"`
}

// ForwardResult is the curve's forward rate implied between Start and End.
type ForwardResult struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	ForwardRate float64 `json:"forward_rate"`
}

// Output is the JSON output schema for cdscurve.
type Output struct {
	Results  []QueryResult   `json:"results,omitempty"`
	Forwards []ForwardResult `json:"forwards,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cdscurve", flag.ContinueOnError)
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

	log.WithField("points", len(input.Points)).Debug("building curve")

	output, err := buildAndQuery(input)
	if err != nil {
		log.WithError(err).Warn("cdscurve failed")
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscurve < input.json")
	fmt.Fprintln(w, "  cdscurve -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a zero or survival curve and report DF/zero rate at query_dates,")
	fmt.Fprintln(w, "plus the implied forward rate for each forward_dates pair.")
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

func buildAndQuery(input Input) (*Output, error) {
	kind := curve.KindZero
	if strings.EqualFold(strings.TrimSpace(input.Kind), "survival") {
		kind = curve.KindSurvival
	}

	baseDate, err := cdsio.ParseDate(input.BaseDate)
	if err != nil {
		return nil, err
	}
	dcc, err := cdsio.ParseDayCount(input.DayCount)
	if err != nil {
		return nil, err
	}
	basis, err := cdsio.ParseBasis(input.Basis)
	if err != nil {
		return nil, err
	}
	interp, err := cdsio.ParseInterpolation(input.Interpolation)
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

	c, err := curve.New(kind, baseDate, points, dcc, basis)
	if err != nil {
		return nil, fmt.Errorf("failed to build curve: %w", err)
	}

	if len(input.QueryDates) == 0 {
		return nil, fmt.Errorf("query_dates is required")
	}

	results := make([]QueryResult, len(input.QueryDates))
	for i, qd := range input.QueryDates {
		d, err := cdsio.ParseDate(qd)
		if err != nil {
			return nil, err
		}
		df, err := c.DiscountFactor(d, interp)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", qd, err)
		}
		zr, err := c.ZeroRate(d, interp)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", qd, err)
		}
		results[i] = QueryResult{Date: cdsio.FormatDate(d), DiscountFactor: df, ZeroRate: zr}
	}

	forwards := make([]ForwardResult, len(input.ForwardDates))
	for i, fp := range input.ForwardDates {
		start, err := cdsio.ParseDate(fp.Start)
		if err != nil {
			return nil, err
		}
		end, err := cdsio.ParseDate(fp.End)
		if err != nil {
			return nil, err
		}
		fwd, err := c.ForwardRate(start, end, interp)
		if err != nil {
			return nil, fmt.Errorf("failed to compute forward %s->%s: %w", fp.Start, fp.End, err)
		}
		forwards[i] = ForwardResult{Start: cdsio.FormatDate(start), End: cdsio.FormatDate(end), ForwardRate: fwd}
	}

	return &Output{Results: results, Forwards: forwards}, nil
}
