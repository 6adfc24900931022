// Package config centralizes the numerical tunables used by the curve,
// valuation, pricer, and bootstrap packages: convergence tolerances,
// iteration caps, and the degeneracy threshold for the hazard+forward
// quadrature. Grounded on the teacher's swap/config package, which already
// named exactly this set of knobs ("previously hardcoded magic numbers
// throughout the codebase").
//
// Unlike the teacher's package-level mutable cfg var, Config here is a plain
// immutable value passed explicitly into every call: the core has no shared
// mutable state (see the concurrency model), so there is no package-level
// Get/Set to race on.
package config

// Config holds solver and curve construction parameters.
type Config struct {
	// ConvergenceTolerance is the |MTM|/notional tolerance for bootstrap
	// convergence (the par spread is closed-form and does not use it).
	ConvergenceTolerance float64

	// MaxBootstrapIterations is the maximum number of root-finder
	// iterations per bootstrapped tenor.
	MaxBootstrapIterations int

	// DampingFactor limits a secant step to prevent overshoot; the step's
	// distance from the bracket midpoint is clamped to DampingFactor *
	// current bracket width.
	DampingFactor float64

	// MinDiscountFactor is the lowest trial survival probability the
	// bootstrapper accepts at a benchmark maturity; a trial hazard driving
	// survival below it fails with a NumericalError.
	MinDiscountFactor float64

	// DerivativeThreshold is the minimum secant-slope magnitude; below this,
	// a solver iteration falls back to bisection.
	DerivativeThreshold float64

	// Epsilon is the hazard-plus-forward degeneracy threshold used by the
	// accrued-on-default and protection-leg quadrature.
	Epsilon float64

	// HazardChangeTolerance is the minimum hazard-rate change between
	// bootstrap iterations; below this the solver stops.
	HazardChangeTolerance float64

	// MaxPaymentDates caps the number of schedule periods generated for a
	// single contract (defensive bound, not a market constraint).
	MaxPaymentDates int
}

// Default provides production-ready values.
var Default = Config{
	ConvergenceTolerance:   1e-12,
	MaxBootstrapIterations: 100,
	DampingFactor:          0.5,
	MinDiscountFactor:      1e-9,
	DerivativeThreshold:    1e-15,
	Epsilon:                1e-14,
	HazardChangeTolerance:  1e-14,
	MaxPaymentDates:        600,
}
