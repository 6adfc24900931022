package bootstrap

import (
	"math"

	"github.com/quantcore/isdacds/cdserr"
	"github.com/quantcore/isdacds/config"
)

// solveHazard finds h such that objective(h) == 0 using bracket expansion
// followed by a safeguarded secant/bisection hybrid: a secant step is taken,
// damped toward bisection by cfg.DampingFactor, when the bracket's secant
// slope exceeds cfg.DerivativeThreshold and the step falls strictly inside
// the current bracket; otherwise the routine bisects outright. This combines
// the teacher's bond.solveYield (Newton-style secant step toward the root)
// with basis.solveReceiveSpread's bracket-expanding bisection, needed here
// because the bootstrap objective is not guaranteed smooth enough for
// unguarded Newton across its full starting range.
func solveHazard(objective func(float64) (float64, error), guess float64, cfg config.Config) (float64, error) {
	lo, hi, fLo, fHi, err := bracket(objective, guess)
	if err != nil {
		return 0, err
	}

	prev := math.Inf(1)
	for iter := 0; iter < cfg.MaxBootstrapIterations; iter++ {
		bisectionMid := 0.5 * (lo + hi)
		mid := bisectionMid
		if math.Abs((fHi-fLo)/(hi-lo)) > cfg.DerivativeThreshold {
			secant := hi - fHi*(hi-lo)/(fHi-fLo)
			if secant > lo && secant < hi {
				// Damp the secant step toward plain bisection so a single
				// iteration can't overshoot past a fraction of the current
				// bracket width.
				maxStep := cfg.DampingFactor * (hi - lo)
				switch {
				case secant-bisectionMid > maxStep:
					secant = bisectionMid + maxStep
				case bisectionMid-secant > maxStep:
					secant = bisectionMid - maxStep
				}
				mid = secant
			}
		}

		fMid, err := objective(mid)
		if err != nil {
			return 0, err
		}
		if !isFinite(fMid) {
			mid = 0.5 * (lo + hi)
			fMid, err = objective(mid)
			if err != nil {
				return 0, err
			}
		}

		if math.Abs(fMid) < cfg.ConvergenceTolerance || math.Abs(mid-prev) < cfg.HazardChangeTolerance {
			return mid, nil
		}

		if sameSign(fMid, fLo) {
			lo, fLo = mid, fMid
		} else {
			hi, fHi = mid, fMid
		}
		prev = mid
	}
	return 0, cdserr.New(cdserr.NumericalError, "bootstrap solver did not converge")
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// bracket expands an interval around guess until objective changes sign
// across it, growing outward up to 60 times before giving up.
func bracket(objective func(float64) (float64, error), guess float64) (lo, hi, fLo, fHi float64, err error) {
	if guess <= 0 {
		guess = 0.01
	}
	lo, hi = guess*0.1, guess*2

	fLo, err = objective(lo)
	if err != nil {
		return
	}
	fHi, err = objective(hi)
	if err != nil {
		return
	}
	for i := 0; i < 60 && sameSign(fLo, fHi); i++ {
		lo *= 0.5
		hi *= 2
		if lo < 1e-10 {
			lo = 1e-10
		}
		if hi > 50 {
			hi = 50
		}
		fLo, err = objective(lo)
		if err != nil {
			return
		}
		fHi, err = objective(hi)
		if err != nil {
			return
		}
		if hi >= 50 {
			break
		}
	}
	if sameSign(fLo, fHi) {
		err = cdserr.New(cdserr.NumericalError, "could not bracket a sign change for hazard solve")
	}
	return
}
