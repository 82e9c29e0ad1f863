package railtemp

import (
	"fmt"
	"math"
)

// Default root-finding settings for the per-timestep energy balance. The two
// seeds bracket the plausible rail temperature range in Kelvin.
const (
	solverSeedLow    = 273.0
	solverSeedHigh   = 400.0
	solverTolerance  = 1e-5
	solverMaxIter    = 30000
	solverMinSecantD = 1e-300
)

// solveSecant finds a root of f with the derivative-free secant method,
// starting from the guesses x0 and x1. Convergence is declared when the
// absolute residual drops below tol. There is no automatic reseeding; a
// failed solve is returned to the caller as an error.
func solveSecant(f func(float64) float64, x0, x1, tol float64, maxIter int) (float64, error) {
	f0 := f(x0)
	f1 := f(x1)
	if math.Abs(f0) < tol {
		return x0, nil
	}

	for iter := 0; iter < maxIter; iter++ {
		if math.Abs(f1) < tol {
			return x1, nil
		}
		denom := f1 - f0
		if math.IsNaN(denom) || math.Abs(denom) < solverMinSecantD {
			return 0, fmt.Errorf("secant step degenerate after %d iterations (residual %v)", iter, f1)
		}
		x2 := x1 - f1*(x1-x0)/denom
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, fmt.Errorf("secant iterate diverged after %d iterations", iter)
		}
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}

	return 0, fmt.Errorf("no convergence within %d iterations (residual %v)", maxIter, f1)
}
