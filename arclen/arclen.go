/*
Package arclen finds the value of a single shape parameter for which a shape
has a requested arc length.

The shape family is given as a build function, which constructs the shape for
a parameter value and measures its length. The length has to be monotone in
the parameter (increasing or decreasing) over the search bracket. Solve
bisects the bracket, rebuilding the shape at every midpoint, until the
realized length is within tolerance of the target:

	path, sol, err := arclen.Solve(build, 1000, aMin, aMax, arclen.WithTolerance(0.01))

Solve never returns a shape which misses the tolerance without reporting an
error. Targets outside the lengths reachable within the bracket are
Infeasible.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package arclen

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
)

// tracer writes to trace with key 'arclen'
func tracer() tracing.Trace {
	return tracing.Select("arclen")
}

// ErrNoConvergence is returned if the iteration budget is exhausted before
// the tolerance is met. It wraps wgeom.ErrInfeasible.
var ErrNoConvergence = fmt.Errorf("%w: arc length solver did not converge", wgeom.ErrInfeasible)

// BuildFunc constructs a shape for parameter p and returns it together with
// its measured arc length.
type BuildFunc[T any] func(p float64) (T, float64, error)

// Solution describes the outcome of Solve.
type Solution struct {
	Param      float64 // parameter value of the returned shape
	Length     float64 // realized arc length of the returned shape
	Iterations int     // number of shapes built
}

// Residual is the signed difference of the realized length to target.
func (s Solution) Residual(target float64) float64 {
	return s.Length - target
}

type config struct {
	tolerance float64
	maxIter   int
	verbose   bool
}

// Option configures Solve.
type Option func(*config)

// WithTolerance sets the accepted absolute length error. Default is 0.01.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithMaxIterations limits the number of bisection steps. Default is 100.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithVerbose traces parameter and length of every iteration at info level.
func WithVerbose(v bool) Option {
	return func(c *config) {
		c.verbose = v
	}
}

// Solve finds p in [lo, hi] such that the length of build(p) is within
// tolerance of target.
//
// Errors from build are returned unchanged. If target lies outside the
// lengths of the shapes at lo and hi, the error wraps wgeom.ErrInfeasible.
func Solve[T any](build BuildFunc[T], target, lo, hi float64, opts ...Option) (T, Solution, error) {
	var zero T
	cfg := config{tolerance: 0.01, maxIter: 100}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tolerance <= 0 || math.IsNaN(cfg.tolerance) {
		return zero, Solution{}, wgeom.Invalid("tolerance", "must be positive, is %g", cfg.tolerance)
	}
	if cfg.maxIter < 1 {
		return zero, Solution{}, wgeom.Invalid("max iterations", "must be at least 1, is %d", cfg.maxIter)
	}
	if !(lo < hi) {
		return zero, Solution{}, wgeom.Invalid("bracket", "need lo < hi, have [%g, %g]", lo, hi)
	}
	trace := func(format string, args ...any) {
		if cfg.verbose {
			tracer().Infof(format, args...)
		} else {
			tracer().Debugf(format, args...)
		}
	}
	sol := Solution{}
	shapeLo, lenLo, err := build(lo)
	if err != nil {
		return zero, sol, err
	}
	shapeHi, lenHi, err := build(hi)
	if err != nil {
		return zero, sol, err
	}
	sol.Iterations = 2
	trace("arclen: bracket [%g, %g] -> lengths [%g, %g], target %g", lo, hi, lenLo, lenHi, target)
	if math.Abs(lenLo-target) <= cfg.tolerance {
		sol.Param, sol.Length = lo, lenLo
		return shapeLo, sol, nil
	}
	if math.Abs(lenHi-target) <= cfg.tolerance {
		sol.Param, sol.Length = hi, lenHi
		return shapeHi, sol, nil
	}
	if (lenLo-target)*(lenHi-target) > 0 {
		return zero, sol, wgeom.Infeasible("target length %g not within [%g, %g] reachable for parameter in [%g, %g]",
			target, math.Min(lenLo, lenHi), math.Max(lenLo, lenHi), lo, hi)
	}
	increasing := lenHi > lenLo
	for i := 0; i < cfg.maxIter; i++ {
		mid := lo + (hi-lo)/2
		shape, l, err := build(mid)
		if err != nil {
			return zero, sol, err
		}
		sol.Iterations++
		trace("arclen: iteration %d, p = %.10g, length = %.10g", i+1, mid, l)
		if math.Abs(l-target) <= cfg.tolerance {
			sol.Param, sol.Length = mid, l
			tracer().Infof("arclen: length %g reached at p = %g after %d builds", l, mid, sol.Iterations)
			return shape, sol, nil
		}
		if (l < target) == increasing {
			lo = mid
		} else {
			hi = mid
		}
	}
	return zero, sol, fmt.Errorf("%w: %d iterations, bracket [%g, %g]", ErrNoConvergence, cfg.maxIter, lo, hi)
}

// IsNoConvergence is a predicate: did Solve run out of iterations?
func IsNoConvergence(err error) bool {
	return errors.Is(err, ErrNoConvergence)
}
