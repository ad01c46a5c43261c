package spiral

import (
	"fmt"
	"math"

	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/arclen"
)

// ToLength builds a spiral of length arcLength within tolerance. All shape
// parameters of spec are kept, except the radial shift, which is searched
// for in
//
//	[2·MinBendRadius + b, 2·MinBendRadius + b + arcLength/π]
//
// The lower bound keeps the centre connector above the minimum bend radius.
// The returned result carries the measured length, so the residual is
// always known. Lengths which cannot be reached with the given number of
// turns are Infeasible.
func ToLength(spec Spec, arcLength, tolerance float64, opts ...arclen.Option) (*Result, error) {
	sh, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	if arcLength <= 0 || math.IsNaN(arcLength) {
		return nil, wgeom.Invalid("arc length", "must be positive, is %g", arcLength)
	}
	aMin := 2*sh.minRadius + sh.b
	aMax := aMin + arcLength/math.Pi
	build := func(a float64) (*Result, float64, error) {
		res, err := sh.build(a)
		if err != nil {
			return nil, 0, err
		}
		return res, res.Length, nil
	}
	opts = append([]arclen.Option{arclen.WithTolerance(tolerance)}, opts...)
	res, sol, err := arclen.Solve(build, arcLength, aMin, aMax, opts...)
	if err != nil {
		return nil, fmt.Errorf("spiral of %d turns, spacing %g: %w", sh.turns, spec.Spacing, err)
	}
	if err = sh.checkConnector(res); err != nil {
		return nil, err
	}
	tracer().Infof("spiral of %d turns: length %.6g (target %g) with radial shift %.6g after %d builds",
		sh.turns, sol.Length, arcLength, sol.Param, sol.Iterations)
	return res, nil
}
