package curves

import (
	"math"

	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/polygon"
)

// Origin selects which end of a taper is placed at the local origin.
type Origin int

const (
	Port0 Origin = iota // the end with the start width
	Port1               // the end with the final width
)

func (o Origin) String() string {
	if o == Port1 {
		return "port1"
	}
	return "port0"
}

// LinearTaper returns the trapezoid which widens (or narrows) a waveguide
// from width w0 at x = 0 to width w1 at x = length, centered on the x-axis.
func LinearTaper(w0, w1, length float64) (*polygon.Polygon, error) {
	if w0 <= 0 || w1 <= 0 {
		return nil, wgeom.Invalid("w0/w1", "taper widths must be positive, are %g and %g", w0, w1)
	}
	if length <= 0 {
		return nil, wgeom.Invalid("length", "must be positive, is %g", length)
	}
	return polygon.NullPolygon().
		Knot(wgeom.P(0, -w0/2)).Knot(wgeom.P(length, -w1/2)).
		Knot(wgeom.P(length, w1/2)).Knot(wgeom.P(0, w0/2)).
		Cycle(), nil
}

// ParabolicTaper returns a taper whose width follows the parabolic law
//
//	w(x)² = w0² + (w1² − w0²)·x/length,  w1 = factor·w0
//
// The outline is sampled at most segLength apart along x. With origin ==
// Port0 the w0 end sits at the origin and the taper extends to +x; with
// Port1 the w1 end sits at the origin and the taper extends to −x.
func ParabolicTaper(w0, length, factor float64, origin Origin, segLength float64) (*polygon.Polygon, error) {
	if w0 <= 0 {
		return nil, wgeom.Invalid("w0", "must be positive, is %g", w0)
	}
	if length <= 0 {
		return nil, wgeom.Invalid("length", "must be positive, is %g", length)
	}
	if factor <= 0 {
		return nil, wgeom.Invalid("factor", "must be positive, is %g", factor)
	}
	if segLength <= 0 {
		return nil, wgeom.Invalid("segLength", "must be positive, is %g", segLength)
	}
	w1 := factor * w0
	n := int(math.Ceil(length / segLength))
	if n < 2 {
		n = 2
	}
	shift := 0.0
	if origin == Port1 {
		shift = -length
	}
	width := func(x float64) float64 {
		return math.Sqrt(w0*w0 + (w1*w1-w0*w0)*x/length)
	}
	pg := polygon.NullPolygon()
	for i := 0; i <= n; i++ {
		x := length * float64(i) / float64(n)
		pg.Knot(wgeom.P(x+shift, -width(x)/2))
	}
	for i := n; i >= 0; i-- {
		x := length * float64(i) / float64(n)
		pg.Knot(wgeom.P(x+shift, width(x)/2))
	}
	tracer().Debugf("parabolic taper %g -> %g over %g, origin at %s", w0, w1, length, origin)
	return pg.Cycle(), nil
}
