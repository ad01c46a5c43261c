package route

import (
	"math"

	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/curves"
)

// DenseLength is the longitudinal length of a Dense interconnect of n ports
// with the given edge-to-edge spacing of its vertical runs.
func DenseLength(n int, spacing, minRadius, width float64) float64 {
	return 2*minRadius + float64(n-1)*(spacing+width)
}

// DenseSpacing is the edge-to-edge spacing of the vertical runs which makes
// a Dense interconnect of n ports exactly length long.
func DenseSpacing(n int, length, minRadius, width float64) (float64, error) {
	if n < 2 {
		return 0, wgeom.Invalid("ports", "spacing is undefined for %d port(s)", n)
	}
	s := (length-2*minRadius)/float64(n-1) - width
	if s < 0 {
		return 0, wgeom.Infeasible("length %g too short for %d ports at radius %g", length, n, minRadius)
	}
	return s, nil
}

// Dense connects input[i] to output[i] with two rounded 90° bends per path,
// minimizing the longitudinal length of the interconnect at the cost of its
// transverse extent. Path k, counted from the port pair nearest to the
// direction the bundle moves in, runs transversally at distance
// Rmin + k·(spacing + width) from the inputs.
//
// Either WithSpacing (default Spacing) or WithSpan determines the
// geometry; giving both over-constrains it. Every port pair has to move in
// the same direction, by at least the interconnect's length.
func Dense(req Request, opts ...Option) ([]*wgeom.Path, error) {
	order, err := req.validate()
	if err != nil {
		return nil, err
	}
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if err := req.pitch(o.width); err != nil {
		return nil, err
	}
	if o.hasSpacing && o.span > 0 {
		return nil, wgeom.Invalid("spacing/span", "give either spacing or span, not both")
	}
	n := len(req.Inputs)
	length := DenseLength(n, o.spacing, o.minRadius, o.width)
	if o.span > 0 {
		if n > 1 {
			if o.spacing, err = DenseSpacing(n, o.span, o.minRadius, o.width); err != nil {
				return nil, err
			}
		} else if o.span < length {
			return nil, wgeom.Infeasible("span %g shorter than two bends of radius %g", o.span, o.minRadius)
		}
		length = o.span
	}
	up := req.Outputs[0] > req.Inputs[0]
	for i := range req.Inputs {
		d := req.Outputs[i] - req.Inputs[i]
		if (d > 0) != up {
			return nil, wgeom.Infeasible("port pairs move in opposite directions")
		}
		if math.Abs(d) < length-wgeom.Epsilon {
			return nil, wgeom.Infeasible("port pair %d moves by %g, less than the interconnect length %.4g",
				i, math.Abs(d), length)
		}
	}
	at := req.frame()
	pitch := o.spacing + o.width
	paths := make([]*wgeom.Path, n)
	for i := range paths {
		k := i
		if up == (order > 0) {
			k = n - 1 - i
		}
		r := o.minRadius + float64(k)*pitch
		in, out := req.Inputs[i], req.Outputs[i]
		pts := []wgeom.Pair{wgeom.P(0, in), wgeom.P(r, in), wgeom.P(r, out), wgeom.P(length, out)}
		path, err := curves.RoundCorners(pts, []float64{r, length - r}, o.segLength)
		if err != nil {
			return nil, err
		}
		paths[i] = path.WithWidth(o.width).Transformed(at)
	}
	tracer().Infof("dense route of %d ports, length %.4g, spacing %.4g", n, length, o.spacing)
	return paths, nil
}
