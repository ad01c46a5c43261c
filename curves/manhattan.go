package curves

import (
	"math"

	"github.com/wgforge/wgeom"
)

// RoundCorners replaces every inner corner of the polyline through points by
// a circular arc tangent to both adjacent segments. radii holds one radius per
// inner corner, or a single radius for all corners. Collinear corners are
// kept as they are.
//
// The tangent points of neighbouring arcs must not overlap; a segment too short
// for the arcs at both of its ends is Infeasible.
func RoundCorners(points []wgeom.Pair, radii []float64, segLength float64) (*wgeom.Path, error) {
	if len(points) < 2 {
		return nil, wgeom.Invalid("points", "need at least 2 points, have %d", len(points))
	}
	inner := len(points) - 2
	if len(radii) != 1 && len(radii) != inner {
		return nil, wgeom.Invalid("radii", "need 1 or %d radii, have %d", inner, len(radii))
	}
	if segLength <= 0 {
		return nil, wgeom.Invalid("segLength", "must be positive, is %g", segLength)
	}
	radius := func(i int) float64 {
		if len(radii) == 1 {
			return radii[0]
		}
		return radii[i-1]
	}
	// tangent distances from each corner
	tdist := make([]float64, len(points))
	for i := 1; i+1 < len(points); i++ {
		r := radius(i)
		if r <= 0 || math.IsNaN(r) {
			return nil, wgeom.Invalid("radii", "radius %d must be positive, is %g", i-1, r)
		}
		din := (points[i] - points[i-1]).Unit()
		dout := (points[i+1] - points[i]).Unit()
		phi := math.Abs(math.Atan2(din.Cross(dout), din.Dot(dout)))
		if phi < wgeom.Epsilon {
			continue
		}
		if math.Abs(phi-math.Pi) < wgeom.Epsilon {
			return nil, wgeom.Invalid("points", "path reverses direction at corner %d", i)
		}
		tdist[i] = r * math.Tan(phi/2)
	}
	for i := 1; i < len(points); i++ {
		l := (points[i] - points[i-1]).Abs()
		if tdist[i-1]+tdist[i] > l*(1+1e-9)+wgeom.Epsilon {
			return nil, wgeom.Infeasible("segment %d of length %.4g too short for corner arcs needing %.4g",
				i-1, l, tdist[i-1]+tdist[i])
		}
	}
	b := wgeom.Nullpath().Knot(points[0])
	for i := 1; i+1 < len(points); i++ {
		if tdist[i] == 0 {
			b.Knot(points[i])
			continue
		}
		din := (points[i] - points[i-1]).Unit()
		dout := (points[i+1] - points[i]).Unit()
		p := points[i] - din.Scaled(tdist[i])
		q := points[i] + dout.Scaled(tdist[i])
		arc, _ := arcThrough(p, din, q, segLength)
		b.Knots(arc...)
	}
	b.Knot(points[len(points)-1])
	return b.End()
}

// SteepSBend returns a Manhattan S-bend with rounded corners: a horizontal
// lead of one radius, a vertical run of the given length, and another
// horizontal lead of one radius.
//
//	               +-----
//	               |
//	               |
//	---------------+
//
// The path starts at the origin and ends at (2·radius, length + 2·radius).
func SteepSBend(length, radius, segLength float64) (*wgeom.Path, error) {
	if length < 0 {
		return nil, wgeom.Invalid("length", "must not be negative, is %g", length)
	}
	if radius <= 0 {
		return nil, wgeom.Invalid("radius", "must be positive, is %g", radius)
	}
	h := length + 2*radius
	pts := []wgeom.Pair{
		wgeom.Origin,
		wgeom.P(radius, 0),
		wgeom.P(radius, h),
		wgeom.P(2*radius, h),
	}
	return RoundCorners(pts, []float64{radius}, segLength)
}
