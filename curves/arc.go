package curves

import (
	"math"

	"github.com/wgforge/wgeom"
)

// Arc returns a circular arc around center, from angle a0 to angle a1
// (radians). a1 < a0 traces the arc clockwise.
func Arc(center wgeom.Pair, radius, a0, a1, segLength float64) (*wgeom.Path, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, wgeom.Invalid("radius", "arc needs a positive radius, is %g", radius)
	}
	if segLength <= 0 {
		return nil, wgeom.Invalid("segLength", "must be positive, is %g", segLength)
	}
	if wgeom.Is0(a1 - a0) {
		return nil, wgeom.Invalid("a0/a1", "arc sweeps no angle")
	}
	return wgeom.NewPath(arcPoints(center, radius, a0, a1-a0, segLength), wgeom.Width)
}

func arcPoints(center wgeom.Pair, radius, a0, sweep, segLength float64) []wgeom.Pair {
	n := int(math.Ceil(radius * math.Abs(sweep) / segLength))
	if n < 2 {
		n = 2
	}
	pts := make([]wgeom.Pair, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = center + wgeom.Polar(radius, a0+sweep*float64(i)/float64(n))
	}
	return pts
}

// arcThrough finds the circular arc starting at p with tangent direction t
// and ending in q. It returns the points of the arc and its radius. If q
// lies on the tangent line, the "arc" is a straight segment of radius +Inf.
func arcThrough(p, t, q wgeom.Pair, segLength float64) ([]wgeom.Pair, float64) {
	n := t.Unit().Perp()
	v := q - p
	den := 2 * n.Dot(v)
	if math.Abs(den) <= wgeom.Epsilon*v.Abs() {
		return []wgeom.Pair{p, q}, math.Inf(1)
	}
	rho := v.Dot(v) / den // signed: > 0 if the center lies to the left
	center := p + n.Scaled(rho)
	a0 := (p - center).Angle()
	sweep := (q - center).Angle() - a0
	if rho > 0 {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}
	pts := arcPoints(center, math.Abs(rho), a0, sweep, segLength)
	pts[0], pts[len(pts)-1] = p, q
	return pts, math.Abs(rho)
}

// Biarc connects p0 to p1 with two tangent-continuous circular arcs. t0 is the
// direction of travel at p0, t1 the direction of travel at p1. The two arcs
// meet at the point where their tangent distances are equal. Biarc returns
// the path and the smaller of the two radii.
func Biarc(p0, t0, p1, t1 wgeom.Pair, segLength float64) (*wgeom.Path, float64, error) {
	if p0.Equal(p1) {
		return nil, 0, wgeom.Invalid("p0/p1", "biarc end points coincide at %s", p0)
	}
	if t0.IsOrigin() || t1.IsOrigin() {
		return nil, 0, wgeom.Invalid("t0/t1", "biarc needs non-zero tangents")
	}
	if segLength <= 0 {
		return nil, 0, wgeom.Invalid("segLength", "must be positive, is %g", segLength)
	}
	t0, t1 = t0.Unit(), t1.Unit()
	v := p1 - p0
	t := t0 + t1
	A := 2 * (1 - t0.Dot(t1))
	var pm wgeom.Pair
	if wgeom.Is0(A) {
		pm = (p0 + p1).Scaled(0.5)
	} else {
		vt := v.Dot(t)
		d := (-vt + math.Sqrt(vt*vt+A*v.Dot(v))) / A
		pm = (p0 + p1 + (t0 - t1).Scaled(d)).Scaled(0.5)
	}
	first, r0 := arcThrough(p0, t0, pm, segLength)
	second, r1 := arcThrough(p1, -t1, pm, segLength)
	path, err := wgeom.Nullpath().Knots(first...).Knots(reversed(second)...).End()
	if err != nil {
		return nil, 0, err
	}
	r := math.Min(r0, r1)
	tracer().Debugf("biarc %s -> %s: radii %.4g, %.4g", p0, p1, r0, r1)
	return path, r, nil
}

func reversed(pts []wgeom.Pair) []wgeom.Pair {
	n := len(pts)
	rev := make([]wgeom.Pair, n)
	for i, p := range pts {
		rev[n-1-i] = p
	}
	return rev
}
