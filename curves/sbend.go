package curves

import (
	"math"

	"github.com/wgforge/wgeom"
	"gonum.org/v1/gonum/mathext"
)

// Straight returns a straight waveguide of the given length along +x.
func Straight(length float64) (*wgeom.Path, error) {
	if length <= 0 {
		return nil, wgeom.Invalid("length", "straight needs a positive length, is %g", length)
	}
	return wgeom.NewPath([]wgeom.Pair{wgeom.Origin, wgeom.P(length, 0)}, wgeom.Width)
}

// SBend returns an S-shaped connector from (0,0) to (length,height), leaving
// and entering horizontally. The center line follows
//
//	y(x) = height/2 · (1 − cos(πx/length))
//
// and is sampled uniformly in x with no chord longer than segLength.
// A zero length degenerates to a vertical segment, a zero height to a
// horizontal one.
func SBend(length, height, segLength float64) (*wgeom.Path, error) {
	if length < 0 || math.IsNaN(length) {
		return nil, wgeom.Invalid("length", "must not be negative, is %g", length)
	}
	if segLength <= 0 {
		return nil, wgeom.Invalid("segLength", "must be positive, is %g", segLength)
	}
	if wgeom.Is0(length) && wgeom.Is0(height) {
		return nil, wgeom.Invalid("length/height", "S-bend spans no distance")
	}
	if wgeom.Is0(length) || wgeom.Is0(height) {
		return wgeom.NewPath([]wgeom.Pair{wgeom.Origin, wgeom.P(length, height)}, wgeom.Width)
	}
	a := math.Pi * height / (2 * length)
	// the steepest chord is at the inflection point, slope a
	n := int(math.Ceil(length * math.Sqrt(1+a*a) / segLength))
	return SBendN(length, height, n)
}

// SBendN returns the S-bend of SBend sampled with exactly n segments of
// equal x-extent. S-bends of equal length and n share their x-coordinates.
func SBendN(length, height float64, n int) (*wgeom.Path, error) {
	if length < 0 || math.IsNaN(length) {
		return nil, wgeom.Invalid("length", "must not be negative, is %g", length)
	}
	if wgeom.Is0(length) || wgeom.Is0(height) {
		return wgeom.NewPath([]wgeom.Pair{wgeom.Origin, wgeom.P(length, height)}, wgeom.Width)
	}
	if n < 2 {
		n = 2
	}
	pts := make([]wgeom.Pair, n+1)
	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		pts[i] = wgeom.P(length*u, height/2*(1-math.Cos(math.Pi*u)))
	}
	pts[n] = wgeom.P(length, height)
	tracer().Debugf("s-bend %g × %g with %d segments", length, height, n)
	return wgeom.NewPath(pts, wgeom.Width)
}

// SBendAlength is the arc length of the ideal S-bend curve of SBend,
// computed in closed form through the complete elliptic integral of the
// second kind:
//
//	(2L/π)·√(1+a²)·E(k),  a = πh/(2L),  k² = a²/(1+a²)
func SBendAlength(length, height float64) float64 {
	height = math.Abs(height)
	if wgeom.Is0(length) {
		return height
	}
	if wgeom.Is0(height) {
		return length
	}
	a := math.Pi * height / (2 * length)
	m := a * a / (1 + a*a)
	return 2 * length / math.Pi * math.Sqrt(1+a*a) * ellipE(m)
}

// ellipE is the complete elliptic integral of the second kind with
// parameter m = k².
func ellipE(m float64) float64 {
	return mathext.EllipticE(math.Pi/2, m)
}

// SBendMaxRadius is the bend radius of the S-bend spanning the full
// (length, height) box. It is the largest radius any S-bend inside the box
// can have; the tightest bend sits at both ends of the curve.
func SBendMaxRadius(length, height float64) float64 {
	height = math.Abs(height)
	if wgeom.Is0(height) {
		return math.Inf(1)
	}
	return 2 * length * length / (math.Pi * math.Pi * height)
}

// SBendLengthForRadius is the horizontal length an S-bend of the given
// height needs for the given bend radius.
func SBendLengthForRadius(height, radius float64) float64 {
	return math.Pi * math.Sqrt(radius*math.Abs(height)/2)
}

// SBendRadius returns an S-bend with bend radius radius inside the
// (length, height) box. The curved part is centered and padded with
// straight leads. A radius larger than SBendMaxRadius(length, height) is
// clamped to that maximum. The effective radius is returned.
func SBendRadius(length, height, radius, segLength float64) (*wgeom.Path, float64, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, 0, wgeom.Invalid("radius", "must be positive, is %g", radius)
	}
	if length < 0 {
		return nil, 0, wgeom.Invalid("length", "must not be negative, is %g", length)
	}
	if wgeom.Is0(height) {
		path, err := SBend(length, 0, segLength)
		return path, math.Inf(1), err
	}
	if max := SBendMaxRadius(length, height); radius > max {
		tracer().Infof("s-bend radius %g clamped to %g for box %g × %g", radius, max, length, height)
		radius = max
	}
	l := math.Min(SBendLengthForRadius(height, radius), length)
	bend, err := SBend(l, height, segLength)
	if err != nil {
		return nil, 0, err
	}
	lead := (length - l) / 2
	path, err := wgeom.Nullpath().Knot(wgeom.Origin).
		Append(bend.Transformed(wgeom.Translation(wgeom.P(lead, 0)))).
		Knot(wgeom.P(length, height)).End()
	return path, radius, err
}
