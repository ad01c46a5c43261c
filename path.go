package wgeom

import (
	"fmt"
	"math"
	"strings"
)

// Port is an entry or exit of a path or device. Heading is the direction
// (radians) in which a continuing waveguide leaves the port.
type Port struct {
	At      Pair
	Heading float64
}

func (pt Port) String() string {
	return fmt.Sprintf("%s∠%.4g°", pt.At, pt.Heading/Deg2Rad)
}

// Path is an ordered sequence of points, traversed in insertion order,
// together with the width of the waveguide drawn along it.
//
// Paths are immutable. Operations like Transformed or Join return new paths.
type Path struct {
	points []Pair
	width  float64
}

// NewPath creates a path from points. Duplicate consecutive points are
// dropped; at least two distinct points have to remain.
func NewPath(points []Pair, width float64) (*Path, error) {
	if width <= 0 || math.IsNaN(width) {
		return nil, Invalid("width", "must be positive, is %g", width)
	}
	pts := make([]Pair, 0, len(points))
	for i, p := range points {
		if p.IsNaN() {
			return nil, Invalid("points", "point %d is not a finite coordinate", i)
		}
		if len(pts) > 0 && pts[len(pts)-1].Equal(p) {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, Invalid("points", "path needs at least 2 distinct points, has %d", len(pts))
	}
	return &Path{points: pts, width: width}, nil
}

// Builder collects points for a path. Start with Nullpath().
type Builder struct {
	points []Pair
	width  float64
}

// Nullpath creates an empty path builder, to be extended by subsequent builder
// calls:
//
//	path, err := Nullpath().Knot(P(0,0)).Knot(P(3,2)).Append(sbend).End()
func Nullpath() *Builder {
	return &Builder{width: Width}
}

// Knot adds a point. Part of builder functionality.
func (b *Builder) Knot(p Pair) *Builder {
	b.points = append(b.points, p)
	return b
}

// Knots adds a sequence of points. Part of builder functionality.
func (b *Builder) Knots(ps ...Pair) *Builder {
	b.points = append(b.points, ps...)
	return b
}

// Append adds all points of a path. A first point coinciding with the
// current last point is merged. Part of builder functionality.
func (b *Builder) Append(path *Path) *Builder {
	if path != nil {
		b.points = append(b.points, path.points...)
	}
	return b
}

// Wide sets the waveguide width. Part of builder functionality.
func (b *Builder) Wide(w float64) *Builder {
	b.width = w
	return b
}

// End finishes the builder and returns the path.
func (b *Builder) End() (*Path, error) {
	return NewPath(b.points, b.width)
}

// N returns the number of points of this path.
func (path *Path) N() int {
	return len(path.points)
}

// Z returns point i. Negative i count from the end.
func (path *Path) Z(i int) Pair {
	if i < 0 {
		i += len(path.points)
	}
	return path.points[i]
}

// Points returns a copy of the point sequence.
func (path *Path) Points() []Pair {
	pts := make([]Pair, len(path.points))
	copy(pts, path.points)
	return pts
}

// Width returns the waveguide width.
func (path *Path) Width() float64 {
	return path.width
}

// Length is the arc length of the polyline.
func (path *Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(path.points); i++ {
		l += (path.points[i] - path.points[i-1]).Abs()
	}
	return l
}

// Port0 is the port at the first point, heading backwards along the path.
func (path *Path) Port0() Port {
	return Port{At: path.points[0], Heading: (path.points[0] - path.points[1]).Angle()}
}

// Port1 is the port at the last point, heading forward along the path.
func (path *Path) Port1() Port {
	n := len(path.points)
	return Port{At: path.points[n-1], Heading: (path.points[n-1] - path.points[n-2]).Angle()}
}

// WithWidth returns a copy of the path drawn with waveguide width w.
// Non-positive widths leave the width unchanged.
func (path *Path) WithWidth(w float64) *Path {
	if w <= 0 {
		w = path.width
	}
	return &Path{points: path.points, width: w}
}

// Transformed returns a new path with every point transformed by m.
func (path *Path) Transformed(m AT) *Path {
	pts := make([]Pair, len(path.points))
	for i, p := range path.points {
		pts[i] = m.Transform(p)
	}
	return &Path{points: pts, width: path.width}
}

// Reversed returns the path traversed from its last point to its first.
func (path *Path) Reversed() *Path {
	n := len(path.points)
	pts := make([]Pair, n)
	for i, p := range path.points {
		pts[n-1-i] = p
	}
	return &Path{points: pts, width: path.width}
}

// Join returns a new path continuing path with other. Other's first point is
// merged if it coincides with path's last point.
func (path *Path) Join(other *Path) *Path {
	pts := make([]Pair, 0, len(path.points)+len(other.points))
	pts = append(pts, path.points...)
	for _, p := range other.points {
		if pts[len(pts)-1].Equal(p) {
			continue
		}
		pts = append(pts, p)
	}
	return &Path{points: pts, width: path.width}
}

// Bounds returns the lower left and upper right corner of the bounding box
// of the path's center line.
func (path *Path) Bounds() (Pair, Pair) {
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	for _, p := range path.points {
		minx, maxx = math.Min(minx, p.X()), math.Max(maxx, p.X())
		miny, maxy = math.Min(miny, p.Y()), math.Max(maxy, p.Y())
	}
	return P(minx, miny), P(maxx, maxy)
}

// MinBendRadius estimates the tightest bend of the path as the smallest
// circumradius of three consecutive points. Straight paths report +Inf.
func (path *Path) MinBendRadius() float64 {
	r := math.Inf(1)
	for i := 1; i+1 < len(path.points); i++ {
		r = math.Min(r, circumradius(path.points[i-1], path.points[i], path.points[i+1]))
	}
	return r
}

func circumradius(p0, p1, p2 Pair) float64 {
	a, b, c := p1-p0, p2-p1, p2-p0
	cross := math.Abs(a.Cross(b))
	if cross <= Epsilon*Epsilon {
		return math.Inf(1)
	}
	return a.Abs() * b.Abs() * c.Abs() / (2 * cross)
}

// Crosses is a predicate: do path and other intersect? Touching at a shared
// end point does not count, overlapping collinear segments do.
func (path *Path) Crosses(other *Path) bool {
	lo1, hi1 := path.Bounds()
	lo2, hi2 := other.Bounds()
	if lo1.X() > hi2.X() || lo2.X() > hi1.X() || lo1.Y() > hi2.Y() || lo2.Y() > hi1.Y() {
		return false
	}
	for i := 1; i < len(path.points); i++ {
		a, b := path.points[i-1], path.points[i]
		for j := 1; j < len(other.points); j++ {
			if segmentsCross(a, b, other.points[j-1], other.points[j]) {
				tracer().Debugf("segment %d of %s crosses segment %d of %s", i-1, a, j-1, other.points[j-1])
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Pair) float64 {
	o := (b - a).Cross(c - a)
	if math.Abs(o) <= Epsilon {
		return 0
	}
	return o
}

func segmentsCross(a, b, c, d Pair) bool {
	if math.Max(a.X(), b.X()) < math.Min(c.X(), d.X()) || math.Max(c.X(), d.X()) < math.Min(a.X(), b.X()) ||
		math.Max(a.Y(), b.Y()) < math.Min(c.Y(), d.Y()) || math.Max(c.Y(), d.Y()) < math.Min(a.Y(), b.Y()) {
		return false
	}
	o1, o2 := orientation(a, b, c), orientation(a, b, d)
	o3, o4 := orientation(c, d, a), orientation(c, d, b)
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	if o1 == 0 && o2 == 0 && o3 == 0 && o4 == 0 { // collinear: overlap of positive length?
		dir := (b - a).Unit()
		s0, s1 := 0.0, (b - a).Dot(dir)
		t0, t1 := (c - a).Dot(dir), (d - a).Dot(dir)
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		return math.Min(s1, t1)-math.Max(s0, t0) > Epsilon
	}
	return false
}

// AsString returns a path as a (debugging) string.
//
//	(0,0) -- (1,0) -- (2,0.5)
func AsString(path *Path) string {
	var sb strings.Builder
	for i, p := range path.points {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		fmt.Fprintf(&sb, "(%.4g,%.4g)", Zap(p.X()), Zap(p.Y()))
	}
	return sb.String()
}
