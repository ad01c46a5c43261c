package polygon

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/wgforge/wgeom"
)

// maxMiter limits the outline corner extension at sharp path corners,
// in multiples of the half width.
const maxMiter = 4.0

// Outline returns the area covered by a waveguide of the path's width
// drawn along the path, with square ends. Corners are mitered.
func Outline(path *wgeom.Path) *Polygon {
	return Sections(path)[0]
}

// Sections cuts the outline of path at the path points with the given
// indices. The cuts run along the miter lines, so neighbouring sections share
// an edge and together cover exactly the area of Outline(path). Indices
// outside the inner points of path are ignored.
func Sections(path *wgeom.Path, cuts ...int) []*Polygon {
	left, right := offsets(path)
	n := path.N()
	bounds := []int{0}
	for _, c := range cuts {
		if c > bounds[len(bounds)-1] && c < n-1 {
			bounds = append(bounds, c)
		}
	}
	bounds = append(bounds, n-1)
	sections := make([]*Polygon, 0, len(bounds)-1)
	for k := 1; k < len(bounds); k++ {
		pg := NullPolygon()
		for i := bounds[k-1]; i <= bounds[k]; i++ {
			pg.Knot(left[i])
		}
		for i := bounds[k]; i >= bounds[k-1]; i-- {
			pg.Knot(right[i])
		}
		sections = append(sections, pg.Cycle())
	}
	return sections
}

// offsets returns the outline corners left and right of every path point.
func offsets(path *wgeom.Path) ([]wgeom.Pair, []wgeom.Pair) {
	n := path.N()
	half := path.Width() / 2
	left := make([]wgeom.Pair, n)
	right := make([]wgeom.Pair, n)
	for i := 0; i < n; i++ {
		var off wgeom.Pair
		switch {
		case i == 0:
			off = (path.Z(1) - path.Z(0)).Unit().Perp()
		case i == n-1:
			off = (path.Z(n-1) - path.Z(n-2)).Unit().Perp()
		default:
			n1 := (path.Z(i) - path.Z(i-1)).Unit().Perp()
			n2 := (path.Z(i+1) - path.Z(i)).Unit().Perp()
			m := (n1 + n2).Unit()
			c := m.Dot(n1)
			if c < 1/maxMiter {
				c = 1 / maxMiter
			}
			off = m.Scaled(1 / c)
		}
		left[i] = path.Z(i) + off.Scaled(half)
		right[i] = path.Z(i) - off.Scaled(half)
	}
	return left, right
}

// Merge collects the contours of polygons into one polygon, without
// resolving overlaps. Use it for polygons known to be disjoint.
func Merge(pgs ...*Polygon) *Polygon {
	merged := NullPolygon()
	for _, pg := range pgs {
		for _, c := range pg.contours {
			merged.contours = append(merged.contours, append([]wgeom.Pair(nil), c...))
		}
	}
	return merged
}

func (pg *Polygon) clip() polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(pg.contours))
	for _, c := range pg.contours {
		contour := make(polyclip.Contour, len(c))
		for i, p := range c {
			contour[i] = polyclip.Point{X: p.X(), Y: p.Y()}
		}
		out = append(out, contour)
	}
	return out
}

func fromClip(cp polyclip.Polygon) *Polygon {
	pg := NullPolygon()
	for _, c := range cp {
		for _, p := range c {
			pg.Knot(wgeom.P(p.X, p.Y))
		}
		pg.Cycle()
	}
	return pg
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) *Polygon {
	result := fromClip(pg.clip().Construct(op, other.clip()))
	L().Debugf("boolean op %d: %d + %d corners -> %d corners", op, pg.N(), other.N(), result.N())
	return result
}

// Union returns the area covered by pg or other.
func (pg *Polygon) Union(other *Polygon) *Polygon {
	return pg.construct(polyclip.UNION, other)
}

// Intersection returns the area covered by both pg and other.
func (pg *Polygon) Intersection(other *Polygon) *Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Difference returns the area covered by pg but not by other.
func (pg *Polygon) Difference(other *Polygon) *Polygon {
	return pg.construct(polyclip.DIFFERENCE, other)
}

// Xor returns the area covered by exactly one of pg and other.
func (pg *Polygon) Xor(other *Polygon) *Polygon {
	return pg.construct(polyclip.XOR, other)
}

// UnionAll merges a list of polygons into one.
func UnionAll(pgs ...*Polygon) *Polygon {
	acc := NullPolygon()
	for _, pg := range pgs {
		if acc.IsEmpty() {
			acc = pg
			continue
		}
		acc = acc.Union(pg)
	}
	return acc
}

// Overlap returns the area shared by two polygons. It is 0 for polygons
// which merely touch along an edge.
func Overlap(a, b *Polygon) float64 {
	lo1, hi1 := a.Bounds()
	lo2, hi2 := b.Bounds()
	if lo1.X() >= hi2.X() || lo2.X() >= hi1.X() || lo1.Y() >= hi2.Y() || lo2.Y() >= hi1.Y() {
		return 0
	}
	return math.Max(0, a.Intersection(b).Area())
}
