/*
Package polygon deals with closed polygonal areas: waveguide outlines,
taper profiles and the results of boolean operations on them.

Polygons are built much like paths:

	pg := NullPolygon().Knot(P(0, 0)).Knot(P(1, 3)).Knot(P(3, 0)).Cycle()

A polygon may consist of several contours, e.g. after a union of disjoint
areas. Boolean operations are delegated to polyclip-go.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
)

// L traces with key 'polygon'.
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a set of closed contours. Contours are stored without
// repeating the first point at the end.
type Polygon struct {
	contours [][]wgeom.Pair
	open     bool // last contour is still being built
}

// NullPolygon creates an empty polygon, to be extended by Knot and Cycle.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot adds a corner to the contour under construction.
// Part of builder functionality.
func (pg *Polygon) Knot(p wgeom.Pair) *Polygon {
	if !pg.open {
		pg.contours = append(pg.contours, nil)
		pg.open = true
	}
	last := len(pg.contours) - 1
	c := pg.contours[last]
	if len(c) > 0 && c[len(c)-1].Equal(p) {
		return pg
	}
	pg.contours[last] = append(c, p)
	return pg
}

// Cycle closes the contour under construction. A following Knot starts a
// new contour. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	if pg.open {
		last := len(pg.contours) - 1
		c := pg.contours[last]
		if len(c) > 1 && c[0].Equal(c[len(c)-1]) {
			pg.contours[last] = c[:len(c)-1]
		}
		if len(pg.contours[last]) < 3 {
			L().Errorf("dropping degenerate contour with %d corners", len(pg.contours[last]))
			pg.contours = pg.contours[:last]
		}
	}
	pg.open = false
	return pg
}

// Box creates a rectangle from two opposite corners.
func Box(a, b wgeom.Pair) *Polygon {
	minx, maxx := math.Min(a.X(), b.X()), math.Max(a.X(), b.X())
	miny, maxy := math.Min(a.Y(), b.Y()), math.Max(a.Y(), b.Y())
	return NullPolygon().Knot(wgeom.P(minx, miny)).Knot(wgeom.P(maxx, miny)).
		Knot(wgeom.P(maxx, maxy)).Knot(wgeom.P(minx, maxy)).Cycle()
}

// N returns the number of corners over all contours.
func (pg *Polygon) N() int {
	n := 0
	for _, c := range pg.contours {
		n += len(c)
	}
	return n
}

// IsEmpty is a predicate: has this polygon no contour?
func (pg *Polygon) IsEmpty() bool {
	return len(pg.contours) == 0
}

// Contours returns a copy of the contours.
func (pg *Polygon) Contours() [][]wgeom.Pair {
	cs := make([][]wgeom.Pair, len(pg.contours))
	for i, c := range pg.contours {
		cs[i] = append([]wgeom.Pair(nil), c...)
	}
	return cs
}

// Bounds returns the lower left and upper right corner of the bounding box.
func (pg *Polygon) Bounds() (wgeom.Pair, wgeom.Pair) {
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	for _, c := range pg.contours {
		for _, p := range c {
			minx, maxx = math.Min(minx, p.X()), math.Max(maxx, p.X())
			miny, maxy = math.Min(miny, p.Y()), math.Max(maxy, p.Y())
		}
	}
	return wgeom.P(minx, miny), wgeom.P(maxx, maxy)
}

// Area is the enclosed area. Contours nested inside an odd number of other
// contours count as holes.
func (pg *Polygon) Area() float64 {
	a := 0.0
	for i, c := range pg.contours {
		depth := 0
		for j, o := range pg.contours {
			if i != j && len(c) > 0 && contains(o, c[0]) {
				depth++
			}
		}
		if depth%2 == 0 {
			a += math.Abs(signedArea(c))
		} else {
			a -= math.Abs(signedArea(c))
		}
	}
	return a
}

// Contains is a predicate: lies p inside the polygon (even-odd rule)?
func (pg *Polygon) Contains(p wgeom.Pair) bool {
	inside := false
	for _, c := range pg.contours {
		if contains(c, p) {
			inside = !inside
		}
	}
	return inside
}

func signedArea(c []wgeom.Pair) float64 {
	a := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].Cross(c[j])
	}
	return a / 2
}

func contains(c []wgeom.Pair, p wgeom.Pair) bool {
	inside := false
	for i, j := 0, len(c)-1; i < len(c); j, i = i, i+1 {
		pi, pj := c[i], c[j]
		if (pi.Y() > p.Y()) != (pj.Y() > p.Y()) {
			x := (pj.X()-pi.X())*(p.Y()-pi.Y())/(pj.Y()-pi.Y()) + pi.X()
			if p.X() < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Transformed returns a copy of the polygon with every corner transformed.
func (pg *Polygon) Transformed(m wgeom.AT) *Polygon {
	out := NullPolygon()
	for _, c := range pg.contours {
		for _, p := range c {
			out.Knot(m.Transform(p))
		}
		out.Cycle()
	}
	return out
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for i, c := range pg.contours {
		if i > 0 {
			sb.WriteString(" ; ")
		}
		for _, p := range c {
			fmt.Fprintf(&sb, "(%.4g,%.4g) -- ", wgeom.Zap(p.X()), wgeom.Zap(p.Y()))
		}
		sb.WriteString("cycle")
	}
	return sb.String()
}
