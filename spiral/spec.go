/*
Package spiral generates two-armed delay spirals.

A delay spiral packs a long waveguide into a small footprint. Both arms wind
outward from the centre along an Archimedean spiral r(θ) = a + bθ, one arm
rotated by π against the other, so that the windings of the two arms
interleave with centre-to-centre distance Spacing. In the centre the arms are
joined by an S-shaped pair of circular arcs. The ports of the spiral are the
outer ends of the two arms.

Extra spacing may be inserted between the windings, separately for the
vertical and horizontal direction and for every half-turn pass. The spiral
is split at the points where its tangent is horizontal or vertical; the
quarter turns between those points are moved apart and the gaps are bridged
by straight waveguide segments, which keeps the tangent continuous.

Geometric builds a spiral from its shape parameters, ToLength adjusts the
radial shift a until the spiral has a requested length.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spiral

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
)

// tracer writes to trace with key 'spiral'
func tracer() tracing.Trace {
	return tracing.Select("spiral")
}

// DefaultNPts is the number of polyline points per quarter turn.
var DefaultNPts = 64

// Mode selects which side of the spiral receives extra spacing.
type Mode int

const (
	Symmetric Mode = iota // half on each side
	Left
	Right
	Top
	Bottom
)

func (m Mode) String() string {
	switch m {
	case Symmetric:
		return "symmetric"
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// factors returns the share of extra spacing moving the positive side
// (right, top) and the negative side (left, bottom).
func (m Mode) factors(horizontal bool) (float64, float64, bool) {
	switch {
	case m == Symmetric:
		return 0.5, 0.5, true
	case horizontal && m == Right, !horizontal && m == Top:
		return 1, 0, true
	case horizontal && m == Left, !horizontal && m == Bottom:
		return 0, 1, true
	}
	return 0, 0, false
}

// Side names the side of the spiral an arm ends on.
type Side int

const (
	SideAuto Side = iota
	SideRight
	SideTop
	SideLeft
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideAuto:
		return "auto"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideBottom:
		return "bottom"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// PadRule tells how per-pass spacing arrays of the wrong length are treated.
type PadRule int

const (
	PadStrict     PadRule = iota // wrong lengths are an error
	PadRepeatLast                // pad by repeating the last value, or truncate
)

// Extra is an amount of extra spacing, either one value for every pass or a
// list of values, one per half-turn pass. Create it with Uniform or PerPass.
// The zero value is no extra spacing.
type Extra struct {
	values  []float64
	perPass bool
}

// Uniform is the same extra spacing v for every pass.
func Uniform(v float64) Extra {
	return Extra{values: []float64{v}}
}

// PerPass is a list of extra spacings. For a spiral of n turns it is
// expected to hold 2n+1 entries; entry 0 widens the centre, entry k the gap
// crossed on the k-th half-turn.
func PerPass(v ...float64) Extra {
	vals := make([]float64, len(v))
	copy(vals, v)
	return Extra{values: vals, perPass: true}
}

func (e Extra) String() string {
	if e.perPass {
		return fmt.Sprintf("per-pass%v", e.values)
	}
	if len(e.values) == 0 {
		return "uniform(0)"
	}
	return fmt.Sprintf("uniform(%g)", e.values[0])
}

// resolve expands e to exactly 2·turns+1 entries.
func (e Extra) resolve(name string, turns int, pad PadRule) ([]float64, error) {
	n := 2*turns + 1
	out := make([]float64, n)
	if !e.perPass {
		v := 0.0
		if len(e.values) > 0 {
			v = e.values[0]
		}
		if v < 0 || math.IsNaN(v) {
			return nil, wgeom.Invalid(name, "extra spacing must not be negative, is %g", v)
		}
		for i := range out {
			out[i] = v
		}
		return out, nil
	}
	if len(e.values) != n {
		if pad == PadStrict || len(e.values) == 0 {
			return nil, wgeom.Invalid(name, "need %d entries for %d turns, have %d", n, turns, len(e.values))
		}
		tracer().Infof("%s: padding %d entries to %d", name, len(e.values), n)
	}
	for i := range out {
		if i < len(e.values) {
			out[i] = e.values[i]
		} else {
			out[i] = e.values[len(e.values)-1]
		}
		if out[i] < 0 || math.IsNaN(out[i]) {
			return nil, wgeom.Invalid(name, "extra spacing %d must not be negative, is %g", i, out[i])
		}
	}
	return out, nil
}

// Spec holds the shape parameters of a spiral. Zero values of NPts, Width,
// MinBendRadius and SegLength select the package defaults.
type Spec struct {
	Turns          int     // windings of each arm, ≥ 1
	Spacing        float64 // centre-to-centre distance of neighbouring windings
	Vertical       Extra   // extra spacing between windings above and below the centre
	Horizontal     Extra   // extra spacing between windings left and right of the centre
	VerticalMode   Mode    // Symmetric, Top or Bottom
	HorizontalMode Mode    // Symmetric, Left or Right
	Pad            PadRule
	RadialShift    float64 // a in r(θ) = a + bθ
	StartAngle     float64 // rigid rotation of the finished spiral in radians, not the polar start angle θ₀
	NPts           int     // points per quarter turn
	Port0Side      Side
	Port1Side      Side
	Width          float64
	MinBendRadius  float64
	SegLength      float64 // point distance on the centre connector
}

// shape is a validated Spec with all defaults and arrays resolved.
type shape struct {
	turns          int
	b              float64
	h, v           []float64
	fR, fL, fT, fB float64
	npts           int
	endA, endB     int // critical index at which each arm ends
	startAngle     float64
	width          float64
	minRadius      float64
	segLength      float64
}

func (spec Spec) resolve() (*shape, error) {
	if spec.Turns < 1 {
		return nil, wgeom.Invalid("turns", "need at least 1 turn, have %d", spec.Turns)
	}
	sh := &shape{
		turns:      spec.Turns,
		npts:       spec.NPts,
		width:      spec.Width,
		minRadius:  spec.MinBendRadius,
		segLength:  spec.SegLength,
		startAngle: spec.StartAngle,
	}
	if sh.npts == 0 {
		sh.npts = DefaultNPts
	}
	if sh.width == 0 {
		sh.width = wgeom.Width
	}
	if sh.minRadius == 0 {
		sh.minRadius = wgeom.MinBendRadius
	}
	if sh.segLength == 0 {
		sh.segLength = wgeom.SegLength
	}
	if sh.npts < 2 {
		return nil, wgeom.Invalid("npts", "need at least 2 points per quarter turn, have %d", sh.npts)
	}
	if sh.width < 0 || sh.minRadius < 0 || sh.segLength < 0 {
		return nil, wgeom.Invalid("width/radius/segLength", "must not be negative")
	}
	if !(spec.Spacing > sh.width) {
		return nil, wgeom.Invalid("spacing", "spacing %g must exceed waveguide width %g", spec.Spacing, sh.width)
	}
	sh.b = spec.Spacing / math.Pi
	var ok bool
	if sh.fR, sh.fL, ok = spec.HorizontalMode.factors(true); !ok {
		return nil, wgeom.Invalid("horizontal mode", "%s is not one of symmetric, left, right", spec.HorizontalMode)
	}
	if sh.fT, sh.fB, ok = spec.VerticalMode.factors(false); !ok {
		return nil, wgeom.Invalid("vertical mode", "%s is not one of symmetric, top, bottom", spec.VerticalMode)
	}
	var err error
	if sh.h, err = spec.Horizontal.resolve("horizontal", spec.Turns, spec.Pad); err != nil {
		return nil, err
	}
	if sh.v, err = spec.Vertical.resolve("vertical", spec.Turns, spec.Pad); err != nil {
		return nil, err
	}
	if sh.endA, err = endIndex(spec.Port1Side, spec.Turns, 0); err != nil {
		return nil, err
	}
	if sh.endB, err = endIndex(spec.Port0Side, spec.Turns, 2); err != nil {
		return nil, err
	}
	return sh, nil
}

// endIndex is the critical point at which an arm ends to leave the spiral
// on the given side. rot is the quarter of the arm's start side, counted
// counter-clockwise from the right.
func endIndex(side Side, turns int, rot int) (int, error) {
	var q int
	switch side {
	case SideAuto, SideRight:
		q = 0
	case SideTop:
		q = 1
	case SideLeft:
		q = 2
	case SideBottom:
		q = 3
	default:
		return 0, wgeom.Invalid("port side", "unknown side %s", side)
	}
	if side == SideAuto {
		return 4 * turns, nil
	}
	k := (q - rot + 4) % 4
	if k == 0 {
		return 4 * turns, nil
	}
	return 4*(turns-1) + k, nil
}
