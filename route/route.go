/*
Package route connects bundles of waveguides between two ordered port lists.

Input ports sit at longitudinal position 0, output ports at the end of the
interconnect; both are given by their transverse offsets. Because both port
lists are sorted, the only non-crossing, order-preserving matching is the
identity pairing input[i] ↔ output[i]. Route bridges every pair with a
cosine S-bend, all bends sharing one profile, which keeps the bundle free of
crossings. Dense builds the "tall and skinny" alternative from 90° bends.

Unsorted port lists are rejected rather than sorted, as sorting would
silently change which logical port maps to which.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package route

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/curves"
	"github.com/wgforge/wgeom/polygon"
)

// tracer writes to trace with key 'route'
func tracer() tracing.Trace {
	return tracing.Select("route")
}

// Spacing is the default edge-to-edge spacing of the vertical runs of Dense.
var Spacing float64 = 2

// Axis is the direction waveguides leave the ports in.
type Axis int

const (
	// X routes from left to right, port offsets are y coordinates.
	X Axis = iota
	// Y routes from bottom to top, port offsets are x coordinates.
	Y
)

func (a Axis) String() string {
	if a == Y {
		return "y"
	}
	return "x"
}

// Request asks for an N-to-N interconnect.
type Request struct {
	Inputs  []float64
	Outputs []float64
	Axis    Axis
}

// direction returns +1 for ascending, −1 for descending offsets and 0 for a
// single offset. Repeated or unordered offsets are invalid.
func direction(name string, offsets []float64) (int, error) {
	dir := 0
	for i, o := range offsets {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return 0, wgeom.Invalid(name, "offset %d is not finite", i)
		}
		if i == 0 {
			continue
		}
		d := o - offsets[i-1]
		if math.Abs(d) <= wgeom.Epsilon {
			return 0, wgeom.Invalid(name, "offsets %d and %d coincide at %g", i-1, i, o)
		}
		s := 1
		if d < 0 {
			s = -1
		}
		if dir != 0 && s != dir {
			return 0, wgeom.Invalid(name, "offsets are not sorted at index %d", i)
		}
		dir = s
	}
	return dir, nil
}

// validate checks the request and returns its port order (+1, −1, or 0 for
// a single pair).
func (req Request) validate() (int, error) {
	if len(req.Inputs) != len(req.Outputs) {
		return 0, wgeom.Invalid("ports", "%d inputs cannot be routed N-to-N to %d outputs",
			len(req.Inputs), len(req.Outputs))
	}
	if len(req.Inputs) == 0 {
		return 0, wgeom.Invalid("ports", "no ports to route")
	}
	if req.Axis != X && req.Axis != Y {
		return 0, wgeom.Invalid("axis", "unknown axis %d", int(req.Axis))
	}
	din, err := direction("inputs", req.Inputs)
	if err != nil {
		return 0, err
	}
	dout, err := direction("outputs", req.Outputs)
	if err != nil {
		return 0, err
	}
	if din != dout {
		return 0, wgeom.Invalid("ports", "inputs and outputs are sorted in opposite directions")
	}
	return din, nil
}

// frame returns the transform from routing coordinates, x longitudinal and
// y transverse, to the coordinates of the request's axis.
func (req Request) frame() wgeom.AT {
	if req.Axis == Y {
		return wgeom.MirrorX().Combine(wgeom.Rotation(90 * wgeom.Deg2Rad))
	}
	return wgeom.Identity()
}

// pitch checks that neighbouring ports leave room for a waveguide each.
func (req Request) pitch(width float64) error {
	for i := 1; i < len(req.Inputs); i++ {
		if d := math.Abs(req.Inputs[i] - req.Inputs[i-1]); d < width-wgeom.Epsilon {
			return wgeom.Infeasible("inputs %d and %d are %g apart, closer than width %g", i-1, i, d, width)
		}
		if d := math.Abs(req.Outputs[i] - req.Outputs[i-1]); d < width-wgeom.Epsilon {
			return wgeom.Infeasible("outputs %d and %d are %g apart, closer than width %g", i-1, i, d, width)
		}
	}
	return nil
}

// --- Options ---------------------------------------------------------------

type options struct {
	minRadius  float64
	span       float64
	segLength  float64
	width      float64
	spacing    float64
	hasSpacing bool
}

// Option configures a router.
type Option func(*options)

// WithMinBendRadius sets the smallest bend radius the router may produce.
// Defaults to wgeom.MinBendRadius.
func WithMinBendRadius(r float64) Option {
	return func(o *options) {
		o.minRadius = r
	}
}

// WithSpan sets the longitudinal distance between input and output ports.
// 0, the default, selects the shortest interconnect possible.
func WithSpan(span float64) Option {
	return func(o *options) {
		o.span = span
	}
}

// WithSegLength sets the point spacing of curved parts.
func WithSegLength(seg float64) Option {
	return func(o *options) {
		o.segLength = seg
	}
}

// WithWidth sets the waveguide width.
func WithWidth(w float64) Option {
	return func(o *options) {
		o.width = w
	}
}

// WithSpacing sets the edge-to-edge spacing of the vertical runs of Dense.
// It cannot be combined with WithSpan.
func WithSpacing(s float64) Option {
	return func(o *options) {
		o.spacing = s
		o.hasSpacing = true
	}
}

func collect(opts []Option) (*options, error) {
	o := &options{
		minRadius: wgeom.MinBendRadius,
		segLength: wgeom.SegLength,
		width:     wgeom.Width,
		spacing:   Spacing,
	}
	for _, opt := range opts {
		opt(o)
	}
	switch {
	case !(o.minRadius > 0):
		return nil, wgeom.Invalid("min bend radius", "must be positive, is %g", o.minRadius)
	case !(o.segLength > 0):
		return nil, wgeom.Invalid("seg length", "must be positive, is %g", o.segLength)
	case !(o.width > 0):
		return nil, wgeom.Invalid("width", "must be positive, is %g", o.width)
	case o.span < 0 || math.IsNaN(o.span):
		return nil, wgeom.Invalid("span", "must not be negative, is %g", o.span)
	case o.spacing < 0:
		return nil, wgeom.Invalid("spacing", "must not be negative, is %g", o.spacing)
	}
	return o, nil
}

// --- S-bend router ---------------------------------------------------------

// maxLengthening caps the attempts to stretch the shared bend until its
// sampled radius meets the minimum.
const maxLengthening = 200

// Route connects input[i] to output[i] for every i. All paths bend over the
// same longitudinal span with the same cosine profile, sampled at the same
// longitudinal positions; the span is the shortest one keeping the largest
// offset change at or above the minimum bend radius with the outlines of
// neighbouring waveguides disjoint. A WithSpan larger than that centers the
// bends and pads them with straight leads. Bundles without any offset change
// are straight, WithSpan long or, without a span, the minimum bend radius.
//
// Unequal or unsorted port lists are invalid. Neighbouring ports closer than
// the waveguide width and spans too short for the bends are infeasible.
func Route(req Request, opts ...Option) ([]*wgeom.Path, error) {
	if _, err := req.validate(); err != nil {
		return nil, err
	}
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if err := req.pitch(o.width); err != nil {
		return nil, err
	}
	n := len(req.Inputs)
	dmax := 0.0
	for i := range req.Inputs {
		dmax = math.Max(dmax, math.Abs(req.Outputs[i]-req.Inputs[i]))
	}
	at := req.frame()
	paths := make([]*wgeom.Path, n)
	if wgeom.Is0(dmax) {
		length := o.span
		if length == 0 {
			length = o.minRadius
		}
		for i, y := range req.Inputs {
			if paths[i], err = wgeom.NewPath([]wgeom.Pair{wgeom.P(0, y), wgeom.P(length, y)}, o.width); err != nil {
				return nil, err
			}
			paths[i] = paths[i].Transformed(at)
		}
		tracer().Infof("routed %d aligned ports straight over %g", n, length)
		return paths, nil
	}
	bends, length, err := sharedBends(req, dmax, o)
	if err != nil {
		return nil, err
	}
	span := length
	if o.span > 0 {
		if o.span < length-wgeom.Epsilon {
			return nil, wgeom.Infeasible("span %g too short for bends of length %.4g at radius %g",
				o.span, length, o.minRadius)
		}
		span = math.Max(o.span, length)
	}
	lead := (span - length) / 2
	for i, bend := range bends {
		in, out := req.Inputs[i], req.Outputs[i]
		b := wgeom.Nullpath().Wide(o.width).Knot(wgeom.P(0, in))
		b.Append(bend.Transformed(wgeom.Translation(wgeom.P(lead, in))))
		if paths[i], err = b.Knot(wgeom.P(span, out)).End(); err != nil {
			return nil, err
		}
		paths[i] = paths[i].Transformed(at)
	}
	tracer().Infof("routed %d ports, bend length %.4g, span %.4g", n, length, span)
	return paths, nil
}

// sharedBends builds one S-bend per port pair, all of the same length and
// sampled at the same x positions. It stretches the bends until the
// tightest sampled radius reaches the minimum and neighbouring waveguides
// keep apart on the steep middle part of the bends.
func sharedBends(req Request, dmax float64, o *options) ([]*wgeom.Path, float64, error) {
	length := curves.SBendLengthForRadius(dmax, o.minRadius)
	bends := make([]*wgeom.Path, len(req.Inputs))
	for k := 0; k < maxLengthening; k++ {
		a := math.Pi * dmax / (2 * length)
		segs := int(math.Ceil(length * math.Sqrt(1+a*a) / o.segLength))
		r := math.Inf(1)
		for i := range bends {
			bend, err := curves.SBendN(length, req.Outputs[i]-req.Inputs[i], segs)
			if err != nil {
				return nil, 0, err
			}
			bends[i] = bend.WithWidth(o.width)
			r = math.Min(r, bend.MinBendRadius())
		}
		tracer().Debugf("bend length %.4g with %d segments: radius %.4g", length, segs, r)
		if r >= o.minRadius*(1-1e-9) {
			i, ov := overlapping(bends)
			if i < 0 {
				return bends, length, nil
			}
			tracer().Debugf("bends %d and %d overlap by area %.4g", i-1, i, ov)
		}
		length *= 1.01
	}
	return nil, 0, wgeom.Infeasible("no bend length reaches radius %g with disjoint waveguides", o.minRadius)
}

// --- Checks ----------------------------------------------------------------

// Check verifies a bundle of routed paths. No two paths may cross, no path
// may bend tighter than minRadius, and no two neighbouring waveguides may
// overlap. Paths are neighbours if they are adjacent in the slice. A
// minRadius of 0 skips the radius check.
//
// The slice has to be in port order: across the bundle's axis, from the
// first path's start towards its end, starts and ends of neighbouring paths
// have to step to the same side, the same side for every pair. Paths which
// do not cross keep that order at every cut through the bundle between the
// port lines.
func Check(paths []*wgeom.Path, minRadius float64) error {
	for i, p := range paths {
		if minRadius > 0 {
			if r := p.MinBendRadius(); r < minRadius*(1-1e-9) {
				return wgeom.Infeasible("path %d bends with radius %.4g < %g", i, r, minRadius)
			}
		}
		for j := i + 1; j < len(paths); j++ {
			if p.Crosses(paths[j]) {
				return wgeom.Infeasible("paths %d and %d cross", i, j)
			}
		}
	}
	if err := ordered(paths); err != nil {
		return err
	}
	if i, ov := overlapping(paths); i >= 0 {
		return wgeom.Infeasible("waveguides %d and %d overlap by area %.4g", i-1, i, ov)
	}
	return nil
}

// ordered checks that the paths' starts and ends are sorted alike across
// the axis from the first path's start to its end.
func ordered(paths []*wgeom.Path) error {
	if len(paths) < 2 {
		return nil
	}
	axis := paths[0].Z(-1) - paths[0].Z(0)
	if wgeom.Is0(axis.Abs()) {
		return nil
	}
	across := axis.Unit().Perp()
	side := 0.0
	for i := 1; i < len(paths); i++ {
		s0 := across.Dot(paths[i].Z(0) - paths[i-1].Z(0))
		s1 := across.Dot(paths[i].Z(-1) - paths[i-1].Z(-1))
		if s0*s1 <= 0 || s0*side < 0 {
			return wgeom.Infeasible("paths %d and %d are out of port order", i-1, i)
		}
		side = s0
	}
	return nil
}

// overlapping returns the index i of the first path whose outline overlaps
// the one of path i-1, together with the overlap area, or -1.
func overlapping(paths []*wgeom.Path) (int, float64) {
	for i := 1; i < len(paths); i++ {
		ov := polygon.Overlap(polygon.Outline(paths[i-1]), polygon.Outline(paths[i]))
		if ov > wgeom.Epsilon {
			return i, ov
		}
	}
	return -1, 0
}
