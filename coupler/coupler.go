/*
Package coupler composes directional couplers.

A coupler is a pair of straight waveguides running in parallel at a small
gap, the coupling region, flanked by four S-bend arms which lead the
waveguides apart towards the device ports:

	UL ⎺⎺⎺╲____________________╱⎺⎺⎺ UR
	                                       upper waveguide
	        ⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽⎽           lower waveguide
	LL ___╱                    ╲___ LR

Every arm may have its own length and height. The derived quantities
(Length, Height, Center, Ports) are computed from the same frame the
geometry is built in, so reported and drawn dimensions never drift apart.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package coupler

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/curves"
	"github.com/wgforge/wgeom/polygon"
)

// tracer writes to trace with key 'coupler'
func tracer() tracing.Trace {
	return tracing.Select("coupler")
}

// Params describes a coupler. SegLength 0 selects wgeom.SegLength.
// MinBendRadius 0 disables the bend radius check of the arms.
type Params struct {
	CouplingLength float64
	Gap            float64
	Width          float64
	Arms           ArmSpec
	SegLength      float64
	MinBendRadius  float64
}

// frame holds the coordinates every coupler quantity is derived from.
// The leftmost port sits at x = 0, the lower-left port at y = 0.
type frame struct {
	arms   Arms
	width  float64
	seg    float64
	xs, xe float64 // start and end of the coupling region
	yl, yu float64 // lower and upper straight
}

func (p Params) frame() (*frame, error) {
	if !(p.Width > 0) {
		return nil, wgeom.Invalid("width", "must be positive, is %g", p.Width)
	}
	if !(p.CouplingLength > wgeom.Epsilon) || math.IsInf(p.CouplingLength, 0) {
		return nil, wgeom.Invalid("coupling length", "must be positive, is %g", p.CouplingLength)
	}
	if p.SegLength < 0 || p.MinBendRadius < 0 {
		return nil, wgeom.Invalid("segLength/minBendRadius", "must not be negative")
	}
	arms, err := ResolveArms(p.Arms)
	if err != nil {
		return nil, err
	}
	if !(p.Gap > wgeom.Epsilon) {
		return nil, wgeom.Infeasible("coupler gap %g leaves the waveguides touching", p.Gap)
	}
	if p.MinBendRadius > 0 {
		for _, c := range Corners {
			if r := curves.SBendMaxRadius(arms[c].Length, arms[c].Height); r < p.MinBendRadius {
				return nil, wgeom.Infeasible("%s arm %g × %g bends with radius %.4g < %g",
					c, arms[c].Length, arms[c].Height, r, p.MinBendRadius)
			}
		}
	}
	f := &frame{arms: arms, width: p.Width, seg: p.SegLength}
	if f.seg == 0 {
		f.seg = wgeom.SegLength
	}
	f.xs = math.Max(arms[LowerLeft].Length, arms[UpperLeft].Length)
	f.xe = f.xs + p.CouplingLength
	f.yl = arms[LowerLeft].Height
	f.yu = f.yl + p.Width + p.Gap
	return f, nil
}

func (f *frame) ports() [4]wgeom.Port {
	a := f.arms
	var ports [4]wgeom.Port
	ports[LowerLeft] = wgeom.Port{At: wgeom.P(f.xs-a[LowerLeft].Length, 0), Heading: math.Pi}
	ports[UpperLeft] = wgeom.Port{At: wgeom.P(f.xs-a[UpperLeft].Length, f.yu+a[UpperLeft].Height), Heading: math.Pi}
	ports[LowerRight] = wgeom.Port{At: wgeom.P(f.xe+a[LowerRight].Length, f.yl-a[LowerRight].Height)}
	ports[UpperRight] = wgeom.Port{At: wgeom.P(f.xe+a[UpperRight].Length, f.yu+a[UpperRight].Height)}
	return ports
}

// ylimits returns the lowest and highest y of the drawn waveguides,
// including their width.
func (f *frame) ylimits() (float64, float64) {
	a := f.arms
	lo := math.Min(0, f.yl-a[LowerRight].Height) - f.width/2
	hi := f.yu + math.Max(a[UpperLeft].Height, a[UpperRight].Height) + f.width/2
	return lo, hi
}

func (f *frame) length() float64 {
	return f.xe + math.Max(f.arms[LowerRight].Length, f.arms[UpperRight].Length)
}

// Length returns the extent of the coupler along the waveguides, from the
// leftmost to the rightmost port.
func Length(p Params) (float64, error) {
	f, err := p.frame()
	if err != nil {
		return 0, err
	}
	return f.length(), nil
}

// Height returns the extent of the coupler across the waveguides, including
// the waveguide width.
func Height(p Params) (float64, error) {
	f, err := p.frame()
	if err != nil {
		return 0, err
	}
	lo, hi := f.ylimits()
	return hi - lo, nil
}

// Center returns the center of the coupler's bounding box.
func Center(p Params) (wgeom.Pair, error) {
	f, err := p.frame()
	if err != nil {
		return wgeom.Origin, err
	}
	lo, hi := f.ylimits()
	return wgeom.P(f.length()/2, (lo+hi)/2), nil
}

// Ports returns the four device ports, indexed by Corner. Headings point
// away from the device.
func Ports(p Params) ([4]wgeom.Port, error) {
	f, err := p.frame()
	if err != nil {
		return [4]wgeom.Port{}, err
	}
	return f.ports(), nil
}

// Segment indexes the six paths of a coupler.
type Segment int

const (
	Input1 Segment = iota
	Straight1
	Output1
	Input2
	Straight2
	Output2
)

var segmentNames = [6]string{"input1", "straight1", "output1", "input2", "straight2", "output2"}

func (s Segment) String() string {
	if s < Input1 || s > Output2 {
		return "segment?"
	}
	return segmentNames[s]
}

// Device is a built coupler. Paths of the lower waveguide run from the
// lower-left to the lower-right port, paths of the upper one from the
// upper-left to the upper-right port.
type Device struct {
	Paths  [6]*wgeom.Path
	Ports  [4]wgeom.Port
	Length float64
	Height float64
	Center wgeom.Pair
}

// Build constructs the coupler geometry.
func Build(p Params) (*Device, error) {
	f, err := p.frame()
	if err != nil {
		return nil, err
	}
	a := f.arms
	arm := func(c Corner) (*wgeom.Path, error) {
		path, err := curves.SBend(a[c].Length, a[c].Height, f.seg)
		if err != nil {
			return nil, err
		}
		return path.WithWidth(f.width), nil
	}
	straight := func(y float64) (*wgeom.Path, error) {
		return wgeom.NewPath([]wgeom.Pair{wgeom.P(f.xs, y), wgeom.P(f.xe, y)}, f.width)
	}
	dev := &Device{Ports: f.ports(), Length: f.length()}
	lo, hi := f.ylimits()
	dev.Height = hi - lo
	dev.Center = wgeom.P(dev.Length/2, (lo+hi)/2)
	var parts [6]*wgeom.Path
	if parts[Input1], err = arm(LowerLeft); err != nil {
		return nil, err
	}
	parts[Input1] = parts[Input1].Transformed(wgeom.Translation(wgeom.P(f.xs-a[LowerLeft].Length, 0)))
	if parts[Output1], err = arm(LowerRight); err != nil {
		return nil, err
	}
	parts[Output1] = parts[Output1].Transformed(wgeom.MirrorX().Combine(wgeom.Translation(wgeom.P(f.xe, f.yl))))
	if parts[Input2], err = arm(UpperLeft); err != nil {
		return nil, err
	}
	parts[Input2] = parts[Input2].Transformed(wgeom.MirrorY().Combine(wgeom.Translation(wgeom.P(f.xs, f.yu)))).Reversed()
	if parts[Output2], err = arm(UpperRight); err != nil {
		return nil, err
	}
	parts[Output2] = parts[Output2].Transformed(wgeom.Translation(wgeom.P(f.xe, f.yu)))
	if parts[Straight1], err = straight(f.yl); err != nil {
		return nil, err
	}
	if parts[Straight2], err = straight(f.yu); err != nil {
		return nil, err
	}
	dev.Paths = parts
	if ov := polygon.Overlap(polygon.Outline(dev.waveguide(0)), polygon.Outline(dev.waveguide(1))); ov > 0 {
		return nil, wgeom.Infeasible("coupler waveguides overlap by area %.4g", ov)
	}
	tracer().Infof("coupler %.4g × %.4g, coupling region [%.4g, %.4g]", dev.Length, dev.Height, f.xs, f.xe)
	return dev, nil
}

// waveguide joins the three paths of the lower (0) or upper (1) waveguide.
func (dev *Device) waveguide(k int) *wgeom.Path {
	s := Segment(3 * k)
	return dev.Paths[s].Join(dev.Paths[s+1]).Join(dev.Paths[s+2])
}

// Mode selects how a coupler is emitted.
type Mode int

const (
	// Combined emits the coupler as one region.
	Combined Mode = iota
	// Divided emits one region per path: input1, straight1, output1,
	// input2, straight2, output2.
	Divided
)

func (m Mode) String() string {
	if m == Divided {
		return "divided"
	}
	return "combined"
}

// Region is a named part of a coupler together with the area it covers.
type Region struct {
	Name  string
	Paths []*wgeom.Path
	Area  *polygon.Polygon
}

// Regions returns the coupler as a single region or as six regions which
// tile the single one. Division happens along the miter lines where the
// arms meet the straights.
func (dev *Device) Regions(mode Mode) []Region {
	if mode != Divided {
		return []Region{{
			Name:  "coupler",
			Paths: dev.Paths[:],
			Area:  polygon.Merge(polygon.Outline(dev.waveguide(0)), polygon.Outline(dev.waveguide(1))),
		}}
	}
	regions := make([]Region, 0, 6)
	for k := 0; k < 2; k++ {
		s := Segment(3 * k)
		j := dev.Paths[s].N() - 1
		sections := polygon.Sections(dev.waveguide(k), j, j+1)
		for i, sec := range sections {
			regions = append(regions, Region{
				Name:  (s + Segment(i)).String(),
				Paths: []*wgeom.Path{dev.Paths[s+Segment(i)]},
				Area:  sec,
			})
		}
	}
	tracer().Debugf("coupler divided into %d regions", len(regions))
	return regions
}
