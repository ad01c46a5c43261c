/*
Package curves produces the elementary waveguide shapes: straight
segments, circular arcs and biarcs, sinusoidal S-bends, Manhattan paths with
rounded corners, and taper profiles.

All shapes are returned as polylines whose points are at most a given
segment length apart along the curve. Where a closed form exists, the ideal
arc length is available independently of the point density, e.g.

	sb, _ := curves.SBend(10, 10, 0.2)
	residual := sb.Length() - curves.SBendAlength(10, 10) // < 0.01

S-bends requested with a bend radius larger than their (length, height) box
permits are clamped to the largest possible radius instead of failing.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curves

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'curves'
func tracer() tracing.Trace {
	return tracing.Select("curves")
}
