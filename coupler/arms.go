package coupler

import (
	"fmt"
	"math"

	"github.com/wgforge/wgeom"
)

// Corner identifies one of the four arms of a coupler.
type Corner int

const (
	LowerLeft Corner = iota
	LowerRight
	UpperLeft
	UpperRight
)

// Corners lists all corners in index order.
var Corners = [4]Corner{LowerLeft, LowerRight, UpperLeft, UpperRight}

func (c Corner) String() string {
	switch c {
	case LowerLeft:
		return "lower-left"
	case LowerRight:
		return "lower-right"
	case UpperLeft:
		return "upper-left"
	case UpperRight:
		return "upper-right"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// Arm is the S-bend leading from a port to the coupling region. Length is
// its extent along the waveguides, Height the distance it moves the port
// away from the coupling region.
type Arm struct {
	Length, Height float64
}

// Arms holds the resolved arm of every corner, indexed by Corner.
type Arms [4]Arm

// ArmSpec describes the arms of a coupler, either one arm for all corners
// or one arm per corner. Create it with Uniform or PerCorner.
type ArmSpec struct {
	uniform   Arm
	perCorner map[Corner]Arm
	isUniform bool
}

// Uniform uses the same arm at all four corners.
func Uniform(arm Arm) ArmSpec {
	return ArmSpec{uniform: arm, isUniform: true}
}

// PerCorner uses an individual arm for every corner. The map has to hold
// exactly the four corners.
func PerCorner(arms map[Corner]Arm) ArmSpec {
	m := make(map[Corner]Arm, len(arms))
	for c, a := range arms {
		m[c] = a
	}
	return ArmSpec{perCorner: m}
}

// ResolveArms expands spec into one arm per corner and validates them.
func ResolveArms(spec ArmSpec) (Arms, error) {
	var arms Arms
	switch {
	case spec.isUniform:
		for _, c := range Corners {
			arms[c] = spec.uniform
		}
	case spec.perCorner == nil:
		return arms, wgeom.Invalid("arms", "no arms given")
	default:
		for c := range spec.perCorner {
			if c < LowerLeft || c > UpperRight {
				return arms, wgeom.Invalid("arms", "unknown corner %s", c)
			}
		}
		for _, c := range Corners {
			a, ok := spec.perCorner[c]
			if !ok {
				return arms, wgeom.Invalid("arms", "missing arm for corner %s", c)
			}
			arms[c] = a
		}
	}
	for _, c := range Corners {
		a := arms[c]
		if !(a.Length > 0) || math.IsInf(a.Length, 0) {
			return arms, wgeom.Invalid("arms", "%s arm needs a positive length, is %g", c, a.Length)
		}
		if a.Height < 0 || math.IsNaN(a.Height) || math.IsInf(a.Height, 0) {
			return arms, wgeom.Invalid("arms", "%s arm height must not be negative, is %g", c, a.Height)
		}
	}
	return arms, nil
}
