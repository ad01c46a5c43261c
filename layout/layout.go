/*
Package layout is the interface to a hierarchical layout database.

Devices and routes are handed to a Layout, which stores them as shapes on
layers in a graph of named cells. Cells may be placed inside other cells with
a rigid transform, optionally repeated as a 2D array.

Memory is an in-memory Layout. It persists to and reads from a plain-text
S-expression exchange format:

	(layout
	  (dbu 0.001)
	  (layer 1 0)
	  (cell "TOP"
	    (path (layer 0) (width 0.5) (pts (xy 0 0) (xy 10 0)))
	    (inst 1 (trans 0 mirror 0 0) (array 10 0 0 10 3 2))))

Coordinates are written in the caller's length unit; dbu records the
database unit of the host system and is carried along unchanged.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package layout

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wgforge/wgeom"
)

// tracer writes to trace with key 'layout'
func tracer() tracing.Trace {
	return tracing.Select("layout")
}

// CellIndex is a stable handle of a cell within a layout.
type CellIndex int

// LayerIndex is a stable handle of a registered layer within a layout.
type LayerIndex int

// Layout is the narrow interface through which geometry is handed to the
// layout database.
type Layout interface {
	// CreateCell creates a new, empty cell.
	CreateCell(name string) (CellIndex, error)
	// Layer registers a (layer, datatype) pair, or finds an already
	// registered one.
	Layer(layer, datatype int) LayerIndex
	// Insert adds a path as a shape to a cell.
	Insert(cell CellIndex, layer LayerIndex, path *wgeom.Path) error
	// Instantiate places child inside parent. A nil array places a single
	// instance.
	Instantiate(parent, child CellIndex, trans Trans, array *Array) error
}

// Trans is a rigid transform of a cell instance: an optional mirror at the
// x-axis, followed by a rotation by Rot quarter turns counter-clockwise,
// followed by a displacement.
type Trans struct {
	Rot    int
	Mirror bool
	Disp   wgeom.Pair
}

// Identity is the transform which leaves an instance in place.
var Identity = Trans{}

// AT returns the affine transform for t.
func (t Trans) AT() wgeom.AT {
	m := wgeom.Identity()
	if t.Mirror {
		m = m.Combine(wgeom.MirrorX())
	}
	rot := ((t.Rot % 4) + 4) % 4
	if rot != 0 {
		m = m.Combine(wgeom.Rotation(float64(rot) * 90 * wgeom.Deg2Rad))
	}
	return m.Combine(wgeom.Translation(t.Disp))
}

func (t Trans) String() string {
	m := ""
	if t.Mirror {
		m = " mirror"
	}
	return fmt.Sprintf("r%d%s %s", t.Rot*90, m, t.Disp)
}

// Array repeats an instance NA times along A and NB times along B.
type Array struct {
	A, B   wgeom.Pair
	NA, NB int
}

// Displacements returns the offsets of all array elements, with the element
// at the instance origin first.
func (a *Array) Displacements() []wgeom.Pair {
	if a == nil {
		return []wgeom.Pair{wgeom.Origin}
	}
	d := make([]wgeom.Pair, 0, a.NA*a.NB)
	for i := 0; i < a.NA; i++ {
		for j := 0; j < a.NB; j++ {
			d = append(d, a.A.Scaled(float64(i))+a.B.Scaled(float64(j)))
		}
	}
	return d
}
