package layout

import (
	"fmt"

	"github.com/wgforge/wgeom"
)

// LayerSpec is a registered (layer, datatype) pair.
type LayerSpec struct {
	Layer, Datatype int
}

// Shape is a path drawn on a layer.
type Shape struct {
	Layer LayerIndex
	Path  *wgeom.Path
}

// Inst is a placement of a child cell.
type Inst struct {
	Child CellIndex
	Trans Trans
	Array *Array
}

// Cell is a named container of shapes and instances.
type Cell struct {
	Name   string
	Shapes []Shape
	Insts  []Inst
}

// Memory is an in-memory layout. Cell names are unique.
type Memory struct {
	DBU    float64
	cells  []*Cell
	layers []LayerSpec
	byName map[string]CellIndex
}

var _ Layout = (*Memory)(nil)

// NewMemory creates an empty layout with database unit 0.001.
func NewMemory() *Memory {
	return &Memory{DBU: 0.001, byName: make(map[string]CellIndex)}
}

// CreateCell is part of interface Layout.
func (m *Memory) CreateCell(name string) (CellIndex, error) {
	if name == "" {
		return -1, wgeom.Invalid("cell name", "must not be empty")
	}
	if _, ok := m.byName[name]; ok {
		return -1, wgeom.Invalid("cell name", "cell %q already exists", name)
	}
	m.cells = append(m.cells, &Cell{Name: name})
	ci := CellIndex(len(m.cells) - 1)
	m.byName[name] = ci
	tracer().Debugf("created cell %d %q", ci, name)
	return ci, nil
}

// Layer is part of interface Layout.
func (m *Memory) Layer(layer, datatype int) LayerIndex {
	spec := LayerSpec{Layer: layer, Datatype: datatype}
	for i, l := range m.layers {
		if l == spec {
			return LayerIndex(i)
		}
	}
	m.layers = append(m.layers, spec)
	return LayerIndex(len(m.layers) - 1)
}

// Insert is part of interface Layout.
func (m *Memory) Insert(cell CellIndex, layer LayerIndex, path *wgeom.Path) error {
	c, err := m.cell(cell)
	if err != nil {
		return err
	}
	if int(layer) < 0 || int(layer) >= len(m.layers) {
		return wgeom.Invalid("layer", "no layer with index %d", layer)
	}
	if path == nil {
		return wgeom.Invalid("path", "must not be nil")
	}
	c.Shapes = append(c.Shapes, Shape{Layer: layer, Path: path})
	return nil
}

// Instantiate is part of interface Layout. Instances which would make a cell
// contain itself are rejected.
func (m *Memory) Instantiate(parent, child CellIndex, trans Trans, array *Array) error {
	p, err := m.cell(parent)
	if err != nil {
		return err
	}
	if _, err = m.cell(child); err != nil {
		return err
	}
	if array != nil && (array.NA < 1 || array.NB < 1) {
		return wgeom.Invalid("array", "need at least 1×1 elements, have %d×%d", array.NA, array.NB)
	}
	if m.reaches(child, parent) {
		return wgeom.Invalid("child", "placing cell %q in %q creates a cycle", m.cells[child].Name, p.Name)
	}
	var arr *Array
	if array != nil {
		a := *array
		arr = &a
	}
	p.Insts = append(p.Insts, Inst{Child: child, Trans: trans, Array: arr})
	return nil
}

func (m *Memory) cell(ci CellIndex) (*Cell, error) {
	if int(ci) < 0 || int(ci) >= len(m.cells) {
		return nil, wgeom.Invalid("cell", "no cell with index %d", ci)
	}
	return m.cells[ci], nil
}

// reaches is a predicate: is to equal to or placed somewhere below from?
func (m *Memory) reaches(from, to CellIndex) bool {
	if from == to {
		return true
	}
	for _, inst := range m.cells[from].Insts {
		if m.reaches(inst.Child, to) {
			return true
		}
	}
	return false
}

// Cell returns the cell with index ci, or nil.
func (m *Memory) Cell(ci CellIndex) *Cell {
	c, _ := m.cell(ci)
	return c
}

// CellByName finds a cell by its name.
func (m *Memory) CellByName(name string) (CellIndex, bool) {
	ci, ok := m.byName[name]
	return ci, ok
}

// Cells returns the number of cells.
func (m *Memory) Cells() int {
	return len(m.cells)
}

// Layers returns the registered layers. A LayerIndex indexes this slice.
func (m *Memory) Layers() []LayerSpec {
	l := make([]LayerSpec, len(m.layers))
	copy(l, m.layers)
	return l
}

// Flatten returns all shapes in cell and, transformed into cell's
// coordinates, all shapes of the cells placed below it.
func (m *Memory) Flatten(cell CellIndex) ([]Shape, error) {
	if _, err := m.cell(cell); err != nil {
		return nil, err
	}
	var shapes []Shape
	m.flatten(cell, wgeom.Identity(), &shapes)
	tracer().Debugf("flattened cell %q: %d shapes", m.cells[cell].Name, len(shapes))
	return shapes, nil
}

func (m *Memory) flatten(ci CellIndex, at wgeom.AT, shapes *[]Shape) {
	c := m.cells[ci]
	for _, s := range c.Shapes {
		*shapes = append(*shapes, Shape{Layer: s.Layer, Path: s.Path.Transformed(at)})
	}
	for _, inst := range c.Insts {
		for _, d := range inst.Array.Displacements() {
			t := inst.Trans.AT().Combine(wgeom.Translation(d)).Combine(at)
			m.flatten(inst.Child, t, shapes)
		}
	}
}

func (m *Memory) String() string {
	return fmt.Sprintf("layout{%d cells, %d layers}", len(m.cells), len(m.layers))
}
