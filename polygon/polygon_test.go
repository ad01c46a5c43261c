package polygon

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wgforge/wgeom"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(wgeom.P(0, 0)).Knot(wgeom.P(1, 3)).Knot(wgeom.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.InDelta(t, 4.5, pg.Area(), 1e-12)
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(wgeom.P(0, 5), wgeom.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.Area(), 1e-12)
	assert.True(t, box.Contains(wgeom.P(2, 3)))
	assert.False(t, box.Contains(wgeom.P(5, 3)))
}

func TestHoleArea(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := Box(wgeom.P(0, 0), wgeom.P(10, 10))
	pg.Knot(wgeom.P(2, 2)).Knot(wgeom.P(4, 2)).Knot(wgeom.P(4, 4)).Knot(wgeom.P(2, 4)).Cycle()
	assert.InDelta(t, 96.0, pg.Area(), 1e-12)
	assert.False(t, pg.Contains(wgeom.P(3, 3)))
}

func TestBooleanOps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(wgeom.P(0, 0), wgeom.P(2, 2))
	b := Box(wgeom.P(1, 1), wgeom.P(3, 3))
	assert.InDelta(t, 7.0, a.Union(b).Area(), 1e-9)
	assert.InDelta(t, 1.0, a.Intersection(b).Area(), 1e-9)
	assert.InDelta(t, 3.0, a.Difference(b).Area(), 1e-9)
	assert.InDelta(t, 6.0, a.Xor(b).Area(), 1e-9)
	far := Box(wgeom.P(5, 5), wgeom.P(6, 6))
	assert.Equal(t, 0.0, Overlap(a, far))
	assert.InDelta(t, 5.0, UnionAll(a, far).Area(), 1e-9)
}

func TestOutlineOfStraightPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path, err := wgeom.NewPath([]wgeom.Pair{wgeom.P(0, 0), wgeom.P(10, 0)}, 0.5)
	require.NoError(t, err)
	pg := Outline(path)
	assert.Equal(t, 4, pg.N())
	assert.InDelta(t, 5.0, pg.Area(), 1e-12)
	lo, hi := pg.Bounds()
	assert.Equal(t, wgeom.P(0, -0.25), lo)
	assert.Equal(t, wgeom.P(10, 0.25), hi)
}

func TestOutlineOfCorner(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path, err := wgeom.NewPath([]wgeom.Pair{wgeom.P(0, 0), wgeom.P(10, 0), wgeom.P(10, 10)}, 1)
	require.NoError(t, err)
	// two 10×1 strips, mitered: the square corner is counted once
	assert.InDelta(t, 20.0, Outline(path).Area(), 1e-9)
}

func TestSectionsTileOutline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path, err := wgeom.NewPath([]wgeom.Pair{wgeom.P(0, 0), wgeom.P(10, 0), wgeom.P(10, 10)}, 1)
	require.NoError(t, err)
	sections := Sections(path, 1)
	require.Len(t, sections, 2)
	assert.InDelta(t, 10.0, sections[0].Area(), 1e-9)
	assert.InDelta(t, 10.0, sections[1].Area(), 1e-9)
	assert.InDelta(t, Outline(path).Area(), sections[0].Area()+sections[1].Area(), 1e-9)
	assert.True(t, sections[0].Contains(wgeom.P(9, 0.2)))
	assert.False(t, sections[1].Contains(wgeom.P(9, 0.2)))
	assert.True(t, sections[1].Contains(wgeom.P(10.2, 1)))
	assert.False(t, sections[0].Contains(wgeom.P(10.2, 1)))
	// cuts at the end points do not create empty sections
	assert.Len(t, Sections(path, 0, 2, 5), 1)
	merged := Merge(sections...)
	assert.Equal(t, 8, merged.N())
}
