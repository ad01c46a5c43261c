package wgeom

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDropsDuplicates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path, err := Nullpath().Knot(P(0, 0)).Knot(P(0, 0)).Knots(P(1, 0), P(1, 0), P(1, 1)).End()
	require.NoError(t, err)
	assert.Equal(t, 3, path.N())
	assert.Equal(t, "(0,0) -- (1,0) -- (1,1)", AsString(path))
	assert.InDelta(t, 2.0, path.Length(), 1e-12)
	assert.Equal(t, Width, path.Width())
}

func TestNewPathRejectsDegenerate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewPath([]Pair{P(1, 1), P(1, 1)}, 0.5)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewPath([]Pair{P(0, 0), P(math.NaN(), 1)}, 0.5)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewPath([]Pair{P(0, 0), P(1, 1)}, 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestPorts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path, err := NewPath([]Pair{P(0, 0), P(1, 0), P(1, 2)}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, path.Port0().Heading, 1e-12)
	assert.InDelta(t, math.Pi/2, path.Port1().Heading, 1e-12)
	rev := path.Reversed()
	assert.Equal(t, P(1, 2), rev.Port0().At)
	assert.InDelta(t, -math.Pi/2, rev.Port0().Heading, 1e-12)
}

func TestTransformedAndJoin(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a, _ := NewPath([]Pair{P(0, 0), P(1, 0)}, 0.5)
	b := a.Transformed(Translation(P(1, 0)))
	j := a.Join(b)
	assert.Equal(t, 3, j.N())
	assert.InDelta(t, 2.0, j.Length(), 1e-12)
	lo, hi := j.Bounds()
	assert.Equal(t, P(0, 0), lo)
	assert.Equal(t, P(2, 0), hi)
}

func TestMinBendRadiusOfCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var pts []Pair
	for i := 0; i <= 32; i++ {
		pts = append(pts, Polar(7, float64(i)*math.Pi/32))
	}
	path, err := NewPath(pts, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, path.MinBendRadius(), 1e-9)
	straight, _ := NewPath([]Pair{P(0, 0), P(1, 0), P(2, 0)}, 0.5)
	assert.True(t, math.IsInf(straight.MinBendRadius(), 1))
}

func TestCrosses(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a, _ := NewPath([]Pair{P(0, 0), P(2, 2)}, 0.5)
	b, _ := NewPath([]Pair{P(0, 2), P(2, 0)}, 0.5)
	c, _ := NewPath([]Pair{P(2, 2), P(3, 2)}, 0.5)
	d, _ := NewPath([]Pair{P(1, 1), P(3, 3)}, 0.5)
	e, _ := NewPath([]Pair{P(0, 1), P(2, 3)}, 0.5)
	assert.True(t, a.Crosses(b))
	assert.False(t, a.Crosses(c), "touching at end point")
	assert.True(t, a.Crosses(d), "collinear overlap")
	assert.False(t, a.Crosses(e), "parallel")
}
