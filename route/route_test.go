package route

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/polygon"
)

var bundle = Request{
	Inputs:  []float64{4, 3, 2, 1, 0},
	Outputs: []float64{70, 60, 58, 56, 50},
}

func TestRouteBundle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	paths, err := Route(bundle)
	require.NoError(t, err)
	require.Len(t, paths, 5)
	// the largest offset change, 66, sets the shared bend length
	length := math.Pi * math.Sqrt(wgeom.MinBendRadius*66/2)
	for i, p := range paths {
		assert.True(t, p.Z(0).Equal(wgeom.P(0, bundle.Inputs[i])))
		assert.True(t, p.Z(-1).Equal(wgeom.P(length, bundle.Outputs[i])), "path %d ends at %s", i, p.Z(-1))
		assert.GreaterOrEqual(t, p.MinBendRadius(), wgeom.MinBendRadius)
		assert.Equal(t, wgeom.Width, p.Width())
		assert.InDelta(t, math.Pi, math.Abs(p.Port0().Heading), 0.1)
		assert.InDelta(t, 0.0, p.Port1().Heading, 0.1)
	}
	assert.NoError(t, Check(paths, wgeom.MinBendRadius))
}

func TestRouteNeverCrosses(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	requests := []Request{
		{Inputs: []float64{0, 1, 2}, Outputs: []float64{0, 10, 20}},
		{Inputs: []float64{0, 2, 4}, Outputs: []float64{10, 12, 30}},
		{Inputs: []float64{0, 3, 6, 9}, Outputs: []float64{-40, -30, -5, 30}},
		{Inputs: []float64{20, 15, 10}, Outputs: []float64{3, 2, 1}},
		{Inputs: []float64{5}, Outputs: []float64{-7}},
	}
	for _, radius := range []float64{5, 10} {
		for _, req := range requests {
			paths, err := Route(req, WithMinBendRadius(radius), WithSegLength(0.5))
			require.NoError(t, err)
			for i, p := range paths {
				assert.GreaterOrEqual(t, p.MinBendRadius(), radius*(1-1e-9), "radius %g, path %d", radius, i)
				for j := i + 1; j < len(paths); j++ {
					assert.False(t, p.Crosses(paths[j]), "paths %d and %d cross", i, j)
				}
			}
		}
	}
}

func TestRouteSpan(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	req := Request{Inputs: []float64{0, 2, 4}, Outputs: []float64{10, 12, 30}}
	short, err := Route(req)
	require.NoError(t, err)
	minimal := short[0].Z(-1).X()
	paths, err := Route(req, WithSpan(100))
	require.NoError(t, err)
	lead := (100 - minimal) / 2
	for i, p := range paths {
		assert.True(t, p.Z(0).Equal(wgeom.P(0, req.Inputs[i])))
		assert.True(t, p.Z(1).Equal(wgeom.P(lead, req.Inputs[i])), "lead ends at %s", p.Z(1))
		assert.True(t, p.Z(-2).Equal(wgeom.P(100-lead, req.Outputs[i])))
		assert.True(t, p.Z(-1).Equal(wgeom.P(100, req.Outputs[i])))
	}
	assert.NoError(t, Check(paths, wgeom.MinBendRadius))
	_, err = Route(req, WithSpan(minimal/2))
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible))
}

func TestRouteAligned(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	req := Request{Inputs: []float64{0, 1, 2}, Outputs: []float64{0, 1, 2}}
	paths, err := Route(req)
	require.NoError(t, err)
	for _, p := range paths {
		assert.Equal(t, 2, p.N())
		assert.InDelta(t, wgeom.MinBendRadius, p.Length(), 1e-12)
	}
	paths, err = Route(req, WithSpan(12), WithWidth(0.3))
	require.NoError(t, err)
	assert.InDelta(t, 12.0, paths[2].Length(), 1e-12)
	assert.Equal(t, 0.3, paths[2].Width())
	// straights need no bend radius, a short span is kept as given
	paths, err = Route(req, WithSpan(3))
	require.NoError(t, err)
	for i, p := range paths {
		assert.True(t, p.Z(-1).Equal(wgeom.P(3, req.Outputs[i])), "path %d ends at %s", i, p.Z(-1))
	}
}

func TestRouteKeepsNeighboursApart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// parallel bends 0.7 apart leave less than a width between them on the
	// steep part unless the bends are stretched
	req := Request{Inputs: []float64{0, 0.7}, Outputs: []float64{30, 30.7}}
	paths, err := Route(req)
	require.NoError(t, err)
	assert.Greater(t, paths[0].Z(-1).X(), math.Pi*math.Sqrt(wgeom.MinBendRadius*30/2))
	assert.InDelta(t, 0.0, polygon.Overlap(polygon.Outline(paths[0]), polygon.Outline(paths[1])), wgeom.Epsilon)
	assert.NoError(t, Check(paths, wgeom.MinBendRadius))
	//
	_, err = Route(Request{Inputs: []float64{0, 0.3}, Outputs: []float64{30, 30.3}})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "inputs closer than a width")
	_, err = Dense(Request{Inputs: []float64{0, 30}, Outputs: []float64{50, 50.2}})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "outputs closer than a width")
}

func TestRouteAxisY(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	req := Request{Inputs: []float64{0, 2}, Outputs: []float64{10, 12}, Axis: Y}
	paths, err := Route(req)
	require.NoError(t, err)
	length := math.Pi * math.Sqrt(wgeom.MinBendRadius*10/2)
	assert.True(t, paths[1].Z(0).Equal(wgeom.P(2, 0)))
	assert.True(t, paths[1].Z(-1).Equal(wgeom.P(12, length)), "ends at %s", paths[1].Z(-1))
	assert.InDelta(t, -math.Pi/2, paths[1].Port0().Heading, 0.15)
	assert.InDelta(t, math.Pi/2, paths[1].Port1().Heading, 0.15)
}

func TestRouteRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, req := range []Request{
		{Inputs: []float64{0, 1}, Outputs: []float64{0, 1, 2}},
		{Inputs: []float64{0, 2, 1}, Outputs: []float64{0, 1, 2}},
		{Inputs: []float64{0, 1, 2}, Outputs: []float64{5, 3, 1}},
		{Inputs: []float64{0, 1, 1}, Outputs: []float64{0, 1, 2}},
		{Inputs: []float64{}, Outputs: []float64{}},
		{Inputs: []float64{math.NaN()}, Outputs: []float64{1}},
		{Inputs: []float64{0}, Outputs: []float64{1}, Axis: Axis(3)},
	} {
		_, err := Route(req)
		assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "request %v", req)
		_, err = Dense(req)
		assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "request %v", req)
	}
	_, err := Route(bundle, WithMinBendRadius(0))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
	_, err = Route(bundle, WithSpan(-1))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
}

func TestCheck(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mk := func(w float64, pts ...wgeom.Pair) *wgeom.Path {
		p, err := wgeom.NewPath(pts, w)
		require.NoError(t, err)
		return p
	}
	a := mk(0.5, wgeom.P(0, 0), wgeom.P(10, 0))
	assert.NoError(t, Check([]*wgeom.Path{a, mk(0.5, wgeom.P(1, 1), wgeom.P(11, 1))}, 0))
	err := Check([]*wgeom.Path{a, mk(0.5, wgeom.P(1, 0.3), wgeom.P(11, 0.3))}, 0)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "outlines overlap")
	err = Check([]*wgeom.Path{a, mk(0.1, wgeom.P(1, -3), wgeom.P(9, 3))}, 0)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "paths cross")
	// no crossing, but the second path loops around the start of the first
	// and arrives below it
	around := mk(0.5, wgeom.P(0, 2), wgeom.P(-5, 2), wgeom.P(-5, -2), wgeom.P(10, -2))
	err = Check([]*wgeom.Path{a, around}, 0)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "port order flips")
	c := mk(0.5, wgeom.P(0, 1), wgeom.P(10, 1))
	d := mk(0.5, wgeom.P(0, 3), wgeom.P(10, 3))
	assert.NoError(t, Check([]*wgeom.Path{a, c, d}, 0))
	assert.NoError(t, Check([]*wgeom.Path{d, c, a}, 0))
	err = Check([]*wgeom.Path{a, d, c}, 0)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "slice not in port order")
	bent := mk(0.5, wgeom.P(0, 0), wgeom.P(1, 0), wgeom.P(1, 1))
	assert.NoError(t, Check([]*wgeom.Path{bent}, 0))
	err = Check([]*wgeom.Path{bent}, 1)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "bend too tight")
}

func TestDenseBundle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	length := DenseLength(5, Spacing, wgeom.MinBendRadius, wgeom.Width)
	assert.InDelta(t, 20.0, length, 1e-12)
	paths, err := Dense(bundle)
	require.NoError(t, err)
	require.Len(t, paths, 5)
	for i, p := range paths {
		assert.True(t, p.Z(0).Equal(wgeom.P(0, bundle.Inputs[i])))
		assert.True(t, p.Z(-1).Equal(wgeom.P(length, bundle.Outputs[i])))
		assert.GreaterOrEqual(t, p.MinBendRadius(), wgeom.MinBendRadius*(1-1e-9))
	}
	lo, hi := paths[0].Bounds()
	assert.InDelta(t, 0.0, lo.X(), 1e-9)
	assert.InDelta(t, 70.0, hi.Y(), 1e-9)
	assert.NoError(t, Check(paths, wgeom.MinBendRadius))
	// the pair with the highest ports turns first, with radii 5 and 15:
	// a vertical run of 66−5−15 and two quarter circles
	assert.InDelta(t, 46+10*math.Pi, paths[0].Length(), 0.1)
}

func TestDenseSpanAndAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := DenseSpacing(5, 20, wgeom.MinBendRadius, wgeom.Width)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s, 1e-12)
	_, err = DenseSpacing(1, 20, 5, 0.5)
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
	_, err = DenseSpacing(5, 10, 5, 0.5)
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible))
	//
	req := Request{Inputs: []float64{0, 10, 20}, Outputs: []float64{-50, -40, -30}, Axis: Y}
	paths, err := Dense(req, WithSpan(30))
	require.NoError(t, err)
	for i, p := range paths {
		assert.True(t, p.Z(0).Equal(wgeom.P(req.Inputs[i], 0)))
		assert.True(t, p.Z(-1).Equal(wgeom.P(req.Outputs[i], 30)))
	}
	assert.NoError(t, Check(paths, wgeom.MinBendRadius))
	_, err = Dense(req, WithSpan(30), WithSpacing(1))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
	single, err := Dense(Request{Inputs: []float64{0}, Outputs: []float64{25}})
	require.NoError(t, err)
	assert.True(t, single[0].Z(-1).Equal(wgeom.P(2*wgeom.MinBendRadius, 25)))
}

func TestDenseInfeasible(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Dense(Request{Inputs: []float64{0, 1}, Outputs: []float64{5, 6}})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "offsets shorter than the interconnect")
	_, err = Dense(Request{Inputs: []float64{0, 100}, Outputs: []float64{50, 60}})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "pairs moving in opposite directions")
	_, err = Dense(Request{Inputs: []float64{0}, Outputs: []float64{25}}, WithSpan(6))
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible))
}
