package coupler

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/layout"
	"github.com/wgforge/wgeom/polygon"
)

func asymmetric() Params {
	return Params{
		CouplingLength: 20,
		Gap:            0.3,
		Width:          0.5,
		Arms: PerCorner(map[Corner]Arm{
			LowerLeft:  {Length: 10, Height: 3},
			LowerRight: {Length: 12, Height: 5},
			UpperLeft:  {Length: 15, Height: 2},
			UpperRight: {Length: 14, Height: 6},
		}),
		SegLength:     0.5,
		MinBendRadius: 5,
	}
}

func TestResolveArms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	arms, err := ResolveArms(Uniform(Arm{Length: 15, Height: 4}))
	require.NoError(t, err)
	for _, c := range Corners {
		assert.Equal(t, Arm{Length: 15, Height: 4}, arms[c])
	}
	_, err = ResolveArms(ArmSpec{})
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
	_, err = ResolveArms(PerCorner(map[Corner]Arm{LowerLeft: {1, 1}, LowerRight: {1, 1}, UpperLeft: {1, 1}}))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "missing corner")
	_, err = ResolveArms(PerCorner(map[Corner]Arm{LowerLeft: {1, 1}, LowerRight: {1, 1},
		UpperLeft: {1, 1}, UpperRight: {1, 1}, Corner(7): {1, 1}}))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "unknown corner")
	_, err = ResolveArms(Uniform(Arm{Length: 0, Height: 2}))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
	_, err = ResolveArms(Uniform(Arm{Length: 3, Height: -2}))
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
}

func TestDerivedQuantities(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := asymmetric()
	l, err := Length(p)
	require.NoError(t, err)
	assert.InDelta(t, 49.0, l, 1e-12)
	h, err := Height(p)
	require.NoError(t, err)
	assert.InDelta(t, 12.3, h, 1e-12)
	c, err := Center(p)
	require.NoError(t, err)
	assert.True(t, c.Equal(wgeom.P(24.5, 3.9)), "center is %s", c)
	ports, err := Ports(p)
	require.NoError(t, err)
	assert.True(t, ports[LowerLeft].At.Equal(wgeom.P(5, 0)))
	assert.True(t, ports[UpperLeft].At.Equal(wgeom.P(0, 5.8)))
	assert.True(t, ports[LowerRight].At.Equal(wgeom.P(47, -2)))
	assert.True(t, ports[UpperRight].At.Equal(wgeom.P(49, 9.8)))
}

func TestGeometryMatchesHelpers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []Params{
		asymmetric(),
		{CouplingLength: 7.5, Gap: 0.2, Width: 0.45, Arms: Uniform(Arm{Length: 15, Height: 4})},
		{CouplingLength: 3, Gap: 1, Width: 1, Arms: Uniform(Arm{Length: 5, Height: 0})},
	} {
		dev, err := Build(p)
		require.NoError(t, err)
		ports, _ := Ports(p)
		assert.Equal(t, ports, dev.Ports)
		assert.True(t, dev.Paths[Input1].Z(0).Equal(ports[LowerLeft].At))
		assert.True(t, dev.Paths[Output1].Z(-1).Equal(ports[LowerRight].At))
		assert.True(t, dev.Paths[Input2].Z(0).Equal(ports[UpperLeft].At))
		assert.True(t, dev.Paths[Output2].Z(-1).Equal(ports[UpperRight].At))
		assert.InDelta(t, math.Pi, math.Abs(dev.Paths[Input1].Port0().Heading), 0.1)
		assert.InDelta(t, 0.0, dev.Paths[Output2].Port1().Heading, 0.1)
		for s := Input1; s < Output2; s++ {
			if s == Output1 {
				continue
			}
			assert.True(t, dev.Paths[s].Z(-1).Equal(dev.Paths[s+1].Z(0)), "%s does not continue into %s", s, s+1)
		}
		lo, hi := dev.Paths[0].Bounds()
		for _, path := range dev.Paths {
			assert.Equal(t, p.Width, path.Width())
			l, h := path.Bounds()
			lo = wgeom.P(math.Min(lo.X(), l.X()), math.Min(lo.Y(), l.Y()))
			hi = wgeom.P(math.Max(hi.X(), h.X()), math.Max(hi.Y(), h.Y()))
		}
		length, _ := Length(p)
		height, _ := Height(p)
		center, _ := Center(p)
		assert.InDelta(t, length, hi.X()-lo.X(), 1e-9)
		assert.InDelta(t, height, hi.Y()-lo.Y()+p.Width, 1e-9)
		assert.InDelta(t, 0.0, lo.X(), 1e-9)
		assert.True(t, center.Equal((lo+hi).Scaled(0.5)), "center %s", center)
		assert.Equal(t, length, dev.Length)
		assert.Equal(t, height, dev.Height)
		gap := dev.Paths[Straight2].Z(0).Y() - dev.Paths[Straight1].Z(0).Y() - p.Width
		assert.InDelta(t, p.Gap, gap, 1e-12)
	}
}

func TestDividedTilesCombined(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dev, err := Build(asymmetric())
	require.NoError(t, err)
	combined := dev.Regions(Combined)
	require.Len(t, combined, 1)
	assert.Len(t, combined[0].Paths, 6)
	divided := dev.Regions(Divided)
	require.Len(t, divided, 6)
	sum := 0.0
	for i, r := range divided {
		assert.Equal(t, Segment(i).String(), r.Name)
		require.Len(t, r.Paths, 1)
		assert.Same(t, dev.Paths[i], r.Paths[0])
		assert.Greater(t, r.Area.Area(), 0.0)
		sum += r.Area.Area()
	}
	assert.InDelta(t, combined[0].Area.Area(), sum, 1e-9)
	// sample the bounding box: every point of the combined region lies in
	// exactly one divided region, every other point in none
	lo, hi := combined[0].Area.Bounds()
	const nx, ny = 211, 67
	dx, dy := (hi.X()-lo.X())/nx, (hi.Y()-lo.Y())/ny
	inside := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			p := lo + wgeom.P((float64(i)+0.4142)*dx, (float64(j)+0.7071)*dy)
			count := 0
			for _, r := range divided {
				if r.Area.Contains(p) {
					count++
				}
			}
			if combined[0].Area.Contains(p) {
				inside++
				assert.Equal(t, 1, count, "point %s is covered %d times", p, count)
			} else {
				assert.Equal(t, 0, count, "point %s lies outside the combined region", p)
			}
		}
	}
	assert.Greater(t, inside, 100)
	// regions of different waveguides share no area at all
	for _, a := range divided[:3] {
		for _, b := range divided[3:] {
			assert.InDelta(t, 0.0, polygon.Overlap(a.Area, b.Area), 1e-9)
		}
	}
}

func TestCouplerErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	arms := Uniform(Arm{Length: 15, Height: 4})
	_, err := Build(Params{CouplingLength: 10, Gap: 0, Width: 0.5, Arms: arms})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "zero gap")
	_, err = Build(Params{CouplingLength: 10, Gap: 0.2, Width: 0, Arms: arms})
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "zero width")
	_, err = Build(Params{CouplingLength: 0, Gap: 0.2, Width: 0.5, Arms: arms})
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "zero coupling length")
	_, err = Build(Params{CouplingLength: 10, Gap: 0.2, Width: 0.5})
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "no arms")
	// 15 × 4 bends with radius 2·15²/(π²·4) ≈ 11.4
	_, err = Build(Params{CouplingLength: 10, Gap: 0.2, Width: 0.5, Arms: arms, MinBendRadius: 11})
	assert.NoError(t, err)
	_, err = Build(Params{CouplingLength: 10, Gap: 0.2, Width: 0.5, Arms: arms, MinBendRadius: 12})
	assert.True(t, errors.Is(err, wgeom.ErrInfeasible), "arm too tight")
	_, err = Height(Params{CouplingLength: 10, Gap: 0.2, Width: 0.5, Arms: arms, SegLength: -1})
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
}

func TestInsert(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := layout.NewMemory()
	top, err := m.CreateCell("TOP")
	require.NoError(t, err)
	wg := m.Layer(1, 0)
	_, err = Insert(m, top, wg, asymmetric(), Divided)
	require.NoError(t, err)
	assert.Equal(t, 7, m.Cells())
	for _, name := range segmentNames {
		_, ok := m.CellByName(name)
		assert.True(t, ok, "missing cell %s", name)
	}
	assert.Len(t, m.Cell(top).Insts, 6)
	shapes, err := m.Flatten(top)
	require.NoError(t, err)
	assert.Len(t, shapes, 6)
	_, err = Insert(m, top, wg, asymmetric(), Divided)
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter), "region cells exist already")
	//
	other, err := m.CreateCell("combined")
	require.NoError(t, err)
	dev, err := Insert(m, other, wg, asymmetric(), Combined)
	require.NoError(t, err)
	require.Len(t, m.Cell(other).Shapes, 6)
	assert.Same(t, dev.Paths[Straight2], m.Cell(other).Shapes[Straight2].Path)
	_, err = Insert(m, other, wg, Params{}, Combined)
	assert.True(t, errors.Is(err, wgeom.ErrInvalidParameter))
}
