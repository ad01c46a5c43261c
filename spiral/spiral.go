package spiral

import (
	"math"

	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/curves"
)

// Result is a finished spiral.
type Result struct {
	Path            *wgeom.Path    // from port0 through the centre to port1
	Arms            [2]*wgeom.Path // arms ending in port0 and port1, each from the centre outward
	Connector       *wgeom.Path    // the S-shaped biarc joining the arms in the centre
	Length          float64        // measured length of Path
	ConnectorRadius float64        // smaller radius of the connector arcs
	RadialShift     float64        // a in r(θ) = a + bθ
}

// Geometric builds the spiral described by spec, with spec.RadialShift as
// the radial shift. The connector in the centre has to respect the minimum
// bend radius, otherwise the spiral is Infeasible.
func Geometric(spec Spec) (*Result, error) {
	sh, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	if spec.RadialShift <= 0 || math.IsNaN(spec.RadialShift) {
		return nil, wgeom.Invalid("radial shift", "must be positive, is %g", spec.RadialShift)
	}
	res, err := sh.build(spec.RadialShift)
	if err != nil {
		return nil, err
	}
	if err = sh.checkConnector(res); err != nil {
		return nil, err
	}
	tracer().Infof("spiral of %d turns, radial shift %g: length %g", sh.turns, res.RadialShift, res.Length)
	return res, nil
}

func (sh *shape) checkConnector(res *Result) error {
	if res.ConnectorRadius < sh.minRadius*(1-1e-9) {
		return wgeom.Infeasible("centre connector radius %.4g below minimum bend radius %g (radial shift %g)",
			res.ConnectorRadius, sh.minRadius, res.RadialShift)
	}
	return nil
}

// critical returns the angle of the c-th point on r(θ) = a + bθ at which
// the tangent is vertical (c even) or horizontal (c odd). It is the fixed
// point of θ = cπ/2 + atan(b / (a + bθ)).
func critical(c int, a, b float64) float64 {
	base := float64(c) * math.Pi / 2
	theta := base
	for i := 0; i < 100; i++ {
		next := base + math.Atan(b/(a+b*theta))
		if math.Abs(next-theta) < 1e-15 {
			return next
		}
		theta = next
	}
	return theta
}

// shift is the displacement of quarter turn q of an arm. rot is the
// quarter of the arm's start side (0 for the arm starting on the right,
// 2 for the one starting on the left).
func (sh *shape) shift(q int, rot int) wgeom.Pair {
	side := (q + rot) % 4 // 0 upper right, 1 upper left, 2 lower left, 3 lower right
	hsum, vsum := 0.0, 0.0
	for i := 0; i <= (q+1)/2; i++ {
		hsum += sh.h[i]
	}
	for i := 0; i <= q/2; i++ {
		vsum += sh.v[i]
	}
	var x, y float64
	if side == 0 || side == 3 {
		x = sh.fR * hsum
	} else {
		x = -sh.fL * hsum
	}
	if side == 0 || side == 1 {
		y = sh.fT * vsum
	} else {
		y = -sh.fB * vsum
	}
	return wgeom.P(x, y)
}

// arm traces one arm from its start point to critical point end.
// Every quarter turn gets the same number of points, independent of a.
func (sh *shape) arm(a float64, rot int, end int, crit []float64) []wgeom.Pair {
	pts := make([]wgeom.Pair, 0, end*(sh.npts+1))
	for q := 0; q < end; q++ {
		d := sh.shift(q, rot)
		t0, t1 := crit[q], crit[q+1]
		for i := 0; i <= sh.npts; i++ {
			theta := t0 + (t1-t0)*float64(i)/float64(sh.npts)
			p := wgeom.Polar(a+sh.b*theta, theta)
			if rot == 2 {
				p = -p
			}
			pts = append(pts, p+d)
		}
	}
	return pts
}

func (sh *shape) build(a float64) (*Result, error) {
	n := sh.endA
	if sh.endB > n {
		n = sh.endB
	}
	crit := make([]float64, n+1)
	for c := range crit {
		crit[c] = critical(c, a, sh.b)
	}
	armA, err := wgeom.NewPath(sh.arm(a, 0, sh.endA, crit), sh.width)
	if err != nil {
		return nil, err
	}
	armB, err := wgeom.NewPath(sh.arm(a, 2, sh.endB, crit), sh.width)
	if err != nil {
		return nil, err
	}
	// both arms start with the tangent of arm A, up to sign
	t0 := crit[0]
	tangent := wgeom.Polar(sh.b, t0) + wgeom.Polar(a+sh.b*t0, t0+math.Pi/2)
	conn, r, err := curves.Biarc(armB.Z(0), tangent, armA.Z(0), tangent, sh.segLength)
	if err != nil {
		return nil, err
	}
	conn = conn.WithWidth(sh.width)
	res := &Result{
		Path:            armB.Reversed().Join(conn).Join(armA),
		Arms:            [2]*wgeom.Path{armB, armA},
		Connector:       conn,
		ConnectorRadius: r,
		RadialShift:     a,
	}
	if sh.startAngle != 0 {
		rot := wgeom.Rotation(sh.startAngle)
		res.Path = res.Path.Transformed(rot)
		res.Arms[0] = res.Arms[0].Transformed(rot)
		res.Arms[1] = res.Arms[1].Transformed(rot)
		res.Connector = res.Connector.Transformed(rot)
	}
	res.Length = res.Path.Length()
	tracer().Debugf("spiral a = %.8g: length %.8g, connector radius %.4g", a, res.Length, r)
	return res, nil
}
