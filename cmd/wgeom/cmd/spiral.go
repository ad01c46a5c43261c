package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/arclen"
	"github.com/wgforge/wgeom/spiral"
)

var (
	spiralTurns     int
	spiralSpacing   float64
	spiralLength    float64
	spiralShift     float64
	spiralTolerance float64
	spiralAngle     float64
	spiralNPts      int
	spiralMinRadius float64
	spiralPort0     string
	spiralPort1     string
)

var spiralCmd = &cobra.Command{
	Use:   "spiral",
	Short: "Build a two-armed delay spiral",
	Long: `Build an Archimedean delay spiral. With --length the radial shift is
searched for until the spiral has the requested length; otherwise --shift
sets it directly.

Examples:
  wgeom spiral --turns 3 --spacing 2 --length 1000
  wgeom spiral --turns 4 --spacing 3 --shift 20 --port0 top --port1 bottom`,
	Args: cobra.NoArgs,
	RunE: runSpiral,
}

func init() {
	rootCmd.AddCommand(spiralCmd)

	spiralCmd.Flags().IntVar(&spiralTurns, "turns", 3, "windings of each arm")
	spiralCmd.Flags().Float64Var(&spiralSpacing, "spacing", 2, "centre-to-centre spacing of windings")
	spiralCmd.Flags().Float64Var(&spiralLength, "length", 0, "target length (0: use --shift)")
	spiralCmd.Flags().Float64Var(&spiralShift, "shift", 0, "radial shift of the spiral")
	spiralCmd.Flags().Float64Var(&spiralTolerance, "tolerance", 0.01, "length tolerance")
	spiralCmd.Flags().Float64Var(&spiralAngle, "angle", 0, "rotation of the spiral in degrees")
	spiralCmd.Flags().IntVar(&spiralNPts, "npts", 0, "points per quarter turn (0: default)")
	spiralCmd.Flags().Float64Var(&spiralMinRadius, "min-radius", 0, "minimum bend radius (0: default)")
	spiralCmd.Flags().StringVar(&spiralPort0, "port0", "auto", "side of port 0: auto, left, right, top, bottom")
	spiralCmd.Flags().StringVar(&spiralPort1, "port1", "auto", "side of port 1: auto, left, right, top, bottom")
}

func parseSide(s string) (spiral.Side, error) {
	for _, side := range []spiral.Side{spiral.SideAuto, spiral.SideRight, spiral.SideTop,
		spiral.SideLeft, spiral.SideBottom} {
		if side.String() == s {
			return side, nil
		}
	}
	return spiral.SideAuto, wgeom.Invalid("side", "unknown side %q", s)
}

func runSpiral(cmd *cobra.Command, args []string) error {
	spec := spiral.Spec{
		Turns:         spiralTurns,
		Spacing:       spiralSpacing,
		RadialShift:   spiralShift,
		StartAngle:    spiralAngle * wgeom.Deg2Rad,
		NPts:          spiralNPts,
		Width:         width,
		MinBendRadius: spiralMinRadius,
		SegLength:     segLength,
	}
	var err error
	if spec.Port0Side, err = parseSide(spiralPort0); err != nil {
		return err
	}
	if spec.Port1Side, err = parseSide(spiralPort1); err != nil {
		return err
	}
	var res *spiral.Result
	if spiralLength > 0 {
		res, err = spiral.ToLength(spec, spiralLength, spiralTolerance, arclen.WithVerbose(verbose))
	} else {
		res, err = spiral.Geometric(spec)
	}
	if err != nil {
		return fmt.Errorf("failed to build spiral: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "length:            %.6g\n", res.Length)
	fmt.Fprintf(out, "radial shift:      %.6g\n", res.RadialShift)
	fmt.Fprintf(out, "connector radius:  %.6g\n", res.ConnectorRadius)
	fmt.Fprintf(out, "port 0:            %s\n", res.Path.Port0())
	fmt.Fprintf(out, "port 1:            %s\n", res.Path.Port1())
	m, top, layer, err := newLayout()
	if err != nil {
		return err
	}
	if err = m.Insert(top, layer, res.Path); err != nil {
		return err
	}
	return save(cmd, m)
}
