package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom/curves"
)

var (
	sbendLength float64
	sbendHeight float64
	sbendRadius float64
)

var sbendCmd = &cobra.Command{
	Use:   "sbend",
	Short: "Build a cosine S-bend",
	Long: `Build an S-bend from (0,0) to (length,height). With --radius the bend
is shortened to the requested radius and padded with straight leads; radii
the box cannot hold are clamped to the largest possible one.

Examples:
  wgeom sbend --length 20 --height 5
  wgeom sbend --length 40 --height 5 --radius 10`,
	Args: cobra.NoArgs,
	RunE: runSBend,
}

func init() {
	rootCmd.AddCommand(sbendCmd)

	sbendCmd.Flags().Float64Var(&sbendLength, "length", 20, "extent along the waveguide")
	sbendCmd.Flags().Float64Var(&sbendHeight, "height", 5, "offset across the waveguide")
	sbendCmd.Flags().Float64Var(&sbendRadius, "radius", 0, "bend radius (0: use the whole length)")
}

func runSBend(cmd *cobra.Command, args []string) error {
	m, top, layer, err := newLayout()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	bend, err := curves.SBend(sbendLength, sbendHeight, segLength)
	if sbendRadius > 0 {
		var r float64
		bend, r, err = curves.SBendRadius(sbendLength, sbendHeight, sbendRadius, segLength)
		if err == nil {
			fmt.Fprintf(out, "effective radius:  %.6g\n", r)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to build s-bend: %w", err)
	}
	fmt.Fprintf(out, "points:            %d\n", bend.N())
	fmt.Fprintf(out, "polyline length:   %.6g\n", bend.Length())
	if sbendRadius <= 0 {
		fmt.Fprintf(out, "closed form:       %.6g\n", curves.SBendAlength(sbendLength, sbendHeight))
		fmt.Fprintf(out, "max radius:        %.6g\n", curves.SBendMaxRadius(sbendLength, sbendHeight))
	}
	if err = m.Insert(top, layer, bend.WithWidth(width)); err != nil {
		return err
	}
	return save(cmd, m)
}
