package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom/coupler"
)

var (
	couplerLength    float64
	couplerGap       float64
	couplerArmLength float64
	couplerArmHeight float64
	couplerMinRadius float64
	couplerDivided   bool
)

var couplerCmd = &cobra.Command{
	Use:   "coupler",
	Short: "Build a directional coupler",
	Long: `Build a directional coupler with four identical S-bend arms. With
--divided every waveguide segment is placed in a cell of its own.

Examples:
  wgeom coupler --coupling-length 10 --gap 0.2
  wgeom coupler --arm-length 20 --arm-height 5 --divided`,
	Args: cobra.NoArgs,
	RunE: runCoupler,
}

func init() {
	rootCmd.AddCommand(couplerCmd)

	couplerCmd.Flags().Float64Var(&couplerLength, "coupling-length", 10, "length of the coupling region")
	couplerCmd.Flags().Float64Var(&couplerGap, "gap", 0.2, "edge-to-edge gap in the coupling region")
	couplerCmd.Flags().Float64Var(&couplerArmLength, "arm-length", 15, "length of every arm")
	couplerCmd.Flags().Float64Var(&couplerArmHeight, "arm-height", 4, "height of every arm")
	couplerCmd.Flags().Float64Var(&couplerMinRadius, "min-radius", 0, "minimum bend radius of the arms (0: no check)")
	couplerCmd.Flags().BoolVar(&couplerDivided, "divided", false, "place every segment in its own cell")
}

func runCoupler(cmd *cobra.Command, args []string) error {
	p := coupler.Params{
		CouplingLength: couplerLength,
		Gap:            couplerGap,
		Width:          width,
		Arms:           coupler.Uniform(coupler.Arm{Length: couplerArmLength, Height: couplerArmHeight}),
		SegLength:      segLength,
		MinBendRadius:  couplerMinRadius,
	}
	mode := coupler.Combined
	if couplerDivided {
		mode = coupler.Divided
	}
	m, top, layer, err := newLayout()
	if err != nil {
		return err
	}
	dev, err := coupler.Insert(m, top, layer, p, mode)
	if err != nil {
		return fmt.Errorf("failed to build coupler: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "length:            %.6g\n", dev.Length)
	fmt.Fprintf(out, "height:            %.6g\n", dev.Height)
	fmt.Fprintf(out, "center:            %s\n", dev.Center)
	for _, c := range coupler.Corners {
		fmt.Fprintf(out, "%-18s %s\n", c.String()+":", dev.Ports[c])
	}
	return save(cmd, m)
}
