package cmd

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/layout"
)

var (
	// Global flags
	verbose   bool
	outFile   string
	layerNum  int
	datatype  int
	width     float64
	segLength float64
)

// traceKeys are the tracers of all packages.
var traceKeys = []string{"wgeom", "curves", "arclen", "spiral", "coupler", "route", "layout", "polygon"}

var rootCmd = &cobra.Command{
	Use:   "wgeom",
	Short: "Waveguide geometry builder",
	Long: `Build parametric waveguide devices and bundle routes and write them
to a layout file in the S-expression exchange format.

Examples:
  wgeom sbend --length 20 --height 5 -o sbend.wgl
  wgeom spiral --turns 3 --spacing 2 --length 1000
  wgeom coupler --gap 0.2 --divided
  wgeom route --inputs 4,3,2,1,0 --outputs 70,60,58,56,50
  wgeom show sbend.wgl`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.LevelInfo
		if verbose {
			level = tracing.LevelDebug
		}
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outFile, "out", "o", "wgeom.wgl", "layout file to write")
	rootCmd.PersistentFlags().IntVar(&layerNum, "layer", 1, "layer number of the waveguides")
	rootCmd.PersistentFlags().IntVar(&datatype, "datatype", 0, "datatype of the waveguides")
	rootCmd.PersistentFlags().Float64Var(&width, "width", wgeom.Width, "waveguide width")
	rootCmd.PersistentFlags().Float64Var(&segLength, "seg", wgeom.SegLength, "point spacing of curves")
}

// newLayout creates a layout with a top cell and the waveguide layer.
func newLayout() (*layout.Memory, layout.CellIndex, layout.LayerIndex, error) {
	m := layout.NewMemory()
	top, err := m.CreateCell("TOP")
	if err != nil {
		return nil, 0, 0, err
	}
	return m, top, m.Layer(layerNum, datatype), nil
}

func save(cmd *cobra.Command, m *layout.Memory) error {
	if err := m.WriteFile(outFile); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}
