package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom/layout"
)

var showCmd = &cobra.Command{
	Use:   "show <layout-file>",
	Short: "Show the cells of a layout file",
	Long: `Read a layout file in the exchange format and list its cells, with
the number of shapes each cell holds after flattening.

Examples:
  wgeom show wgeom.wgl`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := layout.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read layout: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dbu %g, %d layers, %d cells\n", m.DBU, len(m.Layers()), m.Cells())
	for i := 0; i < m.Cells(); i++ {
		ci := layout.CellIndex(i)
		c := m.Cell(ci)
		shapes, err := m.Flatten(ci)
		if err != nil {
			return err
		}
		length := 0.0
		for _, s := range shapes {
			length += s.Path.Length()
		}
		fmt.Fprintf(out, "  %-12s %3d shapes, %3d instances, %4d flat shapes, waveguide length %.6g\n",
			c.Name, len(c.Shapes), len(c.Insts), len(shapes), length)
	}
	return nil
}
