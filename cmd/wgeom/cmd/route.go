package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wgforge/wgeom"
	"github.com/wgforge/wgeom/route"
)

var (
	routeInputs    []float64
	routeOutputs   []float64
	routeAxis      string
	routeSpan      float64
	routeSpacing   float64
	routeMinRadius float64
	routeDense     bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route a bundle of waveguides between two port lists",
	Long: `Connect input[i] to output[i] for sorted port offset lists. By default
every pair is bridged by an S-bend; --dense routes with 90° bends instead,
which keeps the interconnect short along the routing axis.

Examples:
  wgeom route --inputs 4,3,2,1,0 --outputs 70,60,58,56,50
  wgeom route --inputs 0,10,20 --outputs 50,60,70 --dense --axis y`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().Float64SliceVar(&routeInputs, "inputs", nil, "input port offsets")
	routeCmd.Flags().Float64SliceVar(&routeOutputs, "outputs", nil, "output port offsets")
	routeCmd.Flags().StringVar(&routeAxis, "axis", "x", "routing axis, x or y")
	routeCmd.Flags().Float64Var(&routeSpan, "span", 0, "distance between inputs and outputs (0: shortest)")
	routeCmd.Flags().Float64Var(&routeSpacing, "spacing", 0, "spacing of dense vertical runs (0: default)")
	routeCmd.Flags().Float64Var(&routeMinRadius, "min-radius", wgeom.MinBendRadius, "minimum bend radius")
	routeCmd.Flags().BoolVar(&routeDense, "dense", false, "route with 90° bends")
}

func runRoute(cmd *cobra.Command, args []string) error {
	req := route.Request{Inputs: routeInputs, Outputs: routeOutputs}
	switch routeAxis {
	case "x":
		req.Axis = route.X
	case "y":
		req.Axis = route.Y
	default:
		return wgeom.Invalid("axis", "unknown axis %q", routeAxis)
	}
	opts := []route.Option{
		route.WithMinBendRadius(routeMinRadius),
		route.WithSpan(routeSpan),
		route.WithWidth(width),
		route.WithSegLength(segLength),
	}
	var paths []*wgeom.Path
	var err error
	if routeDense {
		if routeSpacing > 0 {
			opts = append(opts, route.WithSpacing(routeSpacing))
		}
		paths, err = route.Dense(req, opts...)
	} else {
		paths, err = route.Route(req, opts...)
	}
	if err != nil {
		return fmt.Errorf("failed to route: %w", err)
	}
	if err = route.Check(paths, routeMinRadius); err != nil {
		return fmt.Errorf("routed bundle is not clean: %w", err)
	}
	m, top, layer, err := newLayout()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, p := range paths {
		fmt.Fprintf(out, "path %2d: %s → %s, length %.6g\n", i, p.Z(0), p.Z(-1), p.Length())
		if err = m.Insert(top, layer, p); err != nil {
			return err
		}
	}
	return save(cmd, m)
}
