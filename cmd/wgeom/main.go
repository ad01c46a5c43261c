// Command wgeom builds waveguide devices and routes into a layout file.
package main

import "github.com/wgforge/wgeom/cmd/wgeom/cmd"

func main() {
	cmd.Execute()
}
