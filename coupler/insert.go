package coupler

import (
	"fmt"

	"github.com/wgforge/wgeom/layout"
)

// Insert builds a coupler and hands it to a layout. In Combined mode all
// paths are inserted into cell. In Divided mode every region becomes a cell
// of its own, named after the region, which is placed into cell
// untransformed. Cell names are unique within a layout, so a layout holds
// at most one divided coupler.
func Insert(lay layout.Layout, cell layout.CellIndex, layer layout.LayerIndex, p Params, mode Mode) (*Device, error) {
	dev, err := Build(p)
	if err != nil {
		return nil, err
	}
	if mode != Divided {
		for _, path := range dev.Paths {
			if err = lay.Insert(cell, layer, path); err != nil {
				return nil, err
			}
		}
		return dev, nil
	}
	for _, r := range dev.Regions(Divided) {
		sub, err := lay.CreateCell(r.Name)
		if err != nil {
			return nil, fmt.Errorf("coupler region %s: %w", r.Name, err)
		}
		for _, path := range r.Paths {
			if err = lay.Insert(sub, layer, path); err != nil {
				return nil, err
			}
		}
		if err = lay.Instantiate(cell, sub, layout.Identity, nil); err != nil {
			return nil, err
		}
	}
	tracer().Infof("inserted %s coupler into cell %d", mode, cell)
	return dev, nil
}
