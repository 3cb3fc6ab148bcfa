/*
Copyright © 2026 the boxgrid authors.
This file is part of boxgrid.

boxgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

boxgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with boxgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package boxgridutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/spatialmodel/boxgrid"
)

// Footprint is the outline of one box in the plane of the first two
// axes.
type Footprint struct {
	geom.Polygon

	// Index is the position of the box in its array.
	Index int

	// Lo and Hi are the corners of the box, formatted as index vectors.
	Lo, Hi string

	// NumPts is the number of indices in the box.
	NumPts int
}

// Footprints returns the outline of every box of ba that reaches index
// layer along the last axis, or of every box if layer is negative.
// One index is one unit of distance. Cell-centered boxes cover their
// cells; node-centered boxes span from their first node to their last.
func Footprints(ba *boxgrid.BoxArray, layer int) []Footprint {
	var out []Footprint
	last := boxgrid.SpaceDim - 1
	for i, b := range ba.Boxes() {
		if !b.Ok() {
			continue
		}
		if layer >= 0 && (layer < b.Lo[last] || layer > b.Hi[last]) {
			continue
		}
		x0, y0 := float64(b.Lo[0]), float64(b.Lo[1])
		x1, y1 := float64(b.Hi[0]), float64(b.Hi[1])
		if !b.Type.Nodal(0) {
			x1++
		}
		if !b.Type.Nodal(1) {
			y1++
		}
		out = append(out, Footprint{
			Polygon: geom.Polygon{{
				{X: x0, Y: y0},
				{X: x1, Y: y0},
				{X: x1, Y: y1},
				{X: x0, Y: y1},
				{X: x0, Y: y0},
			}},
			Index:  i,
			Lo:     b.Lo.String(),
			Hi:     b.Hi.String(),
			NumPts: int(b.NumPts()),
		})
	}
	return out
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// FootprintsGeoJSON returns the footprints as a GeoJSON feature
// collection.
func FootprintsGeoJSON(fps []Footprint) ([]byte, error) {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, len(fps))}
	for i, fp := range fps {
		g, err := geojson.ToGeoJSON(fp.Polygon)
		if err != nil {
			return nil, fmt.Errorf("boxgrid: converting box %d to GeoJSON: %v", fp.Index, err)
		}
		fc.Features[i] = feature{
			Type:     "Feature",
			Geometry: g,
			Properties: map[string]interface{}{
				"index":  fp.Index,
				"lo":     fp.Lo,
				"hi":     fp.Hi,
				"numpts": fp.NumPts,
			},
		}
	}
	return json.Marshal(fc)
}

// Export writes the footprints of the boxes of ba to path, which must
// end in .geojson or .shp.
func Export(path string, ba *boxgrid.BoxArray, layer int) error {
	path = os.ExpandEnv(path)
	fps := Footprints(ba, layer)
	switch filepath.Ext(path) {
	case ".geojson", ".json":
		b, err := FootprintsGeoJSON(fps)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, b, 0644); err != nil {
			return fmt.Errorf("boxgrid: writing GeoJSON: %v", err)
		}
		return nil
	case ".shp":
		e, err := shp.NewEncoder(path, Footprint{})
		if err != nil {
			return fmt.Errorf("boxgrid: creating shapefile: %v", err)
		}
		defer e.Close()
		for _, fp := range fps {
			if err := e.Encode(fp); err != nil {
				return fmt.Errorf("boxgrid: writing shapefile: %v", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("boxgrid: export file %q must end in .geojson or .shp", path)
	}
}
