package geom

import (
	"fmt"

	"github.com/mdobak/go-xerrors"
)

// ErrUnsupportedGeometry is returned by ComputeBounds for anything other than
// Point or Polygon features.
var ErrUnsupportedGeometry = xerrors.Message("unsupported geometry type")

// ComputeBounds folds Point and Polygon features into one bounding box.
// Every ring of a polygon is folded, holes included. An empty input returns
// EmptyBounds. Any other geometry type aborts the whole computation.
func ComputeBounds(features []Feature) (Bounds, error) {
	b := EmptyBounds()
	for i, f := range features {
		switch f.Geometry.Type {
		case TypePoint:
			b = b.extend(f.Geometry.Point)
		case TypePolygon:
			for _, ring := range f.Geometry.Rings {
				for _, pt := range ring {
					b = b.extend(pt)
				}
			}
		default:
			return EmptyBounds(), xerrors.New(fmt.Sprintf("bounds: feature %d (%q)", i, f.Geometry.Type), ErrUnsupportedGeometry)
		}
	}
	return b, nil
}

// Collect flattens features into render Data. Unlike ComputeBounds it accepts
// line strings and skips geometry it cannot draw.
func Collect(features []Feature) Data {
	var d Data
	n := 0
	addPt := func(pt [2]float64) {
		if n == 0 {
			d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		} else {
			if pt[0] < d.BBox.MinX {
				d.BBox.MinX = pt[0]
			}
			if pt[1] < d.BBox.MinY {
				d.BBox.MinY = pt[1]
			}
			if pt[0] > d.BBox.MaxX {
				d.BBox.MaxX = pt[0]
			}
			if pt[1] > d.BBox.MaxY {
				d.BBox.MaxY = pt[1]
			}
		}
		n++
	}
	for _, f := range features {
		g := f.Geometry
		switch g.Type {
		case TypePoint:
			d.Points = append(d.Points, g.Point)
			addPt(g.Point)
		case TypeLineString:
			d.Lines = append(d.Lines, g.Path)
			for _, p := range g.Path {
				addPt(p)
			}
		case TypePolygon:
			d.Polygons = append(d.Polygons, g.Rings)
			for _, ring := range g.Rings {
				for _, p := range ring {
					addPt(p)
				}
			}
		}
	}
	return d
}
