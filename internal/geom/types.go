package geom

import "math"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Geometry type names as they appear in GeoJSON.
const (
	TypePoint      = "Point"
	TypeLineString = "LineString"
	TypePolygon    = "Polygon"
)

// Geometry holds one simple geometry. Only the field matching Type is set.
type Geometry struct {
	Type  string
	Point [2]float64     // lng, lat
	Path  [][2]float64   // LineString vertices
	Rings [][][2]float64 // Polygon rings, exterior first, then holes
}

// Feature is a geometry plus its attribute properties.
type Feature struct {
	Geometry   Geometry
	Properties map[string]any
}

func NewPoint(lng, lat float64) Feature {
	return Feature{Geometry: Geometry{Type: TypePoint, Point: [2]float64{lng, lat}}}
}

func NewLineString(path [][2]float64) Feature {
	return Feature{Geometry: Geometry{Type: TypeLineString, Path: path}}
}

func NewPolygon(rings ...[][2]float64) Feature {
	return Feature{Geometry: Geometry{Type: TypePolygon, Rings: rings}}
}

// Bounds is [minLng, minLat, maxLng, maxLat].
type Bounds [4]float64

// EmptyBounds returns the fold identity: +Inf mins and -Inf maxes.
func EmptyBounds() Bounds {
	return Bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

// IsEmpty reports whether b carries no usable box (any side still infinite).
func (b Bounds) IsEmpty() bool {
	for _, v := range b {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func (b Bounds) BBox() BBox {
	return BBox{MinX: b[0], MinY: b[1], MaxX: b[2], MaxY: b[3]}
}

func (b Bounds) extend(pt [2]float64) Bounds {
	return Bounds{
		math.Min(b[0], pt[0]),
		math.Min(b[1], pt[1]),
		math.Max(b[2], pt[0]),
		math.Max(b[3], pt[1]),
	}
}
