package geom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mdobak/go-xerrors"
)

type geoJSONObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoJSONObject  `json:"geometry"`
	Properties  map[string]any  `json:"properties"`
	Features    []geoJSONObject `json:"features"`
}

// LoadGeoJSON reads a GeoJSON file into features.
func LoadGeoJSON(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return DecodeGeoJSON(data)
}

// DecodeGeoJSON accepts a FeatureCollection, a single Feature or a bare
// geometry. Multi* geometries are split into one feature per part, sharing
// the parent's properties. Geometry types with no simple equivalent are kept
// with their type name and no coordinates.
func DecodeGeoJSON(data []byte) ([]Feature, error) {
	var raw geoJSONObject
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, xerrors.New("geojson", err)
	}
	var out []Feature
	switch raw.Type {
	case "":
		return nil, xerrors.New("geojson: missing type")
	case "FeatureCollection":
		for i, f := range raw.Features {
			if f.Geometry == nil {
				continue
			}
			fs, err := decodeGeometry(*f.Geometry, f.Properties)
			if err != nil {
				return nil, xerrors.New(fmt.Sprintf("geojson: feature %d", i), err)
			}
			out = append(out, fs...)
		}
	case "Feature":
		if raw.Geometry != nil {
			fs, err := decodeGeometry(*raw.Geometry, raw.Properties)
			if err != nil {
				return nil, xerrors.New("geojson", err)
			}
			out = fs
		}
	default:
		fs, err := decodeGeometry(raw, nil)
		if err != nil {
			return nil, xerrors.New("geojson", err)
		}
		out = fs
	}
	if len(out) == 0 {
		return nil, xerrors.New("geojson: no geometries found")
	}
	return out, nil
}

func decodeGeometry(g geoJSONObject, props map[string]any) ([]Feature, error) {
	with := func(f Feature) Feature {
		f.Properties = props
		return f
	}
	var out []Feature
	switch g.Type {
	case "Point":
		var c []float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("point coordinates", err)
		}
		if pt, ok := position(c); ok {
			out = append(out, with(NewPoint(pt[0], pt[1])))
		}
	case "MultiPoint":
		var c [][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("multipoint coordinates", err)
		}
		for _, pt := range positions(c) {
			out = append(out, with(NewPoint(pt[0], pt[1])))
		}
	case "LineString":
		var c [][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("linestring coordinates", err)
		}
		out = append(out, with(NewLineString(positions(c))))
	case "MultiLineString":
		var c [][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("multilinestring coordinates", err)
		}
		for _, ls := range c {
			out = append(out, with(NewLineString(positions(ls))))
		}
	case "Polygon":
		var c [][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("polygon coordinates", err)
		}
		out = append(out, with(NewPolygon(rings(c)...)))
	case "MultiPolygon":
		var c [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, xerrors.New("multipolygon coordinates", err)
		}
		for _, poly := range c {
			out = append(out, with(NewPolygon(rings(poly)...)))
		}
	default:
		out = append(out, with(Feature{Geometry: Geometry{Type: g.Type}}))
	}
	return out, nil
}

func position(c []float64) ([2]float64, bool) {
	if len(c) < 2 {
		return [2]float64{}, false
	}
	return [2]float64{c[0], c[1]}, true
}

func positions(cs [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(cs))
	for _, c := range cs {
		if pt, ok := position(c); ok {
			out = append(out, pt)
		}
	}
	return out
}

func rings(rs [][][]float64) [][][2]float64 {
	out := make([][][2]float64, 0, len(rs))
	for _, r := range rs {
		out = append(out, positions(r))
	}
	return out
}
