package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPlacemark struct {
	Name  string `xml:"name"`
	Point *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	Polygon *struct {
		Outer  kmlRing   `xml:"outerBoundaryIs"`
		Inners []kmlRing `xml:"innerBoundaryIs"`
	} `xml:"Polygon"`
}

// LoadKML extracts Point and Polygon placemarks from a KML file.
// Placemarks may sit directly under the root, a Document or Folders.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.New(err)
	}
	var doc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
			Folders    []struct {
				Placemarks []kmlPlacemark `xml:"Placemark"`
			} `xml:"Folder"`
		} `xml:"Document"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, xerrors.New("kml", err)
	}
	pms := append([]kmlPlacemark{}, doc.Placemarks...)
	pms = append(pms, doc.Document.Placemarks...)
	for _, f := range doc.Document.Folders {
		pms = append(pms, f.Placemarks...)
	}
	var out []Feature
	for _, pm := range pms {
		var props map[string]any
		if pm.Name != "" {
			props = map[string]any{"name": pm.Name}
		}
		switch {
		case pm.Point != nil:
			for _, pt := range kmlCoords(pm.Point.Coordinates) {
				ft := NewPoint(pt[0], pt[1])
				ft.Properties = props
				out = append(out, ft)
			}
		case pm.Polygon != nil:
			outer := kmlCoords(pm.Polygon.Outer.Coordinates)
			if len(outer) == 0 {
				continue
			}
			rings := [][][2]float64{outer}
			for _, in := range pm.Polygon.Inners {
				if r := kmlCoords(in.Coordinates); len(r) > 0 {
					rings = append(rings, r)
				}
			}
			ft := NewPolygon(rings...)
			ft.Properties = props
			out = append(out, ft)
		}
	}
	if len(out) == 0 {
		return nil, xerrors.New("kml: no placemarks found")
	}
	return out, nil
}

// coordinates may contain multiple tuples separated by whitespace
func kmlCoords(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}
