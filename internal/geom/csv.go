package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns point
// features. Every other column becomes a string property.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.New(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, xerrors.New("csv", err)
	}
	if len(recs) == 0 {
		return nil, xerrors.New("csv: empty")
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, xerrors.New("csv: latitude/longitude columns not found")
	}
	var out []Feature
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ft := NewPoint(lon, lat)
		ft.Properties = make(map[string]any, len(header))
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			ft.Properties[h] = row[i]
		}
		out = append(out, ft)
	}
	if len(out) == 0 {
		return nil, xerrors.New("csv: no valid points parsed")
	}
	return out, nil
}
