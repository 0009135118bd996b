package geom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDecodeGeoJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []string
	}{
		{"Bare Point", `{"type":"Point","coordinates":[1,2]}`, []string{TypePoint}},
		{"Feature", `{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"name":"a"}}`, []string{TypePolygon}},
		{"Collection", `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[0,0],[1,1]]},"properties":{}},
			{"type":"Feature","geometry":null,"properties":{}},
			{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[2,2]]},"properties":{}}
		]}`, []string{TypePoint, TypePoint, TypeLineString}},
		{"MultiPolygon", `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`, []string{TypePolygon, TypePolygon}},
		{"Unknown Type Kept", `{"type":"Feature","geometry":{"type":"GeometryCollection","geometries":[]}}`, []string{"GeometryCollection"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := DecodeGeoJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeGeoJSON(): %v", err)
			}
			if len(fs) != len(tt.types) {
				t.Fatalf("expected %d features, got %d", len(tt.types), len(fs))
			}
			for i, f := range fs {
				if f.Geometry.Type != tt.types[i] {
					t.Errorf("feature %d: expected %s, got %s", i, tt.types[i], f.Geometry.Type)
				}
			}
		})
	}
}

func TestDecodeGeoJSONErrors(t *testing.T) {
	for _, in := range []string{`not json`, `{}`, `{"type":"FeatureCollection","features":[]}`, `{"type":"Point","coordinates":"x"}`} {
		if _, err := DecodeGeoJSON([]byte(in)); err == nil {
			t.Errorf("DecodeGeoJSON(%q): expected error", in)
		}
	}
}

func TestDecodeGeoJSONProperties(t *testing.T) {
	fs, err := DecodeGeoJSON([]byte(`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"plot 4"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if fs[0].Properties["name"] != "plot 4" {
		t.Errorf("expected name property, got %v", fs[0].Properties)
	}
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []string
	}{
		{"Point", "POINT (30 10)", []string{TypePoint}},
		{"MultiPoint", "MULTIPOINT ((10 40), (40 30))", []string{TypePoint, TypePoint}},
		{"LineString", "LINESTRING (30 10, 10 30, 40 40)", []string{TypeLineString}},
		{"Polygon With Hole", "POLYGON ((35 10, 45 45, 15 40, 10 20, 35 10), (20 30, 35 35, 30 20, 20 30))", []string{TypePolygon}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := ParseWKT(tt.input)
			if err != nil {
				t.Fatalf("ParseWKT(): %v", err)
			}
			if len(fs) != len(tt.types) {
				t.Fatalf("expected %d features, got %d", len(tt.types), len(fs))
			}
			for i, f := range fs {
				if f.Geometry.Type != tt.types[i] {
					t.Errorf("feature %d: expected %s, got %s", i, tt.types[i], f.Geometry.Type)
				}
			}
		})
	}
	fs, _ := ParseWKT("POLYGON ((35 10, 45 45, 15 40, 10 20, 35 10), (20 30, 35 35, 30 20, 20 30))")
	if n := len(fs[0].Geometry.Rings); n != 2 {
		t.Errorf("expected 2 rings, got %d", n)
	}
	for _, bad := range []string{"", "CIRCLE (1 2)", "POINT 1 2", "POINT ()"} {
		if _, err := ParseWKT(bad); err == nil {
			t.Errorf("ParseWKT(%q): expected error", bad)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	p := writeTemp(t, "plots.csv", "name,Latitude,Longitude\nA,40.1,-86.9\nB,bad,-86.8\nC,40.3,-86.7\n")
	fs, err := LoadCSV(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fs))
	}
	if fs[0].Geometry.Point != [2]float64{-86.9, 40.1} {
		t.Errorf("unexpected point %v", fs[0].Geometry.Point)
	}
	if fs[1].Properties["name"] != "C" {
		t.Errorf("expected name=C, got %v", fs[1].Properties)
	}
	if _, err := LoadCSV(writeTemp(t, "nocols.csv", "a,b\n1,2\n")); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestLoadKML(t *testing.T) {
	p := writeTemp(t, "field.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
<Placemark><name>gcp1</name><Point><coordinates>-86.9,40.4,0</coordinates></Point></Placemark>
<Folder><Placemark><name>field</name><Polygon>
<outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,0</coordinates></LinearRing></outerBoundaryIs>
<innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
</Polygon></Placemark></Folder>
</Document></kml>`)
	fs, err := LoadKML(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fs))
	}
	if fs[1].Geometry.Type != TypePolygon || len(fs[1].Geometry.Rings) != 2 {
		t.Errorf("expected polygon with hole, got %+v", fs[1].Geometry)
	}
	b, err := ComputeBounds(fs)
	if err != nil {
		t.Fatal(err)
	}
	if b != (Bounds{-86.9, 0, 4, 40.4}) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(writeTemp(t, "x.shp", ""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
