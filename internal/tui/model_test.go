package tui

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"flightmap/internal/annotation"
	"flightmap/internal/geom"
	"flightmap/internal/logging"
	"flightmap/internal/symbology"
)

func testOptions() Options {
	return Options{
		Logger:     logging.New(io.Discard, 0),
		Defaults:   symbology.StandardDefaults,
		LayerColor: "#ffde21",
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func keys(t *testing.T, m Model, ks ...string) Model {
	t.Helper()
	for _, k := range ks {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestAnnotationDrawing(t *testing.T) {
	m := send(t, New(testOptions()), tea.WindowSizeMsg{Width: 100, Height: 30})
	m = keys(t, m, "d")
	if !m.annot.Active() || m.draw == nil {
		t.Fatal("expected drawing control mounted after d")
	}
	m = send(t, m, click(10, 5), click(40, 5), click(40, 20), click(60, 25))
	if n := len(m.draw.vertices); n != 4 {
		t.Fatalf("expected 4 vertices, got %d", n)
	}
	m = keys(t, m, "u")
	if n := len(m.draw.vertices); n != 3 {
		t.Fatalf("expected 3 vertices after undo, got %d", n)
	}
	m = keys(t, m, "esc")
	if m.annot.Active() || m.draw != nil {
		t.Fatal("expected drawing control unmounted after esc")
	}
	if len(m.annotations) != 1 || m.annotations[0].Geometry.Type != geom.TypePolygon {
		t.Fatalf("expected one polygon annotation, got %+v", m.annotations)
	}
	ring := m.annotations[0].Geometry.Rings[0]
	if len(ring) != 4 || ring[0] != ring[3] {
		t.Errorf("expected closed ring of 4 positions, got %v", ring)
	}
	b, err := geom.ComputeBounds(m.annotations)
	if err != nil {
		t.Fatal(err)
	}
	if m.bbox != b.BBox() {
		t.Errorf("viewport %v does not match annotation bounds %v", m.bbox, b.BBox())
	}
	if m.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestAnnotationToggleDiscardsShortDrawing(t *testing.T) {
	store := annotation.NewStore()
	var actions []string
	store.Subscribe(func(a annotation.Action, _, _ annotation.State) { actions = append(actions, a.String()) })
	opts := testOptions()
	opts.Annotations = store
	m := send(t, New(opts), tea.WindowSizeMsg{Width: 100, Height: 30})
	m = keys(t, m, "d")
	m = send(t, m, click(10, 5))
	m = keys(t, m, "d")
	if m.draw != nil || len(m.annotations) != 0 {
		t.Errorf("expected discarded drawing, got %d annotations", len(m.annotations))
	}
	if !strings.Contains(m.status, "discarded") {
		t.Errorf("unexpected status %q", m.status)
	}
	if strings.Join(actions, ",") != "TOGGLE,TOGGLE" {
		t.Errorf("unexpected actions %v", actions)
	}
	// clicks outside drawing mode add nothing
	m = send(t, m, click(20, 10))
	if m.draw != nil {
		t.Error("drawing control mounted without activation")
	}
}

const testCatalog = `
title: Test Farm
flights:
  - id: 2b8e6a44-3c0f-4f6e-9a7d-5d1e0c9b8a01
    name: June survey
    acquisition_date: "2024-06-14"
    data_products:
      - data_type: DSM
        stac_properties:
          raster:
            - stats: {minimum: 180, maximum: 212, mean: 195, stddev: 4}
      - data_type: DSM HS
        stac_properties:
          raster:
            - stats: {minimum: 0, maximum: 255, mean: 128, stddev: 30}
      - data_type: Ortho
        stac_properties:
          raster:
            - stats: {minimum: 0, maximum: 255, mean: 110, stddev: 40}
            - stats: {minimum: 0, maximum: 255, mean: 120, stddev: 35}
            - stats: {minimum: 0, maximum: 255, mean: 90, stddev: 25}
layers:
  - layer_name: Plots
    geom_type: polygon
    signed_url: plots.geojson
`

const testPlots = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"plot":1},"geometry":{"type":"Polygon","coordinates":[[[-86.95,40.40],[-86.94,40.40],[-86.94,40.41],[-86.95,40.40]]]}},
{"type":"Feature","properties":{"plot":2},"geometry":{"type":"Point","coordinates":[-86.93,40.42]}}
]}`

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plots.geojson"), []byte(testPlots), 0o644); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(p, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCatalogSymbology(t *testing.T) {
	m := send(t, NewWithPath(writeProject(t), testOptions()), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.project == nil || len(m.products) != 3 || !m.showRaster {
		t.Fatalf("catalog not loaded: %s", m.status)
	}
	panel := m.renderRasterPanel()
	for _, want := range []string{"DSM", "stretch: minMax", "range: 180.00 – 212.00", "hillshade: DSM HS", "Plots (off)"} {
		if !strings.Contains(panel, want) {
			t.Errorf("panel missing %q:\n%s", want, panel)
		}
	}

	m = keys(t, m, "m", "m")
	s, err := m.activeStyle()
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode() != symbology.ModeMeanStdDev {
		t.Fatalf("expected meanStdDev, got %s", s.Mode())
	}
	if panel := m.renderRasterPanel(); !strings.Contains(panel, "range: 187.00 – 203.00") {
		t.Errorf("expected mean±2·stddev range:\n%s", panel)
	}
	m = keys(t, m, "]")
	if panel := m.renderRasterPanel(); !strings.Contains(panel, "range: 185.00 – 205.00") {
		t.Errorf("expected mean±2.5·stddev range:\n%s", panel)
	}
	m = keys(t, m, ",", ",", "c")
	s, _ = m.activeStyle()
	if s.Opacity() != 80 || s.Single.ColorRamp != "viridis" {
		t.Errorf("unexpected style %+v", *s.Single)
	}

	m = keys(t, m, "n", "n")
	panel = m.renderRasterPanel()
	if !strings.Contains(panel, "Ortho") || !strings.Contains(panel, "band 3: 0.00 – 255.00") || !strings.Contains(panel, "hillshade: none") {
		t.Errorf("unexpected multiband panel:\n%s", panel)
	}
	m = keys(t, m, "c")
	if !strings.Contains(m.status, "single-band") {
		t.Errorf("expected ramp refusal for multiband, got %q", m.status)
	}

	m = keys(t, m, "a")
	if !m.showAttrs || len(m.tbl.Rows()) != 3 {
		t.Errorf("expected band statistics table with 3 rows, got %d", len(m.tbl.Rows()))
	}
	if m.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestCatalogLayers(t *testing.T) {
	m := NewWithPath(writeProject(t), testOptions())
	m = keys(t, m, "v")
	if !m.layers[0].Checked || len(m.layerFeatures) != 2 {
		t.Fatalf("expected checked layer with 2 features, got %v / %d (%s)", m.layers[0].Checked, len(m.layerFeatures), m.status)
	}
	want := geom.BBox{MinX: -86.95, MinY: 40.40, MaxX: -86.93, MaxY: 40.42}
	if m.bbox != want {
		t.Errorf("expected bbox %v, got %v", want, m.bbox)
	}
	m = keys(t, m, "v")
	if m.layers[0].Checked || len(m.layerFeatures) != 0 {
		t.Error("expected layers unchecked")
	}
}

func TestLineStringFallsBackToRenderExtent(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.Logger = logging.New(&buf, slog.LevelInfo)
	m := New(opts)
	fs, err := geom.ParseWKT("LINESTRING (0 0, 10 5)")
	if err != nil {
		t.Fatal(err)
	}
	m.setFeatures(fs)
	want := geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	if m.bbox != want {
		t.Errorf("expected render extent %v, got %v", want, m.bbox)
	}
	if !m.showLines {
		t.Error("expected lines visible")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output at info level, got %q", buf.String())
	}
}

func TestSinglePointPadded(t *testing.T) {
	m := New(testOptions())
	m.setFeatures([]geom.Feature{geom.NewPoint(5, 5)})
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		t.Errorf("expected padded bbox, got %v", m.bbox)
	}
}

func TestPasteWKT(t *testing.T) {
	m := send(t, New(testOptions()), tea.WindowSizeMsg{Width: 100, Height: 30})
	m = keys(t, m, "p")
	if !m.pasteMode {
		t.Fatal("expected paste mode")
	}
	m.ta.SetValue("POLYGON ((0 0, 4 0, 4 4, 0 0))")
	m = keys(t, m, "enter")
	if m.pasteMode || len(m.polygons) != 1 {
		t.Fatalf("expected one polygon rendered, status %q", m.status)
	}
	if m.bbox != (geom.BBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}) {
		t.Errorf("unexpected bbox %v", m.bbox)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.geojson")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewWithPath(bad, testOptions())
	if !strings.HasPrefix(m.status, "load error") {
		t.Errorf("unexpected status %q", m.status)
	}
	m = NewWithPath(filepath.Join(dir, "missing.yaml"), testOptions())
	if !strings.HasPrefix(m.status, "catalog error") || m.project != nil {
		t.Errorf("unexpected status %q", m.status)
	}
	m = keys(t, m, "n")
	if m.status != "no raster products loaded" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestAnnotationMeasurement(t *testing.T) {
	m := send(t, New(testOptions()), tea.WindowSizeMsg{Width: 100, Height: 30})
	m = keys(t, m, "d")
	m.draw.vertices = [][2]float64{{0, 0}, {0.01, 0}}
	if got, want := m.draw.progress(), "annotate: 2 vertices  length 1.11 km  area 0.0 m²"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	m.draw.vertices = append(m.draw.vertices, [2]float64{0.01, 0.01}, [2]float64{0, 0.01})
	m = keys(t, m, "esc")
	if len(m.annotations) != 1 {
		t.Fatalf("expected one annotation, got %d", len(m.annotations))
	}
	props := m.annotations[0].Properties
	side := 0.01 * math.Pi / 180 * geom.EarthRadiusMeters
	perim, _ := props["perimeter_m"].(float64)
	area, _ := props["area_m2"].(float64)
	if math.Abs(perim-4*side) > 1 {
		t.Errorf("expected perimeter %.1f, got %.1f", 4*side, perim)
	}
	if math.Abs(area-side*side)/(side*side) > 1e-3 {
		t.Errorf("expected area %.0f, got %.0f", side*side, area)
	}
	if !strings.Contains(m.status, "length 4.45 km  area 123.64 ha") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestRasterStyleCachedOnSelection(t *testing.T) {
	m := send(t, NewWithPath(writeProject(t), testOptions()), tea.WindowSizeMsg{Width: 120, Height: 40})
	if len(m.styles) != 1 {
		t.Fatalf("expected the first product's style cached on load, got %d", len(m.styles))
	}
	m = keys(t, m, "n")
	if len(m.styles) != 2 {
		t.Fatalf("expected style cached on selection, got %d", len(m.styles))
	}
	m.styles = map[uuid.UUID]symbology.Symbology{}
	if m.View() == "" || !strings.Contains(m.renderRasterPanel(), "stretch: minMax") {
		t.Error("expected raster panel rendered from a derived style")
	}
	if len(m.styles) != 0 {
		t.Errorf("rendering cached %d styles", len(m.styles))
	}
}

func TestRenderMapPlotsFeatures(t *testing.T) {
	m := New(testOptions())
	m.setFeatures([]geom.Feature{
		geom.NewPolygon([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}),
	})
	out := m.renderAsciiMap(10, 5)
	if !strings.ContainsRune(out, '⣿') {
		t.Errorf("expected filled braille cells, got:\n%s", out)
	}
	if rows := strings.Split(out, "\n"); len(rows) != 5 {
		t.Errorf("expected 5 rows, got %d", len(rows))
	}
}
