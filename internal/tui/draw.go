package tui

import (
	"fmt"

	"flightmap/internal/annotation"
	"flightmap/internal/geom"
)

// drawControl collects polygon vertices while the annotation tool is active.
type drawControl struct {
	vertices [][2]float64
}

func (d *drawControl) add(lon, lat float64) { d.vertices = append(d.vertices, [2]float64{lon, lat}) }

func (d *drawControl) undo() {
	if len(d.vertices) > 0 {
		d.vertices = d.vertices[:len(d.vertices)-1]
	}
}

// polygon closes the ring; ok is false with fewer than three vertices.
func (d *drawControl) polygon() (geom.Feature, bool) {
	if len(d.vertices) < 3 {
		return geom.Feature{}, false
	}
	ring := append([][2]float64{}, d.vertices...)
	ring = append(ring, ring[0])
	return geom.NewPolygon(ring), true
}

// measure sizes the drawing so far: an open path until it can close, then
// the polygon's perimeter and area.
func (d *drawControl) measure() geom.Measurement {
	if f, ok := d.polygon(); ok {
		return geom.Measure(f)
	}
	return geom.Measurement{Length: geom.PathLength(d.vertices, false)}
}

func formatLength(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.2f km", m/1000)
	}
	return fmt.Sprintf("%.1f m", m)
}

func formatArea(a float64) string {
	if a >= 10000 {
		return fmt.Sprintf("%.2f ha", a/10000)
	}
	return fmt.Sprintf("%.1f m²", a)
}

func formatMeasurement(ms geom.Measurement) string {
	return "length " + formatLength(ms.Length) + "  area " + formatArea(ms.Area)
}

func (d *drawControl) progress() string {
	return fmt.Sprintf("annotate: %d vertices  %s", len(d.vertices), formatMeasurement(d.measure()))
}

// dispatchAnnotation forwards a to the annotation store and mounts or
// unmounts the drawing control to match the resulting state.
func (m *Model) dispatchAnnotation(a annotation.Action) {
	m.annot.Dispatch(a)
	m.syncDrawControl()
}

func (m *Model) syncDrawControl() {
	switch {
	case m.annot.Active() && m.draw == nil:
		m.draw = &drawControl{}
		m.status = "annotate: click to add vertices, u undo, esc finish"
	case !m.annot.Active() && m.draw != nil:
		if f, ok := m.draw.polygon(); ok {
			ms := geom.Measure(f)
			f.Properties = map[string]any{
				"name":        fmt.Sprintf("annotation %d", len(m.annotations)+1),
				"perimeter_m": ms.Length,
				"area_m2":     ms.Area,
			}
			m.annotations = append(m.annotations, f)
			m.refreshGeometry()
			m.showPolys = true
			m.status = fmt.Sprintf("annotation saved (%d vertices)  %s", len(m.draw.vertices), formatMeasurement(ms))
			m.log.Info("annotation saved", "vertices", len(m.draw.vertices), "total", len(m.annotations),
				"perimeter_m", ms.Length, "area_m2", ms.Area)
		} else {
			m.status = "annotation discarded: needs 3 vertices"
		}
		m.draw = nil
	}
}

// addVertexAt places a vertex under map cell (cx, cy).
func (m *Model) addVertexAt(cx, cy, w, h int) {
	lon, lat, ok := m.cellToLonLat(cx, cy, w, h)
	if !ok {
		m.status = "annotate: no map extent"
		return
	}
	m.draw.add(lon, lat)
	m.status = m.draw.progress()
}
