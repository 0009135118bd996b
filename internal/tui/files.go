package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/google/uuid"

	"flightmap/internal/catalog"
	"flightmap/internal/geom"
	"flightmap/internal/logging"
	"flightmap/internal/symbology"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func isCatalogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		if geom.IsVectorFile(p) || isCatalogFile(p) {
			items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a vector file or a project catalog into the model.
func (m *Model) loadPath(p string) {
	if isCatalogFile(p) {
		m.loadCatalog(p)
		return
	}
	fs, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Error("load vector file", "path", p, logging.Err(err))
		return
	}
	m.selPath = p
	m.setFeatures(fs)
	m.status = "loaded: " + filepath.Base(p) + m.countsLabel()
	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// setFeatures replaces the loaded dataset and resets the viewport.
func (m *Model) setFeatures(fs []geom.Feature) {
	m.features = fs
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.refreshGeometry()
	// prefer polys > lines > points for visibility
	m.showPolys = len(m.polygons) > 0
	m.showLines = len(m.lines) > 0 && !m.showPolys
	m.showPoints = len(m.points) > 0 && !m.showPolys
}

func (m *Model) allFeatures() []geom.Feature {
	all := make([]geom.Feature, 0, len(m.features)+len(m.layerFeatures)+len(m.annotations))
	all = append(all, m.features...)
	all = append(all, m.layerFeatures...)
	return append(all, m.annotations...)
}

// refreshGeometry rebuilds render data and the viewport bbox from every
// loaded feature. Bounds come from ComputeBounds; datasets it rejects fall
// back to the render extent, and an empty result keeps the previous bbox.
func (m *Model) refreshGeometry() {
	all := m.allFeatures()
	d := geom.Collect(all)
	m.points, m.lines, m.polygons = d.Points, d.Lines, d.Polygons
	b, err := geom.ComputeBounds(all)
	switch {
	case err != nil:
		m.log.Debug("bounds unavailable, using render extent", logging.Err(err))
		m.bbox = d.BBox
	case b.IsEmpty():
		return
	default:
		m.bbox = b.BBox()
	}
	m.bbox = padBBox(m.bbox)
}

// padBBox widens a degenerate box so a single point can still be projected.
func padBBox(b geom.BBox) geom.BBox {
	const pad = 0.001
	if b.MaxX <= b.MinX {
		b.MinX, b.MaxX = b.MinX-pad, b.MaxX+pad
	}
	if b.MaxY <= b.MinY {
		b.MinY, b.MaxY = b.MinY-pad, b.MaxY+pad
	}
	return b
}

func (m *Model) countsLabel() string {
	return fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", len(m.points), len(m.lines), len(m.polygons))
}

func (m *Model) loadCatalog(p string) {
	proj, err := catalog.Load(p)
	if err != nil {
		m.status = "catalog error: " + err.Error()
		m.log.Error("load catalog", "path", p, logging.Err(err))
		return
	}
	m.selPath = p
	m.project = proj
	m.products = proj.Products()
	m.styles = map[uuid.UUID]symbology.Symbology{}
	m.selectProduct(0)
	m.layers = catalog.LayersFromAPI(proj.Layers, m.layerColor)
	m.layerFeatures = nil
	m.refreshGeometry()
	m.showRaster = len(m.products) > 0
	m.status = fmt.Sprintf("catalog: %s  flights=%d products=%d layers=%d", proj.Title, len(proj.Flights), len(m.products), len(m.layers))
	m.log.Info("catalog loaded", "title", proj.Title, "project", proj.ID, "products", len(m.products))
}

// toggleLayers checks or unchecks every catalog vector layer, loading the
// checked ones onto the map.
func (m *Model) toggleLayers() {
	if len(m.layers) == 0 {
		m.status = "no vector layers in catalog"
		return
	}
	checked := !m.layers[0].Checked
	m.layerFeatures = nil
	loaded := 0
	for i := range m.layers {
		m.layers[i].Checked = checked
		if !checked {
			continue
		}
		fs, err := geom.Load(m.project.LayerPath(m.layers[i]))
		if err != nil {
			m.log.Error("load layer", "layer", m.layers[i].Name, logging.Err(err))
			m.status = "layer error: " + err.Error()
			continue
		}
		m.layerFeatures = append(m.layerFeatures, fs...)
		loaded++
	}
	m.refreshGeometry()
	if checked {
		m.showPolys = len(m.polygons) > 0
		m.showLines = len(m.lines) > 0
		m.showPoints = len(m.points) > 0
		if loaded > 0 {
			m.status = fmt.Sprintf("layers on: %d", loaded) + m.countsLabel()
		}
	} else {
		m.status = "layers off"
	}
}
