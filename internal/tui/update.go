package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"flightmap/internal/annotation"
	"flightmap/internal/geom"
)

const sidebarWidth = 28

// mapRect returns the map origin and size in cells. It must match View.
func (m Model) mapRect() (x, y, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)
	w = contentWidth - sw - 1
	if w < 10 {
		w = 10
	}
	x = sw
	if m.showSidebar {
		x++
	}
	return x, headerHeight, w, contentHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			m.inspect()
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "d":
			m.dispatchAnnotation(annotation.Toggle)
		case "u":
			if m.draw != nil {
				m.draw.undo()
				m.status = m.draw.progress()
			}
		case "esc":
			if m.annot.Active() {
				m.dispatchAnnotation(annotation.Deactivate)
			} else {
				m.inspectPopup = ""
			}
		case "r":
			m.showRaster = !m.showRaster
		case "n":
			m.nextProduct()
		case "m":
			m.cycleMode()
		case "[":
			m.adjustFactor(-0.5)
		case "]":
			m.adjustFactor(0.5)
		case ",":
			m.adjustOpacity(-10)
		case ".":
			m.adjustOpacity(10)
		case "c":
			m.cycleRamp()
		case "v":
			m.toggleLayers()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		fs, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setFeatures(fs)
		m.status = "rendered WKT" + m.countsLabel()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) inspect() {
	lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
		fmt.Sprintf("counts: pts=%d ls=%d poly=%d ann=%d", len(m.points), len(m.lines), len(m.polygons), len(m.annotations)),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
		"crs: EPSG:4326",
	}
	if n := len(m.annotations); n > 0 {
		meta = append(meta, "last annotation: "+formatMeasurement(geom.Measure(m.annotations[n-1])))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	ox, oy, mapWidth, mapHeight := m.mapRect()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
	}
	cx, cy := msg.X, msg.Y
	if cx < ox || cx >= ox+mapWidth || cy < oy || cy >= oy+mapHeight {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX = cx - ox
	m.hoverCellY = cy - oy
	// compute lon/lat for footer
	if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
		m.hoverHasGeo = true
		m.hoverLon = lon
		m.hoverLat = lat
	} else {
		m.hoverHasGeo = false
	}
	if m.draw != nil && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.addVertexAt(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight)
	}
	// nearest vertex (points + line vertices + polygon vertices) using micro coords
	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	visit := func(p [2]float64) {
		mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
		if !ok {
			return
		}
		dx := mx - hxMic
		dy := my - hyMic
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	}
	for _, p := range m.points {
		visit(p)
	}
	for _, ls := range m.lines {
		for _, p := range ls {
			visit(p)
		}
	}
	for _, poly := range m.polygons {
		for _, ring := range poly {
			for _, p := range ring {
				visit(p)
			}
		}
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
