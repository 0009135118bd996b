package tui

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the current
// dataset: band statistics while the raster panel is up, feature properties
// otherwise.
func (m *Model) refreshAttrsFromCurrent() {
	var cols []string
	var rows [][]string
	if m.showRaster && m.project != nil {
		cols, rows = m.buildBandStats()
	} else {
		cols, rows = m.buildAttributes()
	}
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	// map to bubbles table columns/rows
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		if w < 10 {
			w = 10
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		// Normalize each row to match the number of table columns
		for len(row) < len(tcols) {
			row = append(row, "")
		}
		trows = append(trows, table.Row(row[:len(tcols)]))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions the property keys of all loaded features and
// annotations.
func (m *Model) buildAttributes() ([]string, [][]string) {
	fs := m.allFeatures()
	if len(fs) == 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	var order []string
	for _, f := range fs {
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	if len(order) == 0 {
		// geometry only: fall back to a single summary row
		name := filepath.Base(m.selPath)
		if m.selPath == "" {
			name = "<unsaved>"
		}
		cols := []string{"name", "bbox", "points", "lines", "polygons"}
		vals := []string{name, fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
			fmt.Sprintf("%d", len(m.points)), fmt.Sprintf("%d", len(m.lines)), fmt.Sprintf("%d", len(m.polygons))}
		return cols, [][]string{vals}
	}
	cols := append([]string{"geometry"}, order...)
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		vals := []string{f.Geometry.Type}
		for _, k := range order {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

// buildBandStats lists per-band statistics of the active raster product.
func (m *Model) buildBandStats() ([]string, [][]string) {
	dp, ok := m.activeProduct()
	if !ok || dp.STACProperties == nil {
		return nil, nil
	}
	cols := []string{"band", "minimum", "maximum", "mean", "stddev"}
	var rows [][]string
	for i, b := range dp.STACProperties.Raster {
		if b.Stats == nil {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), "-", "-", "-", "-"})
			continue
		}
		st := b.Stats
		rows = append(rows, []string{fmt.Sprintf("%d", i+1),
			formatStat(st.Minimum), formatStat(st.Maximum),
			formatStat(st.Mean), formatStat(st.StdDev)})
	}
	return cols, rows
}

// formatStat renders a band statistic; missing ones show as "-".
func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

