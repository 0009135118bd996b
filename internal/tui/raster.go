package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdobak/go-xerrors"

	"flightmap/internal/catalog"
	"flightmap/internal/logging"
	"flightmap/internal/symbology"
)

func (m *Model) activeProduct() (catalog.DataProduct, bool) {
	if m.active < 0 || m.active >= len(m.products) {
		return catalog.DataProduct{}, false
	}
	return m.products[m.active], true
}

// styleOf returns the working style of dp: the cached edit if any, otherwise
// a freshly derived one that is not stored.
func (m Model) styleOf(dp catalog.DataProduct) (symbology.Symbology, error) {
	if s, ok := m.styles[dp.ID]; ok {
		return s, nil
	}
	return catalog.Style(dp, m.defaults)
}

// activeStyle returns the working style of the active product, deriving and
// caching it on first use.
func (m *Model) activeStyle() (symbology.Symbology, error) {
	dp, ok := m.activeProduct()
	if !ok {
		return symbology.Symbology{}, xerrors.New("no raster product selected")
	}
	if s, ok := m.styles[dp.ID]; ok {
		return s, nil
	}
	s, err := m.styleOf(dp)
	if err != nil {
		return symbology.Symbology{}, err
	}
	if s.Variant == symbology.VariantMulti && dp.STACProperties != nil {
		if err := s.Multi.Validate(dp.STACProperties.BandCount()); err != nil {
			m.log.Warn("saved style addresses a missing band", "product", dp.DataType, logging.Err(err))
		}
	}
	m.styles[dp.ID] = s
	return s, nil
}

func (m *Model) editStyle(label string, fn func(symbology.Symbology) symbology.Symbology) {
	s, err := m.activeStyle()
	if err != nil {
		m.status = "symbology: " + err.Error()
		return
	}
	dp, _ := m.activeProduct()
	s = fn(s)
	m.styles[dp.ID] = s
	m.showRaster = true
	m.status = label
	m.log.Debug("symbology changed", "product", dp.DataType, "mode", s.Mode(), "opacity", s.Opacity())
}

func (m *Model) cycleMode() {
	m.editStyle("", func(s symbology.Symbology) symbology.Symbology { return s.WithMode(s.Mode().Next()) })
	if s, err := m.activeStyle(); err == nil {
		m.status = "stretch: " + string(s.Mode())
	}
}

func (m *Model) adjustFactor(delta float64) {
	m.editStyle("", func(s symbology.Symbology) symbology.Symbology {
		k := s.Factor()
		if math.IsNaN(k) {
			k = m.defaults.MeanStdDevFactor
		}
		return s.WithFactor(math.Max(0.5, k+delta))
	})
	if s, err := m.activeStyle(); err == nil {
		m.status = fmt.Sprintf("stddev factor: %.1f", s.Factor())
	}
}

func (m *Model) adjustOpacity(delta int) {
	m.editStyle("", func(s symbology.Symbology) symbology.Symbology { return s.WithOpacity(s.Opacity() + delta) })
	if s, err := m.activeStyle(); err == nil {
		m.status = fmt.Sprintf("opacity: %d%%", s.Opacity())
	}
}

func (m *Model) cycleRamp() {
	s, err := m.activeStyle()
	if err != nil {
		m.status = "symbology: " + err.Error()
		return
	}
	if s.Variant != symbology.VariantSingle {
		m.status = "color ramps apply to single-band rasters"
		return
	}
	next := symbology.NextColorRamp(s.Single.ColorRamp)
	m.editStyle("color ramp: "+next, func(s symbology.Symbology) symbology.Symbology { return s.WithColorRamp(next) })
}

// selectProduct makes product i active and caches its style.
func (m *Model) selectProduct(i int) {
	m.active = i
	dp, ok := m.activeProduct()
	if !ok {
		return
	}
	if _, err := m.activeStyle(); err != nil {
		m.log.Warn("no style for product", "product", dp.DataType, logging.Err(err))
	}
}

func (m *Model) nextProduct() {
	if len(m.products) == 0 {
		m.status = "no raster products loaded"
		return
	}
	m.selectProduct((m.active + 1) % len(m.products))
	m.showRaster = true
	dp := m.products[m.active]
	m.status = fmt.Sprintf("raster %d/%d: %s", m.active+1, len(m.products), dp.DataType)
}

func (m Model) renderRasterPanel() string {
	dp, ok := m.activeProduct()
	if !ok {
		return "no raster products loaded"
	}
	rows := []string{titleStyle.Render(dp.DataType)}
	if f := m.project.Flight(dp.FlightID); f != nil {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("%s  %s  %s", f.Name, f.AcquisitionDate, f.Sensor)))
	}
	s, err := m.styleOf(dp)
	if err != nil {
		rows = append(rows, "symbology: "+err.Error())
		return strings.Join(rows, "\n")
	}
	props := symbology.STACProperties{}
	if dp.STACProperties != nil {
		props = *dp.STACProperties
	}
	rows = append(rows,
		fmt.Sprintf("bands: %d  variant: %s", props.BandCount(), s.Variant),
		fmt.Sprintf("stretch: %s  k=%.1f  opacity: %d%%", s.Mode(), s.Factor(), s.Opacity()),
	)
	ranges := m.resolver.Resolve(props, s)
	if s.Variant == symbology.VariantSingle {
		rows = append(rows, "ramp: "+s.Single.ColorRamp+" "+rampSwatch(s.Single.ColorRamp))
		rows = append(rows, fmt.Sprintf("range: %.2f – %.2f", ranges[0][0], ranges[0][1]))
	} else {
		names := []string{"R", "G", "B"}
		colors := []lipgloss.Color{"#FF5555", "#55FF55", "#5599FF"}
		for i, r := range ranges {
			label := lipgloss.NewStyle().Foreground(colors[i]).Render(names[i])
			rows = append(rows, fmt.Sprintf("%s band %d: %.2f – %.2f", label, s.Multi.Channels()[i].BandIndex, r[0], r[1]))
		}
	}
	hs := "none"
	if h := catalog.Hillshade(dp, m.project.Flights); h != nil {
		hs = h.DataType
	}
	rows = append(rows, "hillshade: "+hs)
	if len(m.layers) > 0 {
		var ls []string
		for _, l := range m.layers {
			state := "off"
			if l.Checked {
				state = "on"
			}
			mark := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("■")
			ls = append(ls, fmt.Sprintf("%s %s (%s)", mark, l.Name, state))
		}
		rows = append(rows, "layers: "+strings.Join(ls, "  "))
	}
	return strings.Join(rows, "\n")
}

// rampSwatch renders the ramp stops as colored blocks.
func rampSwatch(name string) string {
	stops, ok := symbology.RampStops(name)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, c := range stops {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  "))
	}
	return b.String()
}
