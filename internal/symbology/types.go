// Package symbology resolves raster display ranges from band statistics and
// a stretch configuration.
package symbology

import (
	"encoding/json"
	"math"
)

// Mode is a stretch policy.
type Mode string

const (
	ModeMinMax      Mode = "minMax"
	ModeUserDefined Mode = "userDefined"
	ModeMeanStdDev  Mode = "meanStdDev"
)

// Next cycles minMax -> userDefined -> meanStdDev -> minMax.
func (m Mode) Next() Mode {
	switch m {
	case ModeMinMax:
		return ModeUserDefined
	case ModeUserDefined:
		return ModeMeanStdDev
	default:
		return ModeMinMax
	}
}

// Variant tags which half of a Symbology is populated.
type Variant string

const (
	VariantSingle Variant = "single"
	VariantMulti  Variant = "multi"
)

// BandStats are the per-band statistics of a raster asset. A statistic
// absent from decoded metadata is NaN.
type BandStats struct {
	Minimum float64 `yaml:"minimum" json:"minimum"`
	Maximum float64 `yaml:"maximum" json:"maximum"`
	Mean    float64 `yaml:"mean" json:"mean"`
	StdDev  float64 `yaml:"stddev" json:"stddev"`
}

type rawBandStats struct {
	Minimum *float64 `yaml:"minimum" json:"minimum"`
	Maximum *float64 `yaml:"maximum" json:"maximum"`
	Mean    *float64 `yaml:"mean" json:"mean"`
	StdDev  *float64 `yaml:"stddev" json:"stddev"`
}

func (r rawBandStats) stats() BandStats {
	return BandStats{
		Minimum: orNaN(r.Minimum),
		Maximum: orNaN(r.Maximum),
		Mean:    orNaN(r.Mean),
		StdDev:  orNaN(r.StdDev),
	}
}

func (s *BandStats) UnmarshalYAML(unmarshal func(any) error) error {
	var raw rawBandStats
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*s = raw.stats()
	return nil
}

func (s *BandStats) UnmarshalJSON(data []byte) error {
	var raw rawBandStats
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = raw.stats()
	return nil
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// RasterBand is one entry of the STAC raster extension.
type RasterBand struct {
	Stats *BandStats `yaml:"stats" json:"stats"`
}

// STACProperties is the subset of a data product's STAC metadata we read.
type STACProperties struct {
	Raster []RasterBand `yaml:"raster" json:"raster"`
}

// Stats returns the statistics of the 1-based band idx, or nil.
func (p STACProperties) Stats(idx int) *BandStats {
	if idx < 1 || idx > len(p.Raster) {
		return nil
	}
	return p.Raster[idx-1].Stats
}

// BandCount is the number of bands in the raster.
func (p STACProperties) BandCount() int { return len(p.Raster) }

// SingleBand configures a one-band raster rendered through a color ramp.
// Nil pointers mean the value was never set.
type SingleBand struct {
	Mode             Mode     `yaml:"mode" json:"mode"`
	ColorRamp        string   `yaml:"colorRamp" json:"colorRamp"`
	Opacity          int      `yaml:"opacity" json:"opacity"`
	MeanStdDevFactor *float64 `yaml:"meanStdDev" json:"meanStdDev"`
	Min              *float64 `yaml:"min" json:"min"`
	Max              *float64 `yaml:"max" json:"max"`
	UserMin          *float64 `yaml:"userMin" json:"userMin"`
	UserMax          *float64 `yaml:"userMax" json:"userMax"`
}

// Channel maps one display color to a source band.
type Channel struct {
	BandIndex int      `yaml:"idx" json:"idx"` // 1-based, 0 when unset
	Min       *float64 `yaml:"min" json:"min"`
	Max       *float64 `yaml:"max" json:"max"`
	UserMin   *float64 `yaml:"userMin" json:"userMin"`
	UserMax   *float64 `yaml:"userMax" json:"userMax"`
}

// Multiband configures an RGB composite.
type Multiband struct {
	Mode             Mode     `yaml:"mode" json:"mode"`
	MeanStdDevFactor *float64 `yaml:"meanStdDev" json:"meanStdDev"`
	Opacity          int      `yaml:"opacity" json:"opacity"`
	Red              Channel  `yaml:"red" json:"red"`
	Green            Channel  `yaml:"green" json:"green"`
	Blue             Channel  `yaml:"blue" json:"blue"`
}

// Channels returns red, green, blue in order.
func (m Multiband) Channels() [3]Channel {
	return [3]Channel{m.Red, m.Green, m.Blue}
}

var channelNames = [3]string{"red", "green", "blue"}

// Symbology is either a SingleBand or a Multiband configuration, selected
// by Variant.
type Symbology struct {
	Variant Variant     `yaml:"variant" json:"variant"`
	Single  *SingleBand `yaml:"single,omitempty" json:"single,omitempty"`
	Multi   *Multiband  `yaml:"multi,omitempty" json:"multi,omitempty"`
}

func Single(s SingleBand) Symbology { return Symbology{Variant: VariantSingle, Single: &s} }

func Multi(m Multiband) Symbology { return Symbology{Variant: VariantMulti, Multi: &m} }

// Valid reports whether the populated half matches Variant.
func (s Symbology) Valid() bool {
	switch s.Variant {
	case VariantSingle:
		return s.Single != nil
	case VariantMulti:
		return s.Multi != nil
	}
	return false
}

func (s Symbology) Mode() Mode {
	switch {
	case s.Variant == VariantSingle && s.Single != nil:
		return s.Single.Mode
	case s.Variant == VariantMulti && s.Multi != nil:
		return s.Multi.Mode
	}
	return ""
}

func (s Symbology) Opacity() int {
	switch {
	case s.Variant == VariantSingle && s.Single != nil:
		return s.Single.Opacity
	case s.Variant == VariantMulti && s.Multi != nil:
		return s.Multi.Opacity
	}
	return 0
}

// Factor returns the mean±k·stddev multiplier, NaN when unset.
func (s Symbology) Factor() float64 {
	var k *float64
	switch {
	case s.Variant == VariantSingle && s.Single != nil:
		k = s.Single.MeanStdDevFactor
	case s.Variant == VariantMulti && s.Multi != nil:
		k = s.Multi.MeanStdDevFactor
	}
	if k == nil {
		return math.NaN()
	}
	return *k
}

// The setters below return an updated copy; the receiver's pointed-to
// configuration is not modified.

func (s Symbology) WithMode(m Mode) Symbology {
	return s.update(func(sb *SingleBand) { sb.Mode = m }, func(mb *Multiband) { mb.Mode = m })
}

func (s Symbology) WithOpacity(v int) Symbology {
	v = ClampOpacity(v)
	return s.update(func(sb *SingleBand) { sb.Opacity = v }, func(mb *Multiband) { mb.Opacity = v })
}

func (s Symbology) WithFactor(k float64) Symbology {
	return s.update(func(sb *SingleBand) { sb.MeanStdDevFactor = &k }, func(mb *Multiband) { mb.MeanStdDevFactor = &k })
}

func (s Symbology) WithColorRamp(name string) Symbology {
	return s.update(func(sb *SingleBand) { sb.ColorRamp = name }, func(*Multiband) {})
}

func (s Symbology) update(single func(*SingleBand), multi func(*Multiband)) Symbology {
	switch {
	case s.Variant == VariantSingle && s.Single != nil:
		c := *s.Single
		single(&c)
		s.Single = &c
	case s.Variant == VariantMulti && s.Multi != nil:
		c := *s.Multi
		multi(&c)
		s.Multi = &c
	}
	return s
}

// ClampOpacity limits v to the 0..100 percent range.
func ClampOpacity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ptr(v float64) *float64 { return &v }

// known is ptr for a statistic, or nil when it is NaN.
func known(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
