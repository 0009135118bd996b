package symbology

import (
	"log/slog"
	"math"
)

// Range is a display range [min, max].
type Range [2]float64

// DefaultRange is used whenever a stretch cannot be computed.
var DefaultRange = Range{0, 255}

func defaultTriple() [3]Range { return [3]Range{DefaultRange, DefaultRange, DefaultRange} }

// Resolver turns a symbology configuration plus band statistics into display
// ranges. Missing inputs never fail: the resolver logs a warning and returns
// DefaultRange.
type Resolver struct {
	log *slog.Logger
}

func NewResolver(log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{log: log}
}

func (r *Resolver) fallback(variant Variant, mode Mode, reason string, attrs ...any) {
	args := append([]any{
		slog.String("variant", string(variant)),
		slog.String("mode", string(mode)),
		slog.String("reason", reason),
	}, attrs...)
	r.log.Warn("falling back to default display range", args...)
}

// SingleBand resolves the range of a one-band raster. meanStdDev reads the
// statistics of band 1.
func (r *Resolver) SingleBand(props STACProperties, s SingleBand) Range {
	switch s.Mode {
	case ModeMinMax:
		if s.Min == nil || s.Max == nil {
			r.fallback(VariantSingle, s.Mode, "min/max missing")
			return DefaultRange
		}
		return Range{*s.Min, *s.Max}
	case ModeUserDefined:
		if s.UserMin == nil || s.UserMax == nil {
			r.fallback(VariantSingle, s.Mode, "user min/max missing")
			return DefaultRange
		}
		return Range{*s.UserMin, *s.UserMax}
	case ModeMeanStdDev:
		st := props.Stats(1)
		if !usable(st) {
			r.fallback(VariantSingle, s.Mode, "band statistics missing", slog.Int("band", 1))
			return DefaultRange
		}
		if s.MeanStdDevFactor == nil {
			r.fallback(VariantSingle, s.Mode, "stddev factor missing")
			return DefaultRange
		}
		return meanStdDev(st, *s.MeanStdDevFactor)
	default:
		r.fallback(VariantSingle, s.Mode, "unexpected mode")
		return DefaultRange
	}
}

// Multiband resolves red, green and blue ranges. Every channel must be
// resolvable or all three fall back together.
func (r *Resolver) Multiband(props STACProperties, m Multiband) [3]Range {
	chans := m.Channels()
	var out [3]Range
	switch m.Mode {
	case ModeMinMax:
		for i, c := range chans {
			if c.Min == nil || c.Max == nil {
				r.fallback(VariantMulti, m.Mode, "min/max missing", slog.String("channel", channelNames[i]))
				return defaultTriple()
			}
			out[i] = Range{*c.Min, *c.Max}
		}
		return out
	case ModeUserDefined:
		for i, c := range chans {
			if c.UserMin == nil || c.UserMax == nil {
				r.fallback(VariantMulti, m.Mode, "user min/max missing", slog.String("channel", channelNames[i]))
				return defaultTriple()
			}
			out[i] = Range{*c.UserMin, *c.UserMax}
		}
		return out
	case ModeMeanStdDev:
		for i, c := range chans {
			if c.BandIndex < 1 {
				r.fallback(VariantMulti, m.Mode, "band index missing", slog.String("channel", channelNames[i]))
				return defaultTriple()
			}
		}
		var stats [3]*BandStats
		for i, c := range chans {
			stats[i] = props.Stats(c.BandIndex)
			if !usable(stats[i]) {
				r.fallback(VariantMulti, m.Mode, "band statistics missing",
					slog.String("channel", channelNames[i]), slog.Int("band", c.BandIndex))
				return defaultTriple()
			}
		}
		if m.MeanStdDevFactor == nil {
			r.fallback(VariantMulti, m.Mode, "stddev factor missing")
			return defaultTriple()
		}
		for i, st := range stats {
			out[i] = meanStdDev(st, *m.MeanStdDevFactor)
		}
		return out
	default:
		r.fallback(VariantMulti, m.Mode, "unexpected mode")
		return defaultTriple()
	}
}

// Resolve dispatches on the variant and returns one range per rendered
// channel: one for single-band, three for multiband.
func (r *Resolver) Resolve(props STACProperties, s Symbology) []Range {
	switch {
	case s.Variant == VariantSingle && s.Single != nil:
		return []Range{r.SingleBand(props, *s.Single)}
	case s.Variant == VariantMulti && s.Multi != nil:
		t := r.Multiband(props, *s.Multi)
		return t[:]
	}
	r.fallback(s.Variant, "", "symbology not populated")
	if props.BandCount() == 1 {
		return []Range{DefaultRange}
	}
	t := defaultTriple()
	return t[:]
}

// usable reports whether st carries both a mean and a standard deviation.
func usable(st *BandStats) bool {
	return st != nil && !math.IsNaN(st.Mean) && !math.IsNaN(st.StdDev)
}

func meanStdDev(st *BandStats, k float64) Range {
	d := st.StdDev * k
	return Range{st.Mean - d, st.Mean + d}
}
