package symbology

import (
	"fmt"

	"github.com/mdobak/go-xerrors"
)

// ErrMissingStats is returned when a default style cannot be seeded because
// a band has no statistics.
var ErrMissingStats = xerrors.Message("band statistics missing")

// ErrBandIndex is returned by Multiband.Validate for channels that do not
// address a band of the raster.
var ErrBandIndex = xerrors.Message("band index out of range")

// Defaults seed freshly derived symbologies.
type Defaults struct {
	ColorRamp        string
	MeanStdDevFactor float64
}

// StandardDefaults are used when no configuration overrides them.
var StandardDefaults = Defaults{ColorRamp: "rainbow", MeanStdDevFactor: 2}

// IsSingleBand reports whether the raster has exactly one band.
func IsSingleBand(props STACProperties) bool {
	return props.BandCount() == 1
}

// NewSingleBand builds the initial style for a one-band raster: minMax mode,
// full opacity, every range seeded from band 1's statistics. Missing
// statistics leave the corresponding range unset.
func NewSingleBand(props STACProperties, d Defaults) (SingleBand, error) {
	st := props.Stats(1)
	if st == nil {
		return SingleBand{}, xerrors.New("band 1", ErrMissingStats)
	}
	return SingleBand{
		Mode:             ModeMinMax,
		ColorRamp:        d.ColorRamp,
		Opacity:          100,
		MeanStdDevFactor: ptr(d.MeanStdDevFactor),
		Min:              known(st.Minimum),
		Max:              known(st.Maximum),
		UserMin:          known(st.Minimum),
		UserMax:          known(st.Maximum),
	}, nil
}

// NewMultiband builds the initial RGB style, mapping bands 1, 2, 3 to red,
// green, blue.
func NewMultiband(props STACProperties, d Defaults) (Multiband, error) {
	var chans [3]Channel
	for i := range chans {
		idx := i + 1
		st := props.Stats(idx)
		if st == nil {
			return Multiband{}, xerrors.New(fmt.Sprintf("band %d", idx), ErrMissingStats)
		}
		chans[i] = Channel{
			BandIndex: idx,
			Min:       known(st.Minimum),
			Max:       known(st.Maximum),
			UserMin:   known(st.Minimum),
			UserMax:   known(st.Maximum),
		}
	}
	return Multiband{
		Mode:             ModeMinMax,
		MeanStdDevFactor: ptr(d.MeanStdDevFactor),
		Opacity:          100,
		Red:              chans[0],
		Green:            chans[1],
		Blue:             chans[2],
	}, nil
}

// DefaultStyle picks the single-band or multiband default by band count.
func DefaultStyle(props STACProperties, d Defaults) (Symbology, error) {
	if IsSingleBand(props) {
		s, err := NewSingleBand(props, d)
		if err != nil {
			return Symbology{}, err
		}
		return Single(s), nil
	}
	m, err := NewMultiband(props, d)
	if err != nil {
		return Symbology{}, err
	}
	return Multi(m), nil
}

// Validate checks that every channel addresses one of bandCount bands.
func (m Multiband) Validate(bandCount int) error {
	for i, c := range m.Channels() {
		if c.BandIndex < 1 || c.BandIndex > bandCount {
			return xerrors.New(fmt.Sprintf("%s channel: band %d of %d", channelNames[i], c.BandIndex, bandCount), ErrBandIndex)
		}
	}
	return nil
}
