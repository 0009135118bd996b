package catalog

import (
	"path/filepath"

	"github.com/google/uuid"
)

// LayerRecord is a project vector layer as delivered by the API.
type LayerRecord struct {
	LayerID   uuid.UUID `yaml:"layer_id"`
	LayerName string    `yaml:"layer_name"`
	GeomType  string    `yaml:"geom_type"`
	SignedURL string    `yaml:"signed_url"`
}

// Layer is a vector layer as displayed: unchecked, full opacity, in the
// default layer color until the user changes it.
type Layer struct {
	ID        uuid.UUID
	Name      string
	Checked   bool
	Type      string
	Color     string
	Opacity   int
	SignedURL string
}

func LayersFromAPI(records []LayerRecord, color string) []Layer {
	out := make([]Layer, 0, len(records))
	for _, r := range records {
		out = append(out, Layer{
			ID:        r.LayerID,
			Name:      r.LayerName,
			Checked:   false,
			Type:      r.GeomType,
			Color:     color,
			Opacity:   100,
			SignedURL: r.SignedURL,
		})
	}
	return out
}

// LayerPath resolves a layer URL relative to the catalog directory.
func (p *Project) LayerPath(l Layer) string {
	if filepath.IsAbs(l.SignedURL) || p.Dir == "" {
		return l.SignedURL
	}
	return filepath.Join(p.Dir, l.SignedURL)
}
