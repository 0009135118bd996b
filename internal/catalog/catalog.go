// Package catalog models projects, flights and their data products, and
// loads them from YAML catalog files.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"

	"flightmap/internal/symbology"
)

// ErrNoStats is returned when a data product carries no STAC raster metadata.
var ErrNoStats = xerrors.Message("data product has no raster statistics")

type DataProduct struct {
	ID               uuid.UUID                 `yaml:"id"`
	FlightID         uuid.UUID                 `yaml:"flight_id"`
	DataType         string                    `yaml:"data_type"`
	Filepath         string                    `yaml:"filepath"`
	OriginalFilename string                    `yaml:"original_filename"`
	STACProperties   *symbology.STACProperties `yaml:"stac_properties"`
	UserStyle        *symbology.Symbology      `yaml:"user_style"`
	IsActive         bool                      `yaml:"is_active"`
}

type Flight struct {
	ID              uuid.UUID     `yaml:"id"`
	Name            string        `yaml:"name"`
	AcquisitionDate string        `yaml:"acquisition_date"`
	Sensor          string        `yaml:"sensor"`
	Platform        string        `yaml:"platform"`
	DataProducts    []DataProduct `yaml:"data_products"`
}

type Project struct {
	ID      uuid.UUID     `yaml:"id"`
	Title   string        `yaml:"title"`
	Flights []Flight      `yaml:"flights"`
	Layers  []LayerRecord `yaml:"layers"`

	// Dir is the directory of the catalog file; relative layer URLs resolve
	// against it.
	Dir string `yaml:"-"`
}

// Load reads a YAML catalog. Missing ids are generated and every data
// product inherits its flight's id.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.New(err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, xerrors.New(fmt.Sprintf("catalog %s", filepath.Base(path)), err)
	}
	p.Dir = filepath.Dir(path)
	return p, nil
}

func Decode(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, xerrors.New(err)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Flights {
		f := &p.Flights[i]
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		for j := range f.DataProducts {
			dp := &f.DataProducts[j]
			if dp.ID == uuid.Nil {
				dp.ID = uuid.New()
			}
			dp.FlightID = f.ID
		}
	}
	for i := range p.Layers {
		if p.Layers[i].LayerID == uuid.Nil {
			p.Layers[i].LayerID = uuid.New()
		}
	}
	return &p, nil
}

// Products returns every data product of the project in flight order.
func (p *Project) Products() []DataProduct {
	var out []DataProduct
	for _, f := range p.Flights {
		out = append(out, f.DataProducts...)
	}
	return out
}

// Flight returns the flight with id, or nil.
func (p *Project) Flight(id uuid.UUID) *Flight {
	for i := range p.Flights {
		if p.Flights[i].ID == id {
			return &p.Flights[i]
		}
	}
	return nil
}

// Style returns the product's saved user style when it is well formed,
// otherwise a default derived from its band statistics.
func Style(dp DataProduct, d symbology.Defaults) (symbology.Symbology, error) {
	if dp.UserStyle != nil && dp.UserStyle.Valid() {
		return *dp.UserStyle, nil
	}
	if dp.STACProperties == nil {
		return symbology.Symbology{}, xerrors.New(dp.DataType, ErrNoStats)
	}
	return symbology.DefaultStyle(*dp.STACProperties, d)
}
