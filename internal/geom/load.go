package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdobak/go-xerrors"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = xerrors.Message("unsupported file format")

// Load picks a loader by file extension.
func Load(path string) ([]Feature, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, xerrors.New(err)
		}
		return ParseWKT(string(data))
	default:
		return nil, xerrors.New(fmt.Sprintf("%q", ext), ErrUnsupportedFormat)
	}
}

// IsVectorFile reports whether Load understands the file's extension.
func IsVectorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt":
		return true
	}
	return false
}
