package geom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for files Load cannot decode.
var ErrUnsupported = errors.New("unsupported file")

// Load reads a basemap file. Supported: .geojson, .json, .wkt, .csv, .kml.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json", ".wkt", ".csv", ".kml":
	default:
		return Data{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	var d Data
	switch ext {
	case ".wkt":
		d, err = ParseWKT(string(b))
	case ".csv":
		d, err = ParseCSV(bytes.NewReader(b))
	case ".kml":
		d, err = ParseKML(bytes.NewReader(b))
	default:
		d, err = ParseGeoJSON(b)
	}
	if err != nil {
		return Data{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return d, nil
}
