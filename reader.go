package sfnet

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ReadLinesFile reads lines from file guessing its format by extension:
// '.geojson' and '.json' for GeoJSON, '.osm', '.xml' and '.pbf' for OSM data, '.csv' for CSV with WKT geometry column named 'geom'.
// Configuration is used for OSM data only
func ReadLinesFile(fname string, cfg *OsmConfiguration, verbose bool) ([]LineFeature, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	switch ext {
	case ".geojson", ".json":
		return ReadGeoJSONFile(fname, verbose)
	case ".osm", ".xml", ".pbf":
		return ReadOSMFile(fname, cfg, verbose)
	case ".csv":
		return ReadWKTCSVFile(fname, DEFAULT_GEOM_COLUMN, verbose)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "File extension '%s' for file '%s' is not handled yet", ext, fname)
	}
}
