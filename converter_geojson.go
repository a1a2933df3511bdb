package sfnet

import (
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// GeomFormat is a text representation of geometry in tabular output
type GeomFormat uint16

const (
	GEOM_WKT = GeomFormat(iota + 1)
	GEOM_GEOJSON
)

func (iotaIdx GeomFormat) String() string {
	if iotaIdx < GEOM_WKT || iotaIdx > GEOM_GEOJSON {
		return "unknown"
	}
	return [...]string{"wkt", "geojson"}[iotaIdx-1]
}

// ParseGeomFormat parses flag value: "wkt" or "geojson"
func ParseGeomFormat(s string) (GeomFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wkt":
		return GEOM_WKT, nil
	case "geojson":
		return GEOM_GEOJSON, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "Geometry format '%s'", s)
	}
}

func pointToCoordinates(pt orb.Point) []float64 {
	return []float64{pt.X(), pt.Y()}
}

func lineToCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = pointToCoordinates(line[i])
	}
	return pts2d
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) (string, error) {
	b, err := geojson.NewLineStringGeometry(lineToCoordinates(line)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert line to GeoJSON")
	}
	return string(b), nil
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) (string, error) {
	b, err := geojson.NewPointGeometry(pointToCoordinates(pt)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert point to GeoJSON")
	}
	return string(b), nil
}

func prepareLinestring(line orb.LineString, format GeomFormat) (string, error) {
	if format == GEOM_GEOJSON {
		return PrepareGeoJSONLinestring(line)
	}
	return PrepareWKTLinestring(line), nil
}

func preparePoint(pt orb.Point, format GeomFormat) (string, error) {
	if format == GEOM_GEOJSON {
		return PrepareGeoJSONPoint(pt)
	}
	return PrepareWKTPoint(pt), nil
}
