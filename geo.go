package sfnet

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// earthR is half of equator length in EPSG:3857 units, i.e. X of longitude 180
	earthR = 20037508.34
)

// epsg3857To4326 converts Web-Mercator X/Y to longitude and latitude (degrees)
func epsg3857To4326(x, y float64) (lon, lat float64) {
	lon = x * 180 / earthR
	lat = math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

// epsg4326To3857 converts longitude and latitude (degrees, in that order) to Web-Mercator X/Y.
// Latitudes of poles are not clamped, so they give infinite Y
func epsg4326To3857(lon, lat float64) (x, y float64) {
	x = lon * earthR / 180
	y = math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)) * earthR / math.Pi
	return x, y
}

// pointToMercator expects orb.Point as {lon, lat}
func pointToMercator(pt orb.Point) orb.Point {
	x, y := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{x, y}
}

func pointToGeographic(pt orb.Point) orb.Point {
	lon, lat := epsg3857To4326(pt.X(), pt.Y())
	return orb.Point{lon, lat}
}

// mapLine returns new line with convert applied to every vertex
func mapLine(line orb.LineString, convert func(orb.Point) orb.Point) orb.LineString {
	result := make(orb.LineString, len(line))
	for i := range line {
		result[i] = convert(line[i])
	}
	return result
}

func lineToMercator(line orb.LineString) orb.LineString {
	return mapLine(line, pointToMercator)
}

func lineToGeographic(line orb.LineString) orb.LineString {
	return mapLine(line, pointToGeographic)
}

// toWGS84Point returns point in EPSG:4326. Planar points are returned as is
func toWGS84Point(pt orb.Point, crs CRS) orb.Point {
	if crs == CRS_EPSG3857 {
		return pointToGeographic(pt)
	}
	return pt
}

// toWGS84Line returns line in EPSG:4326. Planar lines are returned as is
func toWGS84Line(line orb.LineString, crs CRS) orb.LineString {
	if crs == CRS_EPSG3857 {
		return lineToGeographic(line)
	}
	return line
}

// Reproject returns new collection of lines converted between EPSG:4326 and EPSG:3857.
// Attributes are shared with source collection
func Reproject(lines []LineFeature, from, to CRS) ([]LineFeature, error) {
	var convert func(orb.LineString) orb.LineString
	switch {
	case from == to:
		convert = copyLineString
	case from == CRS_EPSG4326 && to == CRS_EPSG3857:
		convert = lineToMercator
	case from == CRS_EPSG3857 && to == CRS_EPSG4326:
		convert = lineToGeographic
	default:
		return nil, errors.Wrapf(ErrUnknownCRS, "Can't reproject from '%s' to '%s'", from, to)
	}
	result := make([]LineFeature, len(lines))
	for i := range lines {
		result[i] = LineFeature{
			Geom:       convert(lines[i].Geom),
			Attributes: lines[i].Attributes,
		}
	}
	return result, nil
}
