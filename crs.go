package sfnet

import (
	"strings"

	"github.com/pkg/errors"
)

// CRS is coordinate reference system shared by every geometry in collection
type CRS uint16

const (
	// CRS_EPSG4326 is WGS84: X is longitude, Y is latitude (degrees)
	CRS_EPSG4326 = CRS(iota + 1)
	// CRS_EPSG3857 is Web-Mercator (meters)
	CRS_EPSG3857
	// CRS_PLANAR is any other projected system. Lengths are evaluated as Euclidean in its units
	CRS_PLANAR
)

func (iotaIdx CRS) String() string {
	if iotaIdx < CRS_EPSG4326 || iotaIdx > CRS_PLANAR {
		return "unknown"
	}
	return [...]string{"EPSG:4326", "EPSG:3857", "planar"}[iotaIdx-1]
}

// ParseCRS parses textual representation of CRS: "4326", "epsg:4326", "wgs84", "3857", "epsg:3857", "planar"
func ParseCRS(s string) (CRS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4326", "epsg:4326", "wgs84":
		return CRS_EPSG4326, nil
	case "3857", "epsg:3857", "webmercator":
		return CRS_EPSG3857, nil
	case "planar":
		return CRS_PLANAR, nil
	default:
		return 0, errors.Wrapf(ErrUnknownCRS, "Can't parse '%s'", s)
	}
}

// IsGeographic returns true if coordinates could be treated as longitude/latitude after reprojection
func (iotaIdx CRS) IsGeographic() bool {
	return iotaIdx == CRS_EPSG4326 || iotaIdx == CRS_EPSG3857
}
