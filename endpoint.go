package sfnet

import (
	"math"

	"github.com/paulmach/orb"
)

type endpointRole uint16

const (
	ENDPOINT_START = endpointRole(iota + 1)
	ENDPOINT_END
)

func (iotaIdx endpointRole) String() string {
	return [...]string{"start", "end"}[iotaIdx-1]
}

// coordKey identifies a coordinate pair by IEEE-754 bit patterns of its components.
// Two points produce the same key only if they are bit-identical: no tolerance, -0 and +0 differ
type coordKey [2]uint64

func newCoordKey(pt orb.Point) coordKey {
	return coordKey{math.Float64bits(pt[0]), math.Float64bits(pt[1])}
}

type endpoint struct {
	edgeIdx int
	role    endpointRole
	key     coordKey
	geom    orb.Point
}

// extractEndpoints returns exactly two endpoints per edge: start then end.
// Interior vertices are ignored
func extractEndpoints(edges []*Edge) []endpoint {
	endpoints := make([]endpoint, 0, 2*len(edges))
	for i, edge := range edges {
		start := edge.Geom[0]
		end := edge.Geom[len(edge.Geom)-1]
		endpoints = append(endpoints,
			endpoint{edgeIdx: i, role: ENDPOINT_START, key: newCoordKey(start), geom: start},
			endpoint{edgeIdx: i, role: ENDPOINT_END, key: newCoordKey(end), geom: end},
		)
	}
	return endpoints
}
