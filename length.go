package sfnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// lineLength returns length of line: meters for EPSG:4326 and EPSG:3857, units of CRS for planar ones
func lineLength(line orb.LineString, crs CRS) float64 {
	switch crs {
	case CRS_EPSG4326:
		return geo.LengthHaversign(line)
	case CRS_EPSG3857:
		// Mercator distorts distances, so evaluate them on the sphere
		return geo.LengthHaversign(lineToGeographic(line))
	default:
		return planar.Length(line)
	}
}

// EdgeLength returns length of edge geometry. See lineLength for units
func (graph *Graph) EdgeLength(id EdgeID) (float64, bool) {
	edge, ok := graph.Edge(id)
	if !ok {
		return 0, false
	}
	return lineLength(edge.Geom, graph.CRS), true
}

// EdgeLengths returns lengths of every edge in the same order as graph.Edges
func (graph *Graph) EdgeLengths() []float64 {
	lengths := make([]float64, len(graph.Edges))
	for i, edge := range graph.Edges {
		lengths[i] = lineLength(edge.Geom, graph.CRS)
	}
	return lengths
}
