package sfnet

import (
	"github.com/paulmach/orb"
)

type EdgeID int64

// Edge corresponds to exactly one input LineFeature
type Edge struct {
	ID           EdgeID
	SourceNodeID NodeID
	TargetNodeID NodeID
	Geom         orb.LineString
	Attributes   map[string]interface{}
}

// IsLoop returns true when edge starts and ends in the same node
func (edge *Edge) IsLoop() bool {
	return edge.SourceNodeID == edge.TargetNodeID
}

// Attribute returns value of the given attribute and whether it has been set
func (edge *Edge) Attribute(key string) (interface{}, bool) {
	value, ok := edge.Attributes[key]
	return value, ok
}
