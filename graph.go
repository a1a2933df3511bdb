package sfnet

import (
	"fmt"
)

// Graph is a set of nodes and edges built from line geometries
//
// Nodes and Edges are ordered by their identifiers. Graph must not be modified after it has been built
type Graph struct {
	Nodes    []*Node
	Edges    []*Edge
	Directed bool
	CRS      CRS

	firstNodeID NodeID
	firstEdgeID EdgeID
}

// Node returns node by its identifier
func (graph *Graph) Node(id NodeID) (*Node, bool) {
	idx := int64(id - graph.firstNodeID)
	if idx < 0 || idx >= int64(len(graph.Nodes)) {
		return nil, false
	}
	return graph.Nodes[idx], true
}

// Edge returns edge by its identifier
func (graph *Graph) Edge(id EdgeID) (*Edge, bool) {
	idx := int64(id - graph.firstEdgeID)
	if idx < 0 || idx >= int64(len(graph.Edges)) {
		return nil, false
	}
	return graph.Edges[idx], true
}

func (graph *Graph) String() string {
	return fmt.Sprintf(`
Graph:
	directed: %t
	crs: '%s'
	nodes: %d
	edges: %d
	`,
		graph.Directed,
		graph.CRS,
		len(graph.Nodes),
		len(graph.Edges),
	)
}
