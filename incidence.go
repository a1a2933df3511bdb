package sfnet

// NodeIncidence lists edges incident to a node.
// For undirected graphs edge direction is still the one of original geometry
type NodeIncidence struct {
	Outgoing []EdgeID
	Incoming []EdgeID
}

// Incidence returns incidence lists for every node. Self-loop is listed both as outgoing and incoming
func (graph *Graph) Incidence() map[NodeID]*NodeIncidence {
	incidence := make(map[NodeID]*NodeIncidence, len(graph.Nodes))
	for _, node := range graph.Nodes {
		incidence[node.ID] = &NodeIncidence{
			Outgoing: make([]EdgeID, 0),
			Incoming: make([]EdgeID, 0),
		}
	}
	for _, edge := range graph.Edges {
		incidence[edge.SourceNodeID].Outgoing = append(incidence[edge.SourceNodeID].Outgoing, edge.ID)
		incidence[edge.TargetNodeID].Incoming = append(incidence[edge.TargetNodeID].Incoming, edge.ID)
	}
	return incidence
}

// Degree returns number of edge endpoints at the given node. Self-loop counts twice
func (graph *Graph) Degree(id NodeID) (int, bool) {
	if _, ok := graph.Node(id); !ok {
		return 0, false
	}
	degree := 0
	for _, edge := range graph.Edges {
		if edge.SourceNodeID == id {
			degree++
		}
		if edge.TargetNodeID == id {
			degree++
		}
	}
	return degree, true
}

// Neighbours returns nodes reachable from the given node by one edge, in order of edges.
// Each neighbour is listed once. Direction of edges is respected for directed graphs only
func (graph *Graph) Neighbours(id NodeID) ([]NodeID, bool) {
	if _, ok := graph.Node(id); !ok {
		return nil, false
	}
	neighbours := make([]NodeID, 0)
	seen := make(map[NodeID]struct{})
	add := func(nodeID NodeID) {
		if _, ok := seen[nodeID]; ok {
			return
		}
		seen[nodeID] = struct{}{}
		neighbours = append(neighbours, nodeID)
	}
	for _, edge := range graph.Edges {
		if edge.SourceNodeID == id {
			add(edge.TargetNodeID)
		}
		if !graph.Directed && edge.TargetNodeID == id {
			add(edge.SourceNodeID)
		}
	}
	return neighbours, true
}
