package sfnet

import (
	"fmt"
	"math"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// Path is a result of shortest path query
type Path struct {
	Cost  float64
	Nodes []NodeID
	Edges []EdgeID
}

type nodesPair struct {
	from NodeID
	to   NodeID
}

type pairEdge struct {
	id   EdgeID
	cost float64
}

// Router evaluates shortest paths over graph using contraction hierarchies. Edge lengths are used as weights
type Router struct {
	graph    *Graph
	chGraph  ch.Graph
	cheapest map[nodesPair]pairEdge
}

// NewRouter prepares contraction hierarchies for given graph.
// Undirected edges are traversable both ways, parallel edges are reduced to the cheapest one, self-loops are ignored
func NewRouter(graph *Graph, verbose bool) (*Router, error) {
	if verbose {
		fmt.Printf("Preparing router...")
	}
	st := time.Now()
	router := &Router{
		graph:    graph,
		chGraph:  ch.Graph{},
		cheapest: make(map[nodesPair]pairEdge),
	}
	for _, node := range graph.Nodes {
		err := router.chGraph.CreateVertex(int64(node.ID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create vertex %d", node.ID)
		}
	}
	lengths := graph.EdgeLengths()
	for i, edge := range graph.Edges {
		if edge.IsLoop() {
			continue
		}
		router.addCandidate(edge.SourceNodeID, edge.TargetNodeID, edge.ID, lengths[i])
		if !graph.Directed {
			router.addCandidate(edge.TargetNodeID, edge.SourceNodeID, edge.ID, lengths[i])
		}
	}
	// Walk edges again to keep insertion order deterministic
	added := make(map[nodesPair]struct{}, len(router.cheapest))
	for _, edge := range graph.Edges {
		pairs := []nodesPair{{from: edge.SourceNodeID, to: edge.TargetNodeID}}
		if !graph.Directed {
			pairs = append(pairs, nodesPair{from: edge.TargetNodeID, to: edge.SourceNodeID})
		}
		for _, pair := range pairs {
			best, ok := router.cheapest[pair]
			if !ok {
				continue
			}
			if _, ok := added[pair]; ok {
				continue
			}
			added[pair] = struct{}{}
			err := router.chGraph.AddEdge(int64(pair.from), int64(pair.to), best.cost)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge %d (%d -> %d)", best.id, pair.from, pair.to)
			}
		}
	}
	router.chGraph.PrepareContractionHierarchies()
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return router, nil
}

func (router *Router) addCandidate(from, to NodeID, id EdgeID, cost float64) {
	pair := nodesPair{from: from, to: to}
	if current, ok := router.cheapest[pair]; ok && current.cost <= cost {
		return
	}
	router.cheapest[pair] = pairEdge{id: id, cost: cost}
}

// ShortestPath returns the cheapest path between two nodes.
// Returns ErrNodeNotFound for unknown nodes and ErrNoPath if target is unreachable
func (router *Router) ShortestPath(source, target NodeID) (Path, error) {
	if _, ok := router.graph.Node(source); !ok {
		return Path{}, errors.Wrapf(ErrNodeNotFound, "Source %d", source)
	}
	if _, ok := router.graph.Node(target); !ok {
		return Path{}, errors.Wrapf(ErrNodeNotFound, "Target %d", target)
	}
	if source == target {
		return Path{Cost: 0, Nodes: []NodeID{source}, Edges: []EdgeID{}}, nil
	}
	cost, vertices := router.chGraph.ShortestPath(int64(source), int64(target))
	if len(vertices) == 0 || cost < 0 || math.IsInf(cost, 1) {
		return Path{}, errors.Wrapf(ErrNoPath, "From %d to %d", source, target)
	}
	path := Path{
		Cost:  cost,
		Nodes: make([]NodeID, len(vertices)),
		Edges: make([]EdgeID, 0, len(vertices)-1),
	}
	for i, vertex := range vertices {
		path.Nodes[i] = NodeID(vertex)
		if i == 0 {
			continue
		}
		best, ok := router.cheapest[nodesPair{from: path.Nodes[i-1], to: path.Nodes[i]}]
		if !ok {
			return Path{}, errors.Errorf("No edge between nodes %d and %d", path.Nodes[i-1], path.Nodes[i])
		}
		path.Edges = append(path.Edges, best.id)
	}
	return path, nil
}
