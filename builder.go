package sfnet

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	DEFAULT_FIRST_NODE = 1
	DEFAULT_FIRST_EDGE = 1
)

// Builder converts line geometries into graph.
// Builder holds configuration only, so the same Builder could be used for several inputs
type Builder struct {
	firstNodeID NodeID
	firstEdgeID EdgeID
	crs         CRS
	verbose     bool
}

func (builder *Builder) String() string {
	return fmt.Sprintf(`
Graph builder parameters:
	first_node_id: %d
	first_edge_id: %d
	crs: '%s'
	verbose: %t
	`,
		builder.firstNodeID,
		builder.firstEdgeID,
		builder.crs,
		builder.verbose,
	)
}

func NewBuilder(options ...func(*Builder)) *Builder {
	builder := &Builder{
		firstNodeID: DEFAULT_FIRST_NODE,
		firstEdgeID: DEFAULT_FIRST_EDGE,
		crs:         CRS_EPSG4326,
		verbose:     false,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithFirstNodeID(firstNodeID NodeID) func(*Builder) {
	return func(builder *Builder) {
		builder.firstNodeID = firstNodeID
	}
}

func WithFirstEdgeID(firstEdgeID EdgeID) func(*Builder) {
	return func(builder *Builder) {
		builder.firstEdgeID = firstEdgeID
	}
}

func WithCRS(crs CRS) func(*Builder) {
	return func(builder *Builder) {
		builder.crs = crs
	}
}

func WithVerbose(verbose bool) func(*Builder) {
	return func(builder *Builder) {
		builder.verbose = verbose
	}
}

// Build creates graph from given lines.
//
// Edge identifiers follow input order. Node identifiers follow order of first appearance of
// each distinct endpoint coordinate: edges are scanned in ascending order, start endpoint before end one.
// Endpoints are merged only when their coordinates are bit-identical.
//
// Returns ErrEmptyInput when there are no lines and ErrInvalidInput when any line has less than 2 coordinates.
// Input is never modified
func (builder *Builder) Build(lines []LineFeature, directed bool) (*Graph, error) {
	if builder.verbose {
		fmt.Printf("Building graph from %d lines...", len(lines))
	}
	st := time.Now()
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	for i := range lines {
		if len(lines[i].Geom) < 2 {
			return nil, errors.Wrapf(ErrInvalidInput, "Line #%d has %d coordinate(s)", i, len(lines[i].Geom))
		}
	}

	edges := builder.prepareEdges(lines)
	endpoints := extractEndpoints(edges)
	nodes := builder.prepareNodes(edges, endpoints)

	if builder.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return &Graph{
		Nodes:       nodes,
		Edges:       edges,
		Directed:    directed,
		CRS:         builder.crs,
		firstNodeID: builder.firstNodeID,
		firstEdgeID: builder.firstEdgeID,
	}, nil
}

// prepareEdges assigns identifiers in input order. Geometry and attributes are copied
func (builder *Builder) prepareEdges(lines []LineFeature) []*Edge {
	edges := make([]*Edge, len(lines))
	for i := range lines {
		edges[i] = &Edge{
			ID:         builder.firstEdgeID + EdgeID(i),
			Geom:       copyLineString(lines[i].Geom),
			Attributes: copyAttributes(lines[i].Attributes),
		}
	}
	return edges
}

// prepareNodes deduplicates endpoints into nodes and attaches source/target nodes to edges
func (builder *Builder) prepareNodes(edges []*Edge, endpoints []endpoint) []*Node {
	nodes := make([]*Node, 0, len(endpoints))
	seen := make(map[coordKey]NodeID, len(endpoints))
	for _, pt := range endpoints {
		nodeID, ok := seen[pt.key]
		if !ok {
			nodeID = builder.firstNodeID + NodeID(len(nodes))
			seen[pt.key] = nodeID
			nodes = append(nodes, &Node{ID: nodeID, Geom: pt.geom})
		}
		switch pt.role {
		case ENDPOINT_START:
			edges[pt.edgeIdx].SourceNodeID = nodeID
		case ENDPOINT_END:
			edges[pt.edgeIdx].TargetNodeID = nodeID
		default:
			panic("Should not happen!")
		}
	}
	return nodes
}

// BuildGraph creates graph from given lines. See Builder.Build
func BuildGraph(lines []LineFeature, directed bool, options ...func(*Builder)) (*Graph, error) {
	return NewBuilder(options...).Build(lines, directed)
}

// LinesToGraph creates graph from given lines with default builder parameters
func LinesToGraph(lines []LineFeature, directed bool) (*Graph, error) {
	return NewBuilder().Build(lines, directed)
}
