package sfnet

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned when a line has fewer than two coordinates
	ErrInvalidInput = errors.New("line must contain at least 2 coordinates")
	// ErrEmptyInput is returned when there are no lines to build graph from
	ErrEmptyInput = errors.New("empty collection of lines")
	// ErrNodeNotFound is returned when requested node is not a part of graph
	ErrNodeNotFound = errors.New("node not found")
	// ErrNoPath is returned when target node is unreachable from source node
	ErrNoPath = errors.New("no path between nodes")
	// ErrUnknownCRS is returned for coordinate reference systems which are not handled
	ErrUnknownCRS = errors.New("unknown coordinate reference system")
	// ErrBadHeader is returned when header of CSV lacks geometry column or repeats column names
	ErrBadHeader = errors.New("bad header")
	// ErrUnsupportedFormat is returned for input/output formats which are not handled
	ErrUnsupportedFormat = errors.New("unsupported format")
)
