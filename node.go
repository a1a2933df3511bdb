package sfnet

import (
	"fmt"

	"github.com/paulmach/orb"
)

type NodeID int64

// Node is a distinct endpoint location shared by one or more edges
type Node struct {
	ID   NodeID
	Geom orb.Point
}

// String returns pretty printed value for Node
func (node *Node) String() string {
	return fmt.Sprintf("Node %d | X: %f | Y: %f", node.ID, node.Geom.X(), node.Geom.Y())
}
