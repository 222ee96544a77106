package graph

import (
	"math"
	"sync/atomic"
)

// InitialRank is the rank every node starts with.
const InitialRank = 1.0

// Node is a single vertex in the store.
type Node struct {
	id        int64
	index     int32
	outDegree uint32
	sources   []int32
	rank      atomic.Uint64
}

func newNode(id int64, index int32) *Node {
	n := &Node{id: id, index: index}
	n.SetRank(InitialRank)
	return n
}

// ID returns the externally assigned node identifier.
func (n *Node) ID() int64 { return n.id }

// Index returns the node's position in the store's node table.
func (n *Node) Index() int { return int(n.index) }

// OutDegree returns the number of outgoing edges recorded for the node.
func (n *Node) OutDegree() uint32 { return n.outDegree }

// InDegree returns the number of incoming edges, parallel edges included.
func (n *Node) InDegree() int { return len(n.sources) }

// Sources returns the node-table indices of the node's incoming sources in
// insertion order. The logical head of the list is the last element.
// The returned slice must not be modified.
func (n *Node) Sources() []int32 { return n.sources }

// Rank atomically loads the node's current rank.
func (n *Node) Rank() float64 {
	return math.Float64frombits(n.rank.Load())
}

// SetRank atomically stores a new rank.
func (n *Node) SetRank(r float64) {
	n.rank.Store(math.Float64bits(r))
}
