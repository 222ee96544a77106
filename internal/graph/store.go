package graph

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidEdgeReference is returned when an edge names a node that is not
// in the store. It is a diagnostic, the store is left unchanged.
var ErrInvalidEdgeReference = errors.New("edge references a node that is not in the store")

// Store is the bucketed node registry. It is not safe for concurrent
// mutation; once loading is finished the structure is read-only and only
// rank cells change.
type Store struct {
	nodes   []*Node
	buckets [][]int32
	edges   int
	maxID   int64
}

// New creates an empty store with a fixed number of hash buckets.
func New(buckets int) (*Store, error) {
	if buckets < 1 {
		return nil, fmt.Errorf("bucket count must be at least 1, got %d", buckets)
	}
	if buckets > math.MaxInt32 {
		return nil, fmt.Errorf("bucket count %d exceeds the supported maximum", buckets)
	}
	return &Store{
		buckets: make([][]int32, buckets),
		maxID:   -1,
	}, nil
}

// bucketOf maps an ID to its bucket. IDs are expected to be non-negative,
// negative ones are folded into range rather than indexing out of bounds.
func (s *Store) bucketOf(id int64) int {
	b := id % int64(len(s.buckets))
	if b < 0 {
		b += int64(len(s.buckets))
	}
	return int(b)
}

// Insert returns the node for id, creating it with the initial rank and an
// out-degree of zero if it does not exist yet.
func (s *Store) Insert(id int64) *Node {
	if n, ok := s.Lookup(id); ok {
		return n
	}

	idx := int32(len(s.nodes))
	n := newNode(id, idx)
	s.nodes = append(s.nodes, n)

	b := s.bucketOf(id)
	s.buckets[b] = append(s.buckets[b], idx)

	if id > s.maxID {
		s.maxID = id
	}
	return n
}

// Lookup finds the node for id.
func (s *Store) Lookup(id int64) (*Node, bool) {
	chain := s.buckets[s.bucketOf(id)]
	for i := len(chain) - 1; i >= 0; i-- {
		if n := s.nodes[chain[i]]; n.id == id {
			return n, true
		}
	}
	return nil, false
}

// AddEdge records the directed edge from → to. Both nodes must already exist.
func (s *Store) AddEdge(from, to int64) error {
	src, ok := s.Lookup(from)
	if !ok {
		return fmt.Errorf("%w: source %d of edge %d -> %d", ErrInvalidEdgeReference, from, from, to)
	}
	dst, ok := s.Lookup(to)
	if !ok {
		return fmt.Errorf("%w: destination %d of edge %d -> %d", ErrInvalidEdgeReference, to, from, to)
	}
	return s.Link(src, dst)
}

// Link records the directed edge src → dst between two nodes obtained from
// this store. It skips the ID lookups AddEdge performs.
func (s *Store) Link(src, dst *Node) error {
	if !s.owns(src) || !s.owns(dst) {
		return fmt.Errorf("%w: node does not belong to this store", ErrInvalidEdgeReference)
	}
	dst.sources = append(dst.sources, src.index)
	src.outDegree++
	s.edges++
	return nil
}

func (s *Store) owns(n *Node) bool {
	return n != nil && int(n.index) < len(s.nodes) && s.nodes[n.index] == n
}

// BucketCount returns the fixed number of buckets.
func (s *Store) BucketCount() int { return len(s.buckets) }

// BucketNodes returns the node-table indices in bucket b in insertion order.
// The logical head of the chain is the last element. The returned slice must
// not be modified.
func (s *Store) BucketNodes(b int) []int32 { return s.buckets[b] }

// Node returns the node at a node-table index.
func (s *Store) Node(index int32) *Node { return s.nodes[index] }

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// EdgeCount returns the number of edges added, parallel edges included.
func (s *Store) EdgeCount() int { return s.edges }

// MaxID returns the largest node ID seen, or -1 for an empty store.
func (s *Store) MaxID() int64 { return s.maxID }

// IDs returns every node ID in ascending order.
func (s *Store) IDs() []int64 {
	ids := make([]int64, len(s.nodes))
	for i, n := range s.nodes {
		ids[i] = n.id
	}
	slices.Sort(ids)
	return ids
}

// Entry is one node's final rank.
type Entry struct {
	ID   int64
	Rank float64
}

// Snapshot returns the current rank of every node in ascending ID order.
func (s *Store) Snapshot() []Entry {
	entries := make([]Entry, len(s.nodes))
	for i, n := range s.nodes {
		entries[i] = Entry{ID: n.id, Rank: n.Rank()}
	}
	slices.SortFunc(entries, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
	return entries
}
