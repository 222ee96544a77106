package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/burstrank/internal/graph"
)

// Edge is a directed source → destination pair.
type Edge struct {
	From, To int64
}

// BuildStore creates a store with the given bucket count and adds every edge
// the same way the edge-list loader does.
func BuildStore(t *testing.T, buckets int, edges ...Edge) *graph.Store {
	t.Helper()

	s, err := graph.New(buckets)
	require.NoError(t, err)
	for _, e := range edges {
		src := s.Insert(e.From)
		dst := s.Insert(e.To)
		require.NoError(t, s.Link(src, dst))
	}
	return s
}

// Ranks returns the store's ranks keyed by node ID.
func Ranks(s *graph.Store) map[int64]float64 {
	out := make(map[int64]float64, s.Len())
	for _, e := range s.Snapshot() {
		out[e.ID] = e.Rank
	}
	return out
}

// Ring returns the edges of a directed ring 0 → 1 → … → n-1 → 0 plus, for
// every node i, chords i → i+k for each k in skips.
func Ring(n int, skips ...int) []Edge {
	edges := make([]Edge, 0, n*(1+len(skips)))
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{From: int64(i), To: int64((i + 1) % n)})
		for _, k := range skips {
			edges = append(edges, Edge{From: int64(i), To: int64((i + k) % n)})
		}
	}
	return edges
}
