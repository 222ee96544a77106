package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, buckets int) *Store {
	t.Helper()
	s, err := New(buckets)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsNonPositiveBuckets(t *testing.T) {
	for _, b := range []int{0, -1} {
		_, err := New(b)
		assert.Error(t, err, "buckets=%d", b)
	}
}

func TestInsert_CreatesNodeWithDefaults(t *testing.T) {
	s := newTestStore(t, 7)

	n := s.Insert(42)

	assert.Equal(t, int64(42), n.ID())
	assert.Equal(t, InitialRank, n.Rank())
	assert.Zero(t, n.OutDegree())
	assert.Zero(t, n.InDegree())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int64(42), s.MaxID())
}

func TestInsert_ReturnsExistingNode(t *testing.T) {
	s := newTestStore(t, 7)

	first := s.Insert(3)
	first.SetRank(0.5)
	second := s.Insert(3)

	require.Same(t, first, second)
	assert.Equal(t, 0.5, second.Rank())
	assert.Equal(t, 1, s.Len())
}

func TestInsert_CollidingIDsShareBucket(t *testing.T) {
	s := newTestStore(t, 5)

	a := s.Insert(2)
	b := s.Insert(7)
	c := s.Insert(12)

	chain := s.BucketNodes(2)
	require.Len(t, chain, 3)
	// Head of the chain is the most recent insert.
	assert.Equal(t, []int32{int32(a.Index()), int32(b.Index()), int32(c.Index())}, chain)

	for _, id := range []int64{2, 7, 12} {
		n, ok := s.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, id, n.ID())
	}
}

func TestLookup_Absent(t *testing.T) {
	s := newTestStore(t, 5)
	s.Insert(1)

	n, ok := s.Lookup(6)
	assert.False(t, ok)
	assert.Nil(t, n)
}

func TestAddEdge_UpdatesDegreesAndSources(t *testing.T) {
	s := newTestStore(t, 11)
	src := s.Insert(1)
	dst := s.Insert(2)

	require.NoError(t, s.AddEdge(1, 2))
	require.NoError(t, s.AddEdge(1, 2))

	assert.Equal(t, uint32(2), src.OutDegree())
	assert.Equal(t, []int32{int32(src.Index()), int32(src.Index())}, dst.Sources())
	assert.Zero(t, src.InDegree())
	assert.Equal(t, 2, s.EdgeCount())
}

func TestAddEdge_MissingNodeIsNoOp(t *testing.T) {
	s := newTestStore(t, 11)
	src := s.Insert(1)

	err := s.AddEdge(1, 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEdgeReference))

	err = s.AddEdge(99, 1)
	require.ErrorIs(t, err, ErrInvalidEdgeReference)

	assert.Zero(t, src.OutDegree())
	assert.Zero(t, src.InDegree())
	assert.Zero(t, s.EdgeCount())
}

func TestLink_RejectsForeignNode(t *testing.T) {
	s := newTestStore(t, 3)
	other := newTestStore(t, 3)

	local := s.Insert(1)
	foreign := other.Insert(1)

	require.ErrorIs(t, s.Link(foreign, local), ErrInvalidEdgeReference)
	require.ErrorIs(t, s.Link(local, nil), ErrInvalidEdgeReference)
	assert.Zero(t, local.InDegree())
}

func TestNegativeIDFoldsIntoRange(t *testing.T) {
	s := newTestStore(t, 4)

	n := s.Insert(-3)

	got, ok := s.Lookup(-3)
	require.True(t, ok)
	assert.Same(t, n, got)
	assert.Len(t, s.BucketNodes(1), 1)
	assert.Equal(t, int64(-1), s.MaxID())
}

func TestSnapshotAndIDs_AscendingOrder(t *testing.T) {
	s := newTestStore(t, 3)
	for _, id := range []int64{9, 0, 4, 17, 2} {
		s.Insert(id)
	}
	s.Insert(4).SetRank(0.25)

	assert.Equal(t, []int64{0, 2, 4, 9, 17}, s.IDs())

	snap := s.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, Entry{ID: 4, Rank: 0.25}, snap[2])
	assert.Equal(t, int64(17), snap[4].ID)
}

func TestEmptyStore(t *testing.T) {
	s := newTestStore(t, 503)

	assert.Zero(t, s.Len())
	assert.Equal(t, int64(-1), s.MaxID())
	assert.Empty(t, s.IDs())
	assert.Empty(t, s.Snapshot())
	assert.Equal(t, 503, s.BucketCount())
}
