package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/burstrank/internal/graph"
	"github.com/vk/burstrank/internal/testutil"
)

func testOptions(workers, iterations int) Options {
	opts := DefaultOptions()
	opts.Workers = workers
	opts.Iterations = iterations
	return opts
}

func runEngine(t *testing.T, s *graph.Store, opts Options, options ...Option) *Result {
	t.Helper()
	ctx, _ := testutil.LogContext(t)

	e, err := New(s, opts, options...)
	require.NoError(t, err)
	res, err := e.Run(ctx)
	require.NoError(t, err)
	return res
}

// randomEdges returns a reproducible sparse graph with ids in [0, nodes).
func randomEdges(nodes, edges int, seed uint64) []testutil.Edge {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]testutil.Edge, edges)
	for i := range out {
		out[i] = testutil.Edge{From: rng.Int64N(int64(nodes)), To: rng.Int64N(int64(nodes))}
	}
	return out
}

// sequentialReference applies the update rule in the order a single worker
// visits the store: bucket 0 first, chain head first, sources head first.
func sequentialReference(s *graph.Store, opts Options) {
	for pass := 0; pass < opts.Iterations; pass++ {
		for b := 0; b < s.BucketCount(); b++ {
			chain := s.BucketNodes(b)
			for i := len(chain) - 1; i >= 0; i-- {
				n := s.Node(chain[i])
				var sum float64
				src := n.Sources()
				for j := len(src) - 1; j >= 0; j-- {
					m := s.Node(src[j])
					sum += m.Rank() / float64(m.OutDegree())
				}
				n.SetRank(opts.BaseRank + opts.DampingFactor*sum)
			}
		}
	}
}

func TestRun_ThreeCycleSinglePass(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		s := testutil.BuildStore(t, 503,
			testutil.Edge{From: 1, To: 2},
			testutil.Edge{From: 2, To: 3},
			testutil.Edge{From: 3, To: 1},
		)

		res := runEngine(t, s, testOptions(workers, 1))

		assert.Equal(t, 1, res.Passes)
		for id, r := range testutil.Ranks(s) {
			assert.InDelta(t, 1.0, r, 1e-12, "workers=%d node=%d", workers, id)
		}
	}
}

func TestRun_IsolatedNodeSettlesAtBaseRank(t *testing.T) {
	for _, iterations := range []int{1, 2, 50} {
		s, err := graph.New(503)
		require.NoError(t, err)
		n := s.Insert(7)

		runEngine(t, s, testOptions(2, iterations))

		assert.InDelta(t, 0.15, n.Rank(), 1e-12, "iterations=%d", iterations)
	}
}

func TestNewRank_SumsSourceContributions(t *testing.T) {
	s := testutil.BuildStore(t, 5,
		testutil.Edge{From: 2, To: 1},
		testutil.Edge{From: 2, To: 4},
		testutil.Edge{From: 3, To: 1},
		testutil.Edge{From: 3, To: 1},
	)
	two, _ := s.Lookup(2)
	three, _ := s.Lookup(3)
	two.SetRank(0.6)
	three.SetRank(0.9)
	target, _ := s.Lookup(1)

	e, err := New(s, DefaultOptions())
	require.NoError(t, err)

	// Node 3 contributes twice through the parallel edge.
	want := 0.15 + 0.85*(0.6/2+0.9/2+0.9/2)
	assert.InDelta(t, want, e.newRank(target), 1e-12)

	lonely, _ := s.Lookup(2)
	assert.InDelta(t, 0.15, e.newRank(lonely), 1e-12)
}

func TestRun_PassCountAndHook(t *testing.T) {
	edges := randomEdges(300, 1200, 7)
	for _, workers := range []int{1, 2, 4, 16, 64} {
		s := testutil.BuildStore(t, 31, edges...)

		var (
			mu    sync.Mutex
			calls []int
		)
		hook := func(_ context.Context, pass, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 9, total)
			calls = append(calls, pass)
		}

		res := runEngine(t, s, testOptions(workers, 9), WithPassHook(hook))

		assert.Equal(t, 9, res.Passes)
		assert.Equal(t, workers, res.Workers)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, calls)
		assert.Equal(t, int64(9*s.Len()), res.NodeUpdates, "every node updated exactly once per pass")

		var sum int64
		for _, u := range res.UpdatesPerWorker {
			sum += u
		}
		assert.Equal(t, res.NodeUpdates, sum)
	}
}

func TestRun_SingleWorkerMatchesSequentialOrder(t *testing.T) {
	edges := randomEdges(500, 2500, 42)
	opts := testOptions(1, 20)

	got := testutil.BuildStore(t, 17, edges...)
	want := testutil.BuildStore(t, 17, edges...)

	runEngine(t, got, opts)
	sequentialReference(want, opts)

	assert.Equal(t, testutil.Ranks(want), testutil.Ranks(got))
}

func TestRun_ManyWorkersReachFixedPoint(t *testing.T) {
	// Every node has in-degree and out-degree 3, so the unique fixed point is
	// rank 1.0 everywhere and the asynchronous update contracts towards it.
	s := testutil.BuildStore(t, 53, testutil.Ring(1000, 2, 3)...)
	rng := rand.New(rand.NewPCG(3, 4))
	for _, id := range s.IDs() {
		n, _ := s.Lookup(id)
		n.SetRank(rng.Float64() * 5)
	}

	runEngine(t, s, testOptions(8, 200))

	for id, r := range testutil.Ranks(s) {
		require.InDelta(t, 1.0, r, 1e-9, "node %d", id)
	}
}

func TestRun_RanksStayAboveBase(t *testing.T) {
	s := testutil.BuildStore(t, 7, randomEdges(2000, 10000, 11)...)

	runEngine(t, s, testOptions(12, 30))

	for id, r := range testutil.Ranks(s) {
		assert.GreaterOrEqual(t, r, 0.15, "node %d", id)
	}
}

func TestRun_MoreWorkersThanBuckets(t *testing.T) {
	s := testutil.BuildStore(t, 2, testutil.Ring(10)...)

	res := runEngine(t, s, testOptions(32, 3))

	assert.Equal(t, 3, res.Passes)
	assert.Equal(t, int64(30), res.NodeUpdates)
}

func TestRun_EmptyStore(t *testing.T) {
	s, err := graph.New(503)
	require.NoError(t, err)

	res := runEngine(t, s, testOptions(4, 5))

	assert.Equal(t, 5, res.Passes)
	assert.Zero(t, res.NodeUpdates)
}

func TestRun_SecondCallFails(t *testing.T) {
	s := testutil.BuildStore(t, 3, testutil.Ring(4)...)
	e, err := New(s, testOptions(2, 1))
	require.NoError(t, err)

	_, err = e.Run(context.Background())
	require.NoError(t, err)

	_, err = e.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRan)
}

func TestNew_Validation(t *testing.T) {
	s := testutil.BuildStore(t, 3)

	tests := []struct {
		name string
		opts Options
	}{
		{"zero workers", testOptions(0, 1)},
		{"negative workers", testOptions(-3, 1)},
		{"zero iterations", testOptions(1, 0)},
		{"damping above one", Options{Iterations: 1, Workers: 1, DampingFactor: 1.5}},
		{"negative base", Options{Iterations: 1, Workers: 1, BaseRank: -0.1, DampingFactor: 0.85}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(s, tc.opts)
			require.ErrorIs(t, err, ErrInvalidOptions)
		})
	}

	_, err := New(nil, DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestOptions_ValidateReportsEveryField(t *testing.T) {
	err := Options{Workers: 0, Iterations: 0, BaseRank: -1, DampingFactor: 2}.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, field := range []string{"worker count", "iterations", "base rank", "damping factor"} {
		assert.Contains(t, msg, field)
	}
}
