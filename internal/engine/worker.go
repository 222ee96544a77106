package engine

import (
	"context"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"
)

// worker is the processing loop for a single member of the pool.
func (e *Engine) worker(ctx context.Context, r *run, workerID int) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	var updates int64
	for pass := 0; pass < e.opts.Iterations; pass++ {
		for {
			b, ok := r.cursor.ClaimNext()
			if !ok {
				break
			}
			updates += e.updateBucket(b)
		}

		r.barrier.Wait()
		if workerID == resetterID {
			r.cursor.Reset()
			r.passes++
			if e.onPass != nil {
				e.onPass(ctx, pass+1, e.opts.Iterations)
			}
		}
		r.barrier.Wait()
	}
	r.updates[workerID] = updates

	if int(r.finished.Add(1)) == e.opts.Workers {
		if !r.done.Signal() {
			logger.Error("Completion was signaled more than once.")
		}
	}
	logger.Debug("Worker finished.", "updates", updates)
}

// updateBucket recomputes every node in bucket b, head of the chain first,
// and returns the number of nodes updated.
func (e *Engine) updateBucket(b int) int64 {
	chain := e.store.BucketNodes(b)
	for i := len(chain) - 1; i >= 0; i-- {
		n := e.store.Node(chain[i])
		n.SetRank(e.newRank(n))
	}
	return int64(len(chain))
}

// newRank applies the update rule to n using whatever ranks its sources hold
// right now.
func (e *Engine) newRank(n *graph.Node) float64 {
	var sum float64
	sources := n.Sources()
	for i := len(sources) - 1; i >= 0; i-- {
		s := e.store.Node(sources[i])
		if d := s.OutDegree(); d > 0 {
			sum += s.Rank() / float64(d)
		}
	}
	return e.opts.BaseRank + e.opts.DampingFactor*sum
}
