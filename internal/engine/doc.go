// Package engine runs the fixed-iteration PageRank computation over a
// graph.Store with a fixed pool of worker goroutines.
//
// # Pass Protocol
//
// Every worker runs the same linear state machine:
//
//	Running(pass i) → BarrierA → {worker 0: Reset} → BarrierB → Running(i+1) … → Finished
//
// While running, a worker claims buckets from a shared scheduler.Cursor and
// recomputes the rank of every node in each claimed bucket:
//
//	rank(n) = BaseRank + DampingFactor × Σ rank(s) / outDegree(s)
//
// summed over the incoming sources s of n. Sources with an out-degree of zero
// contribute nothing. The new rank is stored immediately, so a worker reading
// n as a source later in the same pass sees the updated value while one that
// read it earlier saw the previous pass. Results therefore depend on bucket
// order whenever more than one worker is used.
//
// The two barriers around the reset are the only ordering between passes:
// every rank written in pass i happens before BarrierB releases, which
// happens before any read in pass i+1.
//
// # Completion
//
// After its last pass each worker increments a shared counter. The worker that
// brings it to the pool size signals the Completion the orchestrator is
// blocked on, after which Run joins the pool.
package engine
