// Package graph provides the node registry that the rank engine computes over:
// a fixed-size bucketed hash of nodes, each with its incoming-edge list and a
// rank cell.
//
// # Why Graph Package Exists
//
// The store separates the **immutable structure** of the graph (which nodes
// exist, which bucket they live in, which sources point at them) from the
// **mutable rank** of each node. Structure is written once, single-threaded,
// while the edge list is being loaded. After that it is only read, so any
// number of workers may walk buckets and incoming lists without locking.
//
// Rank cells are the one thing that changes during computation. Each cell is a
// float64 stored as atomic bits, so concurrent readers never observe a torn
// value while the owning worker writes it.
//
// # Layout
//
//	buckets [B][]int32 ──► indices into nodes
//	nodes   []*Node   ──► Node{ID, outDegree, sources []int32, rank}
//
// Node records are owned by the store. Buckets and incoming lists hold indices
// into the dense node table rather than pointers.
//
// # Ordering
//
// Buckets and incoming lists behave as head-inserted chains: the most recently
// added entry is visited first. They are stored append-only, so callers that
// care about visit order walk them from the end. BucketNodes and Sources
// document this where it matters.
//
// # Lifecycle
//
//  1. **Creation:** New(buckets) with a fixed bucket count.
//  2. **Population:** Insert and AddEdge/Link while the edge list is read.
//  3. **Computation:** workers read structure and load/store rank cells.
//  4. **Output:** Snapshot returns (ID, rank) pairs in ascending ID order.
package graph
