// Package scheduler hands out units of work to the rank engine's workers.
//
// # How It Works
//
// A unit of work is one hash bucket of the graph store. During a pass every
// worker repeatedly calls ClaimNext on a shared Cursor. Each call is a single
// atomic fetch-add, so no two callers ever receive the same bucket within a
// pass and no caller ever blocks. Once the cursor runs past the bucket count
// the pass is exhausted for everybody.
//
// Between passes exactly one worker calls Reset. The caller is responsible
// for making sure nobody is claiming at that moment; the engine does this by
// placing the reset between two barrier rendezvous.
package scheduler
