package engine

import "sync"

// Barrier is a reusable rendezvous for a fixed number of parties. Each call to
// Wait blocks until all parties have called Wait since the last release.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until every party has arrived. It reports whether the caller was
// the last to arrive.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}

	// Spurious wakeups and later generations both leave gen behind.
	for gen == b.generation {
		b.cond.Wait()
	}
	return false
}

// Parties returns the number of participants the barrier waits for.
func (b *Barrier) Parties() int { return b.parties }
