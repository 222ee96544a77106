package engine

import "sync"

// Completion is a one-shot notification guarded by a mutex and condition
// variable.
type Completion struct {
	mu   sync.Mutex
	cond *sync.Cond
	done bool
}

// NewCompletion returns an unsignaled Completion.
func NewCompletion() *Completion {
	c := &Completion{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Signal sets the done flag and wakes every waiter. It returns false if the
// completion had already been signaled.
func (c *Completion) Signal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return false
	}
	c.done = true
	c.cond.Broadcast()
	return true
}

// Wait blocks until Signal has been called.
func (c *Completion) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.done {
		c.cond.Wait()
	}
}

// Done reports whether Signal has been called.
func (c *Completion) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
