package scheduler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimNext_SequentialUntilExhausted(t *testing.T) {
	c := NewCursor(3)

	for want := 0; want < 3; want++ {
		got, ok := c.ClaimNext()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := c.ClaimNext()
	assert.False(t, ok)
	_, ok = c.ClaimNext()
	assert.False(t, ok, "cursor stays exhausted until reset")
}

func TestReset_StartsNewPass(t *testing.T) {
	c := NewCursor(2)
	c.ClaimNext()
	c.ClaimNext()
	c.ClaimNext()

	c.Reset()

	got, ok := c.ClaimNext()
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestZeroLimit(t *testing.T) {
	c := NewCursor(0)
	_, ok := c.ClaimNext()
	assert.False(t, ok)
}

func TestClaimNext_ConcurrentClaimsAreUnique(t *testing.T) {
	const (
		limit   = 5000
		workers = 16
	)
	c := NewCursor(limit)

	claims := make([][]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				idx, ok := c.ClaimNext()
				if !ok {
					return
				}
				claims[w] = append(claims[w], idx)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[int]int, limit)
	for _, perWorker := range claims {
		for _, idx := range perWorker {
			seen[idx]++
		}
	}
	require.Len(t, seen, limit)
	for idx, n := range seen {
		assert.Equal(t, 1, n, "index %d claimed %d times", idx, n)
	}
}
