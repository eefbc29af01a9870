package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicClock(t *testing.T) {
	clock := NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())

	for want := int64(1); want <= 4; want++ {
		assert.Equal(t, want, clock.Next())
	}
	assert.Equal(t, int64(4), clock.Current())

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClock_Concurrent(t *testing.T) {
	const workers, calls = 50, 200
	clock := NewDeterministicClock()

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers*calls)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				seq := clock.Next()
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*calls)
	for seq := int64(1); seq <= workers*calls; seq++ {
		assert.True(t, seen[seq], "missing seq %d", seq)
	}
}
