package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_SharesInFlightCall(t *testing.T) {
	var (
		g       SingleFlight
		calls   atomic.Int32
		callers sync.WaitGroup
	)
	release := make(chan struct{})

	const concurrent = 10
	results := make([]any, concurrent)
	for i := range concurrent {
		callers.Add(1)
		go func() {
			defer callers.Done()
			v, err, _ := g.Do("principal:abc", func() (any, error) {
				calls.Add(1)
				<-release
				return "user-1", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// Give every caller time to join the in-flight call before it returns.
	time.Sleep(50 * time.Millisecond)
	close(release)
	callers.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "user-1", v)
	}
}

func TestSingleFlight_ForgetStartsNewCall(t *testing.T) {
	var g SingleFlight
	calls := 0

	for i := 0; i < 2; i++ {
		_, err, _ := g.Do("league:nfl", func() (any, error) {
			calls++
			return nil, nil
		})
		require.NoError(t, err)
		g.Forget("league:nfl")
	}
	assert.Equal(t, 2, calls)
}
