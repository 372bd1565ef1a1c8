package resumable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIntegration_RecursiveResumable mirrors the original's
// "movable_functor" scenario: a Resumable body that itself awaits a nested
// Resumable, recursing down to a fixed depth before unwinding.
func TestIntegration_RecursiveResumable(t *testing.T) {
	queue := NewReadyQueue()

	var countdown func(n int) *ThenFuture[int]
	countdown = func(n int) *ThenFuture[int] {
		return Resumable(func() (int, error) {
			if n == 0 {
				return 0, nil
			}
			v, err := Await(countdown(n - 1))
			if err != nil {
				return 0, err
			}
			return v + n, nil
		}, WithReadyQueue(queue))
	}

	future := countdown(5)
	drainUntilReady(t, future, queue)

	v, err := future.Get()
	require.NoError(t, err)
	require.Equal(t, 15, v) // 5+4+3+2+1+0
}

// TestIntegration_SelfAwaitRecursiveCounter mirrors spec.md §8's S5: a
// chain of N nested Resumable bodies, each of which (except the innermost)
// awaits a freshly spawned Resumable wrapping itself before incrementing a
// shared counter, which must land at exactly N once the chain fully
// unwinds.
func TestIntegration_SelfAwaitRecursiveCounter(t *testing.T) {
	queue := NewReadyQueue()
	const n = 5
	finished := 0

	var iterate func(remaining int) *ThenFuture[int]
	iterate = func(remaining int) *ThenFuture[int] {
		return Resumable(func() (int, error) {
			if remaining > 1 {
				_, err := Await(iterate(remaining - 1))
				if err != nil {
					return 0, err
				}
			}
			finished++
			return finished, nil
		}, WithReadyQueue(queue))
	}

	future := iterate(n)
	drainUntilReady(t, future, queue)

	v, err := future.Get()
	require.NoError(t, err)
	require.Equal(t, n, v)
	require.Equal(t, n, finished)
}

// TestIntegration_AdversarialReentrantDrain stands in for spec.md §8's S6:
// the goroutine that resolves the future a Resumable body awaits drains the
// ready queue itself right after resolving it, so the coroutine's
// resumption may run from that goroutine's drain or from the test's own,
// concurrently. The gate must still ensure the coroutine resumes exactly
// once with the correct value.
func TestIntegration_AdversarialReentrantDrain(t *testing.T) {
	queue := NewReadyQueue()

	reentrant := func(v int) *ThenFuture[int] {
		p := NewThenPromise[int]()
		f := p.GetFuture()
		go func() {
			p.SetValue(v)
			queue.Drain()
		}()
		return f
	}

	future := Resumable(func() (int, error) {
		v, err := Await(reentrant(42))
		if err != nil {
			return 0, err
		}
		return v, nil
	}, WithReadyQueue(queue))

	drainUntilReady(t, future, queue)
	v, err := future.Get()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

// TestIntegration_ManyConcurrentResumables exercises several independent
// Resumable bodies sharing one ReadyQueue, each awaiting CustomAsync work,
// confirming no cross-talk between their active-coroutine handles.
func TestIntegration_ManyConcurrentResumables(t *testing.T) {
	queue := NewReadyQueue()
	const n = 20

	futures := make([]*ThenFuture[int], n)
	for i := 0; i < n; i++ {
		i := i
		futures[i] = Resumable(func() (int, error) {
			v, err := Await(CustomAsync(func() (int, error) { return i * i, nil }))
			if err != nil {
				return 0, err
			}
			return v, nil
		}, WithReadyQueue(queue))
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		allReady := true
		for _, f := range futures {
			if !f.WaitFor(0) {
				allReady = false
			}
		}
		if allReady {
			break
		}
		queue.Drain()
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for concurrent resumables")
		}
	}

	for i, f := range futures {
		v, err := f.Get()
		require.NoError(t, err)
		require.Equal(t, i*i, v)
	}
}
