package resumable

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadyQueue_RunOneFIFO(t *testing.T) {
	q := NewReadyQueue()
	var order []int
	q.Enqueue(func() { order = append(order, 1) })
	q.Enqueue(func() { order = append(order, 2) })

	require.True(t, q.RunOne())
	require.True(t, q.RunOne())
	require.False(t, q.RunOne())
	require.Equal(t, []int{1, 2}, order)
}

func TestReadyQueue_DrainRunsTasksEnqueuedDuringDrain(t *testing.T) {
	q := NewReadyQueue()
	var count int32
	var enqueueMore func()
	enqueueMore = func() {
		n := atomic.AddInt32(&count, 1)
		if n < 3 {
			q.Enqueue(enqueueMore)
		}
	}
	q.Enqueue(enqueueMore)
	q.Drain()

	require.Equal(t, int32(3), atomic.LoadInt32(&count))
	require.Equal(t, 0, q.Len())
}

func TestReadyQueue_RunOneBlockingWaitsForTask(t *testing.T) {
	q := NewReadyQueue()
	done := make(chan struct{})
	go func() {
		q.RunOneBlocking()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Enqueue(func() {})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunOneBlocking never returned after a task was enqueued")
	}
}

func TestDefaultReadyQueue_IsASingleton(t *testing.T) {
	require.Same(t, DefaultReadyQueue(), DefaultReadyQueue())
}
