package resumable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoThreadGate_SecondArrivalWins(t *testing.T) {
	var g TwoThreadGate
	require.False(t, g.Arrive())
	require.True(t, g.Arrive())
}

func TestTwoThreadGate_ConcurrentArrivalsExactlyOneWinner(t *testing.T) {
	for i := 0; i < 200; i++ {
		var g TwoThreadGate
		var wg sync.WaitGroup
		results := make([]bool, 2)
		wg.Add(2)
		for j := 0; j < 2; j++ {
			go func(j int) {
				defer wg.Done()
				results[j] = g.Arrive()
			}(j)
		}
		wg.Wait()
		require.NotEqual(t, results[0], results[1], "exactly one arrival must win")
	}
}

func TestTwoThreadGate_Reset(t *testing.T) {
	var g TwoThreadGate
	g.Arrive()
	g.Arrive()
	g.Reset()
	require.False(t, g.Arrive())
	require.True(t, g.Arrive())
}
