package resumable

import "sync/atomic"

// TwoThreadGate is a rendezvous primitive for exactly two parties racing to
// decide who does a piece of work: the first party to call Arrive gets
// false back and must stand down; the second gets true and must proceed.
// Ported from the original's two_thread_gate, which exists because "did the
// continuation or the resolver get here first" can't be answered any other
// way without a lock that would itself re-introduce the same race on its
// own acquisition.
type TwoThreadGate struct {
	count atomic.Int32
}

// Arrive registers one of the (at most two) expected arrivals and reports
// whether this call was the second (and therefore last) one.
func (g *TwoThreadGate) Arrive() bool {
	return g.count.Add(1) == 2
}

// Reset returns the gate to its initial state, for a [TwoThreadGate] that is
// reused across multiple hand-offs.
func (g *TwoThreadGate) Reset() {
	g.count.Store(0)
}
