package resumable

import "sync/atomic"

// RunState represents the lifecycle state of a [Coroutine] (spec.md §4.2).
//
//	Uninitialized -> NotStarted [NewCoroutine / Reset(body)]
//	NotStarted    -> Running    [first Call()]
//	Running       -> Running   [across each yield]
//	Running       -> Finished  [body returns or panics]
//
// Uninitialized is RunState's zero value, and is reserved for a Coroutine
// that has never had a body installed (spec.md §4.2's no-body constructor —
// `var c Coroutine` / `new(Coroutine)` in this port, since that is what
// "constructed without a body" means for a Go zero value). It is never
// callable.
type RunState int32

const (
	// Uninitialized indicates no body has ever been installed. Being
	// RunState's zero value means a zero-value Coroutine (one that never
	// passed through NewCoroutine) reports Uninitialized with no explicit
	// initialization step.
	Uninitialized RunState = iota
	// NotStarted indicates the coroutine's body has not yet run.
	NotStarted
	// Running indicates the body is either currently executing or parked
	// mid-yield, waiting to be resumed.
	Running
	// Finished indicates the body has returned or panicked; the coroutine
	// can no longer be called until Reset.
	Finished
)

// String returns a human-readable representation of the state.
func (s RunState) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// runStateBox is a tiny atomic wrapper, in the style of the teacher's
// FastState: the CORE's ownership model (spec.md §3) guarantees a
// Coroutine is only ever driven by one goroutine at a time, so this exists
// to make reads from a concurrent observer (e.g. a test asserting on
// Coroutine.State()) race-free, not to arbitrate concurrent callers. It is
// embedded by value, not behind a pointer: its own zero value already reads
// as Uninitialized (RunState's zero value), which is exactly what a
// zero-value [Coroutine] needs, so there is no constructor here.
type runStateBox struct {
	v atomic.Int32
}

func (b *runStateBox) Load() RunState   { return RunState(b.v.Load()) }
func (b *runStateBox) Store(s RunState) { b.v.Store(int32(s)) }
