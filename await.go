package resumable

import "github.com/resumable-go/resumable/internal/golocal"

// runningCoroutine is the handle pushed onto [internal/golocal]'s
// per-goroutine active-coroutine stack for the duration of a [Resumable]
// body's execution, ported from the original's ActiveCoroutine. It bundles
// exactly what [Await] needs to suspend and later resume the calling
// coroutine: a way to yield, a way to call it again, and the queue that
// schedules that call.
type runningCoroutine struct {
	self  *Self
	coro  *Coroutine
	queue *ReadyQueue
}

func currentRunning() *runningCoroutine {
	h := golocal.Current()
	if h == nil {
		return nil
	}
	rc, _ := h.(*runningCoroutine)
	return rc
}

// CanAwait reports whether the calling goroutine is currently running
// inside a [Resumable] body (or a [Coroutine] it nests), i.e. whether
// [Await] is legal to call right now.
func CanAwait() bool {
	return currentRunning() != nil
}

// Await suspends the enclosing [Resumable] body until f resolves, then
// returns its (value, error) exactly as [ThenFuture.Get] would. It panics
// with a [ProgrammerError] wrapping [ErrAwaitOutsideResumable] if called
// from outside a Resumable body; see [AwaitOrBlock] and [CanAwait] for
// callers that need to tolerate both contexts.
//
// Await is a free function, not a method on [*ThenFuture[T]], for the same
// reason [Then] is: Go methods cannot introduce a type parameter the
// receiver doesn't already carry, and here there is no receiver type to
// carry T on at all -- the type parameter comes entirely from f.
func Await[T any](f *ThenFuture[T]) (T, error) {
	rc := currentRunning()
	if rc == nil {
		panicProgrammerError(ErrAwaitOutsideResumable)
	}
	return awaitOn(rc, f)
}

// AwaitOrBlock behaves like [Await] when called from within a [Resumable]
// body, and otherwise blocks the calling goroutine until f resolves
// (spec.md §4.5's await_or_block, for code that may or may not be running
// resumably and doesn't want to branch on [CanAwait] itself).
func AwaitOrBlock[T any](f *ThenFuture[T]) (T, error) {
	if rc := currentRunning(); rc != nil {
		return awaitOn(rc, f)
	}
	return f.Get()
}

// awaitOn implements the core algorithm, ported from the original's
// Awaiter::operator->*: a gate decides the race between "the future
// resolved" and "the coroutine is about to yield." Whichever side arrives
// second is the one that must act -- either enqueueing the coroutine's
// resumption, or skipping the yield because the result is already in hand.
func awaitOn[T any](rc *runningCoroutine, f *ThenFuture[T]) (T, error) {
	var gate TwoThreadGate
	chained := Then(f, func(v T, err error) (T, error) {
		if gate.Arrive() {
			rc.queue.Enqueue(func() { rc.coro.Call() })
		}
		return v, err
	})
	if !gate.Arrive() {
		rc.self.Yield()
	}
	return chained.Get()
}
