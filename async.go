package resumable

import "sync"

// CustomAsync runs fn on a new goroutine and returns a future for its
// result, grounded in the teacher's Promisify: a panic recovered from fn is
// delivered through the future as a [PanicError] (or as the panic value
// itself, if that is already an error) rather than crashing the process, and fn's returned error (if any) resolves the future as an
// exception exactly like [ThenPromise.SetException] would.
//
// The returned future's call-in-destructor slot (spec.md §4.3) is wired to
// a [sync.WaitGroup] covering the spawned goroutine, exactly as the
// original's async_call_in_destructor joins the worker thread it spawned.
// It travels forward across any [Then]/[Await] chain built on this future,
// so whichever future ends up as the tail of that chain is the one whose
// Get/Close actually performs the join.
//
// This is the package's bridge from "ordinary async work" into the future
// vocabulary [Await] and [Then] consume -- the original's custom_async.
func CustomAsync[R any](fn func() (R, error)) *ThenFuture[R] {
	promise := NewThenPromise[R]()
	future := promise.GetFuture()

	var wg sync.WaitGroup
	wg.Add(1)
	future.closer = wg.Wait

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logEvent(nil, "async", LevelWarn, "custom async function panicked", asError(r))
				promise.SetException(asError(r))
			}
		}()
		v, err := fn()
		if err != nil {
			promise.SetException(err)
			return
		}
		promise.SetValue(v)
	}()

	return future
}
