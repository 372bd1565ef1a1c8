// Package resumable provides a user-space cooperative concurrency runtime:
// synchronous-looking functions that can suspend on an async result without
// inverting control flow into callbacks.
//
// # Architecture
//
// Three layers, leaves first:
//
//   - [internal/stackctx] — the stack-swap primitive: prepare an alternate
//     execution context, switch into and out of it, propagate panics across
//     the switch.
//   - [Coroutine] — a one-shot resumable function built on stackctx, with a
//     [RunState] lifecycle and a [Self] handle for the body to [Self.Yield].
//   - [ThenFuture] / [ThenPromise] / [TwoThreadGate] and [Resumable] / [Await]
//     — a single-continuation future, the two-party gate that decides which
//     of a racing producer/consumer pair performs the hand-off, and the glue
//     that lets `v, err := Await(f)` read like a synchronous call inside a
//     [Resumable] body.
//
// # Usage
//
//	future := resumable.Resumable(func() (int, error) {
//	    a, err := resumable.Await(resumable.CustomAsync(func() (int, error) { return 5, nil }))
//	    if err != nil {
//	        return 0, err
//	    }
//	    b, err := resumable.Await(resumable.CustomAsync(func() (int, error) { return 7, nil }))
//	    if err != nil {
//	        return 0, err
//	    }
//	    return a + b, nil
//	})
//
//	// elsewhere, whatever drives the program forward:
//	resumable.DefaultReadyQueue().Drain()
//	v, err := future.Get()
//
// # Thread Safety
//
//   - [ThenPromise.SetValue] / [ThenPromise.SetException] may be called from
//     any goroutine.
//   - [Await] may only be called on the goroutine currently running inside a
//     [Resumable] body (or a nested [Coroutine] it drives); see [CanAwait].
//   - A [Coroutine]'s body runs on one dedicated goroutine for its whole
//     life, while [Coroutine.Call] may be invoked from a different goroutine
//     on each resume; the body's goroutine (and so its active-coroutine
//     stack) is the same before and after a yield.
//
// # Error Types
//
//   - [ProgrammerError]: await outside a resumable context, or calling a
//     finished/uninitialized [Coroutine].
//   - [ErrBrokenPromise]: a [ThenPromise] was garbage-collected while still
//     pending.
//   - [PanicError]: wraps a panic recovered from a [Resumable] body or a
//     [CustomAsync] function.
package resumable
