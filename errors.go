// errors.go — the error taxonomy spec.md §7 calls for: programmer errors,
// broken promises, and user/panic propagation. Shape (Unwrap/Is, wrapping
// structs) carried over from the teacher's errors.go.
package resumable

import (
	"errors"
	"fmt"
)

// ErrBrokenPromise is the error a [ThenFuture]'s Get/Wait returns when its
// [ThenPromise] was garbage-collected while still pending (spec.md §7,
// "broken promise").
var ErrBrokenPromise = errors.New("resumable: broken promise")

// ErrAwaitOutsideResumable is the error wrapped by the [ProgrammerError]
// panic raised when [Await] is called with no enclosing [Resumable]/
// [Coroutine] on the calling goroutine.
var ErrAwaitOutsideResumable = errors.New("resumable: await used outside of a resumable context")

// ErrCoroutineNotCallable is the error wrapped by the [ProgrammerError]
// panic raised when a [Coroutine] is called while Finished or
// Uninitialized.
var ErrCoroutineNotCallable = errors.New("resumable: coroutine is not in a callable state")

// ErrFutureAlreadyChained is the error wrapped by the [ProgrammerError]
// panic raised when [ThenFuture.Get], [Then] or [Await] is called on a
// [ThenFuture] that has already been consumed by any of them (spec.md §3:
// "then is at most once").
var ErrFutureAlreadyChained = errors.New("resumable: future already consumed by Get, Then or Await")

// ErrFutureAlreadyRetrieved is the error wrapped by the [ProgrammerError]
// panic raised when [ThenPromise.GetFuture] is called a second time on the
// same promise.
var ErrFutureAlreadyRetrieved = errors.New("resumable: future already retrieved from promise")

// ProgrammerError signals a contract violation that spec.md §7 says should
// surface loudly rather than be silently tolerated: await outside a
// resumable context, re-entering a finished coroutine, or chaining a future
// twice. It is always delivered via panic, never via an error return,
// matching the original's "intended to crash the process" semantics.
type ProgrammerError struct {
	Cause error
}

// Error implements the error interface.
func (e *ProgrammerError) Error() string {
	return fmt.Sprintf("resumable: programmer error: %v", e.Cause)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *ProgrammerError) Unwrap() error { return e.Cause }

func panicProgrammerError(cause error) {
	panic(&ProgrammerError{Cause: cause})
}

// PanicError wraps a panic value recovered from a [Resumable] body or a
// [CustomAsync] function, matching spec.md §7's "user exception" family:
// a panic raised by user code is captured at the coroutine boundary and
// delivered through the downstream future's Get(), never left to unwind
// across a stack-swap boundary.
type PanicError struct {
	// Value is the recovered panic value (may be any type, including error).
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("resumable: panic: %v", e.Value)
}

// Unwrap returns the underlying error if Value is itself an error, so
// [errors.Is]/[errors.As] can see through the wrapper.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// asError normalizes a recovered panic value into an error: if it already
// is one it is returned unwrapped (callers that paniced with an error, e.g.
// a nested *ProgrammerError or *PanicError, should not be double-wrapped),
// otherwise it is wrapped in a *PanicError.
func asError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return &PanicError{Value: recovered}
}
