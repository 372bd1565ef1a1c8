package resumable

import (
	"runtime"
	"time"
)

// futureSharedState is the state block a [ThenFuture]/[ThenPromise] pair
// shares, ported from the original's future_shared_state<T> plus the
// continuation bookkeeping of base_promise<T>. A doneCh, closed exactly
// once, stands in for the original's mutex+condition_variable pair: it
// gives blocking Get/Wait *and* timed WaitFor/WaitUntil for free via
// select, which a bare sync.Cond cannot do.
type futureSharedState[T any] struct {
	doneCh chan struct{}
	value  T
	err    error

	// gate decides, between whichever of "the promise was fulfilled" and
	// "a continuation was installed via Then" happens second, which side
	// is responsible for actually running the continuation. This is the
	// two_thread_gate race the original documents at length: both orders
	// are possible and only one side can know it was second.
	gate         TwoThreadGate
	continuation func()
}

func newFutureSharedState[T any]() *futureSharedState[T] {
	return &futureSharedState[T]{doneCh: make(chan struct{})}
}

func (s *futureSharedState[T]) setResult(v T, err error) {
	s.value = v
	s.err = err
	close(s.doneCh)
	if s.gate.Arrive() {
		s.runContinuation()
	}
}

func (s *futureSharedState[T]) installContinuation(k func()) {
	s.continuation = k
	if s.gate.Arrive() {
		s.runContinuation()
	}
}

func (s *futureSharedState[T]) runContinuation() {
	if s.continuation != nil {
		s.continuation()
	}
}

func (s *futureSharedState[T]) ready() bool {
	select {
	case <-s.doneCh:
		return true
	default:
		return false
	}
}

// peek reads the result without blocking; only safe once ready() is true,
// which is guaranteed for any code running as (or after) the continuation.
func (s *futureSharedState[T]) peek() (T, error) {
	return s.value, s.err
}

func (s *futureSharedState[T]) wait() {
	<-s.doneCh
}

func (s *futureSharedState[T]) waitFor(d time.Duration) bool {
	if d <= 0 {
		return s.ready()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.doneCh:
		return true
	case <-timer.C:
		return false
	}
}

// ThenFuture is a single-use handle to an eventual (T, error) result. It is
// the Go analogue of the original's then_future<T>: unlike a JS-style
// promise, it has at most one consumer -- either [Await] (via [Then]
// internally) or a direct call to Get/Then -- never both and never more
// than one Then chain.
type ThenFuture[T any] struct {
	state  *futureSharedState[T]
	valid  bool
	closer func()
}

// Valid reports whether this future has not yet been consumed by Get or
// [Then].
func (f *ThenFuture[T]) Valid() bool { return f != nil && f.valid }

// Close runs this future's call-in-destructor slot, if any (see
// [CustomAsync]), joining background work the chain this future is the tail
// of spawned. Safe to call more than once and on an already-consumed
// future; every call after the first is a no-op. A caller that discards a
// future chain without ever calling Get should call Close instead, to avoid
// relying on the GC-driven finalizer backstop to join in a timely manner.
func (f *ThenFuture[T]) Close() {
	if f == nil {
		return
	}
	f.runCloser()
}

func (f *ThenFuture[T]) runCloser() {
	if f.closer == nil {
		return
	}
	closer := f.closer
	f.closer = nil
	runtime.SetFinalizer(f, nil)
	closer()
}

func (f *ThenFuture[T]) consume() {
	f.valid = false
	f.runCloser()
}

// Get blocks until the result is available and returns it, consuming the
// future. Calling Get (or [Then]) a second time panics with a
// [ProgrammerError] wrapping [ErrFutureAlreadyChained].
func (f *ThenFuture[T]) Get() (T, error) {
	if !f.Valid() {
		panicProgrammerError(ErrFutureAlreadyChained)
	}
	f.state.wait()
	v, err := f.state.peek()
	f.consume()
	return v, err
}

// Wait blocks until the result is available without consuming the future.
func (f *ThenFuture[T]) Wait() {
	f.state.wait()
}

// WaitFor blocks until the result is available or d elapses, reporting
// which happened.
func (f *ThenFuture[T]) WaitFor(d time.Duration) bool {
	return f.state.waitFor(d)
}

// WaitUntil blocks until the result is available or deadline passes.
func (f *ThenFuture[T]) WaitUntil(deadline time.Time) bool {
	return f.state.waitFor(time.Until(deadline))
}

// Then installs fn as the single continuation for f, consuming f, and
// returns a new future for fn's result. fn receives f's resolved value and
// error exactly as Get would have returned them. If fn panics, the panic is
// recovered and delivered through the returned future as a [PanicError]
// (or as the panic value itself, if that is already an error), matching spec.md §4.4's "exceptions propagate through the chain."
//
// Then is a free function, not a method on [*ThenFuture[T]], because Go
// methods cannot introduce a new type parameter (U) beyond the ones on
// their receiver's type.
func Then[T, U any](f *ThenFuture[T], fn func(T, error) (U, error)) *ThenFuture[U] {
	if !f.Valid() {
		panicProgrammerError(ErrFutureAlreadyChained)
	}
	closer := f.closer
	f.valid = false
	f.closer = nil
	runtime.SetFinalizer(f, nil)

	promise := NewThenPromise[U]()
	result := promise.GetFuture()
	// The join slot travels with the chain rather than firing here: the
	// continuation below can run synchronously on the very goroutine that
	// will eventually signal closer's completion (e.g. a CustomAsync
	// worker, mid SetValue, before its own deferred Done() runs), so
	// invoking closer inline would self-deadlock. Carrying it onto result
	// defers the join to whoever eventually calls result.Get() or
	// result.Close(), which the original's then() does too by forwarding
	// call_in_destructor onto the chained future.
	result.closer = closer

	f.state.installContinuation(func() {
		defer func() {
			if r := recover(); r != nil {
				promise.SetException(asError(r))
			}
		}()
		v, err := f.state.peek()
		out, ferr := fn(v, err)
		if ferr != nil {
			promise.SetException(ferr)
			return
		}
		promise.SetValue(out)
	})
	return result
}

// ThenPromise is the writable side of a [ThenFuture], ported from the
// original's then_promise<T>. If a ThenPromise is garbage-collected before
// either SetValue or SetException is called, its future resolves to
// [ErrBrokenPromise] -- the closest Go analogue of the original's
// destructor-driven "broken promise" behavior, using [runtime.SetFinalizer]
// in place of a deterministic destructor.
type ThenPromise[T any] struct {
	state     *futureSharedState[T]
	retrieved bool
}

// NewThenPromise constructs an unfulfilled promise/future pair.
func NewThenPromise[T any]() *ThenPromise[T] {
	p := &ThenPromise[T]{state: newFutureSharedState[T]()}
	runtime.SetFinalizer(p, finalizeThenPromise[T])
	return p
}

func finalizeThenPromise[T any](p *ThenPromise[T]) {
	if !p.state.ready() {
		var zero T
		logEvent(nil, "promise", LevelWarn, "promise dropped while still pending", ErrBrokenPromise)
		p.state.setResult(zero, ErrBrokenPromise)
	}
}

// SetValue fulfills the promise with v. Safe to call from any goroutine.
func (p *ThenPromise[T]) SetValue(v T) {
	runtime.SetFinalizer(p, nil)
	p.state.setResult(v, nil)
}

// SetException fulfills the promise with an error in place of a value.
// Safe to call from any goroutine.
func (p *ThenPromise[T]) SetException(err error) {
	runtime.SetFinalizer(p, nil)
	var zero T
	p.state.setResult(zero, err)
}

// GetFuture returns the future paired with this promise. It may only be
// called once; a second call panics with a [ProgrammerError] wrapping
// [ErrFutureAlreadyRetrieved].
func (p *ThenPromise[T]) GetFuture() *ThenFuture[T] {
	if p.retrieved {
		panicProgrammerError(ErrFutureAlreadyRetrieved)
	}
	p.retrieved = true
	f := &ThenFuture[T]{state: p.state, valid: true}
	// Backstop for a chain whose tail future is dropped without Get or
	// Close ever being called: the finalizer joins whatever background
	// work closer represents so it isn't silently leaked. Cleared as soon
	// as runCloser fires through any other path.
	runtime.SetFinalizer(f, finalizeThenFuture[T])
	return f
}

func finalizeThenFuture[T any](f *ThenFuture[T]) {
	f.runCloser()
}
