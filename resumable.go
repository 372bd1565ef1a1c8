package resumable

import "github.com/resumable-go/resumable/internal/golocal"

// Resumable runs body on a dedicated [Coroutine], letting it call [Await]
// as if it were ordinary synchronous code, and returns a future for its
// eventual (R, error) result. This is the package's entry point, the Go
// analogue of the original's resumable() template function.
//
// body's goroutine is pushed onto the active-coroutine stack for its
// entire lifetime (across every suspend/resume), and popped only once it
// returns, matching spec.md §4.5's requirement that nested Await calls
// resolve against the innermost enclosing Resumable without any extra
// parameter threading.
func Resumable[R any](body func() (R, error), opts ...Option) *ThenFuture[R] {
	cfg := resolveOptions(opts)

	promise := NewThenPromise[R]()
	future := promise.GetFuture()

	rc := &runningCoroutine{queue: cfg.readyQueue}

	var coro *Coroutine
	coro = NewCoroutine(func(self *Self) {
		rc.self = self
		golocal.Push(rc)
		defer golocal.Pop()
		defer func() {
			if r := recover(); r != nil {
				promise.SetException(asError(r))
			}
		}()
		v, err := body()
		if err != nil {
			promise.SetException(err)
			return
		}
		promise.SetValue(v)
	}, opts...)
	rc.coro = coro

	logEvent(cfg.logger, "resumable", LevelInfo, "starting resumable body", nil)
	coro.Call()
	return future
}
