package resumable

import "github.com/resumable-go/resumable/internal/stackctx"

// Self is the handle a [Coroutine] body uses to suspend itself. It is
// supplied as the sole argument to the body function, in place of the
// original's `self::yield()` static, since Go has no notion of "the
// currently running coroutine" available to free-standing code without
// some form of handle.
type Self struct {
	ctx *stackctx.Context
}

// Yield suspends the calling coroutine, returning control to whichever
// goroutine most recently called [Coroutine.Call]. The next Call resumes
// execution right after this Yield.
func (s *Self) Yield() {
	s.ctx.SwitchOutOf()
}

// Coroutine is a one-shot resumable function: calling it runs (or resumes)
// its body until the body either calls [Self.Yield] or returns, matching
// spec.md §4.2's RunState machine. A zero-value Coroutine (`var c
// Coroutine`, or one obtained via `new(Coroutine)`) is Uninitialized and
// must be given a body via [NewCoroutine] or [Coroutine.Reset] before it
// can be called; state is embedded by value specifically so that the zero
// value is safe to inspect (Callable/State) without nil-panicking, matching
// the original's no-body-constructed `coroutine empty;`.
type Coroutine struct {
	ctx       *stackctx.Context
	self      *Self
	state     runStateBox
	stackSize int
	logger    Logger
}

// CoroutineBody is the function a [Coroutine] runs. It receives a [Self] for
// yielding and returns nothing; a panic raised in the body propagates to
// the caller of [Coroutine.Call] (spec.md §4.2, "exceptions raised in the
// body surface at the call site").
type CoroutineBody func(self *Self)

// NewCoroutine constructs a callable Coroutine around body.
func NewCoroutine(body CoroutineBody, opts ...Option) *Coroutine {
	cfg := resolveOptions(opts)
	c := &Coroutine{
		stackSize: cfg.stackSize,
		logger:    cfg.logger,
	}
	c.install(body)
	return c
}

// install prepares ctx/self around body and transitions the coroutine from
// Uninitialized (its zero value) or Finished into NotStarted -- the one
// place that edge of the lifecycle is entered, shared by [NewCoroutine] and
// [Coroutine.Reset].
func (c *Coroutine) install(body CoroutineBody) {
	self := &Self{}
	c.ctx = stackctx.New(c.stackSize, func(arg any) {
		defer func() {
			c.state.Store(Finished)
		}()
		body(self)
	}, nil)
	self.ctx = c.ctx
	c.self = self
	c.state.Store(NotStarted)
}

// Callable reports whether Call may currently be invoked.
func (c *Coroutine) Callable() bool {
	switch c.state.Load() {
	case NotStarted, Running:
		return true
	default:
		return false
	}
}

// State returns the coroutine's current [RunState].
func (c *Coroutine) State() RunState { return c.state.Load() }

// Call runs the body until its next [Self.Yield] or return. It panics with
// a [ProgrammerError] wrapping [ErrCoroutineNotCallable] if the coroutine is
// Finished or Uninitialized, matching the original's assert(*this) guard in
// operator()().
func (c *Coroutine) Call() {
	if !c.Callable() {
		panicProgrammerError(ErrCoroutineNotCallable)
	}
	if c.state.Load() == NotStarted {
		c.state.Store(Running)
	}
	logEvent(c.logger, "coroutine", LevelDebug, "switching into coroutine", nil)
	c.ctx.SwitchInto()
}

// Reset rewinds a Finished coroutine so it can be called again with a new
// body, mirroring the original's reset(func).
func (c *Coroutine) Reset(body CoroutineBody) {
	if c.state.Load() == Running {
		panicProgrammerError(ErrCoroutineNotCallable)
	}
	c.install(body)
}
