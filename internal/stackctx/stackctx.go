// Package stackctx provides the stack-swapping primitive the coroutine
// layer is built on.
//
// The reference implementation this package ports (skarupke/compile_time's
// stack_swap.h/.cpp) hand-writes System V and Windows x64 assembly
// trampolines that save callee-saved registers, pivot the stack pointer to
// an alternate, heap-allocated stack, and jump. Go gives user code no
// access to the goroutine stack-switching machinery the runtime already
// performs on every park/unpark, and there is no idiomatic way to splice a
// hand-written assembly trampoline into that machinery. Since the runtime
// scheduler already does exactly what stack_swap.cpp does by hand -- save
// the current execution state, switch to a different stack, resume
// elsewhere -- a Context here is one dedicated goroutine parked on a
// channel at every suspension point, instead of a raw stack buffer.
package stackctx

import "fmt"

// Trampoline is the entry point run on the alternate context. It receives
// the user pointer supplied at construction (or reset) time, exactly as
// the original's `void (*)(void*)` trampoline does.
type Trampoline func(arg any)

// Context represents a callable alternate execution context, backed by a
// single dedicated goroutine. A Context must not be copied after
// construction: SwitchOutOf can only be called from the goroutine that
// SwitchInto most recently started or resumed.
type Context struct {
	stackSize int

	trampoline Trampoline
	arg        any

	// toAlt wakes the alternate goroutine; toCaller wakes whichever
	// goroutine called SwitchInto. Both are unbuffered: a send only
	// completes once the other side is parked waiting to receive it,
	// which is what gives us the "exactly one side active at a time"
	// invariant spec.md requires of StackContext.
	toAlt    chan struct{}
	toCaller chan struct{}

	started bool
	done    bool
	panicVal any
	hasPanic bool
}

// New prepares a Context over a trampoline and user argument. stackSize is
// retained purely for API fidelity with the original constructor's
// stack-region-size parameter: Go goroutine stacks start small (2KiB) and
// grow on demand, so the value has no operational effect here. It is
// surfaced via StackSize so callers porting stack-size tuning code have
// somewhere for it to land.
func New(stackSize int, trampoline Trampoline, arg any) *Context {
	return &Context{
		stackSize:  stackSize,
		trampoline: trampoline,
		arg:        arg,
		toAlt:      make(chan struct{}),
		toCaller:   make(chan struct{}),
	}
}

// StackSize returns the stack-size hint this Context was constructed or
// reset with. See New's doc comment: it does not affect execution.
func (c *Context) StackSize() int { return c.stackSize }

// Done reports whether the trampoline has returned (the alternate context
// is no longer resumable).
func (c *Context) Done() bool { return c.done }

// SwitchInto saves the caller's place and resumes the alternate context: on
// the first call this starts the trampoline goroutine; on later calls it
// unparks a goroutine waiting inside SwitchOutOf. It blocks until the
// alternate context either calls SwitchOutOf again or the trampoline
// returns. If the trampoline panicked since the last SwitchInto, that panic
// value is re-raised here, in the caller's goroutine -- this is the literal
// analogue of spec.md §4.1's requirement that exceptions raised inside the
// alternate be catchable at the switch_into call site.
func (c *Context) SwitchInto() {
	if c.done {
		panic("stackctx: SwitchInto called on a finished context")
	}
	if !c.started {
		c.started = true
		go c.run()
	} else {
		c.toAlt <- struct{}{}
	}
	<-c.toCaller
	if c.hasPanic {
		p := c.panicVal
		c.hasPanic = false
		c.panicVal = nil
		panic(p)
	}
}

// SwitchOutOf is callable only from inside the trampoline goroutine. It
// signals the caller that this context is suspended, then blocks until the
// next SwitchInto resumes it.
func (c *Context) SwitchOutOf() {
	c.toCaller <- struct{}{}
	<-c.toAlt
}

// Reset rewinds the context to re-invoke a (possibly new) trampoline. Legal
// only once the previous trampoline goroutine has returned.
func (c *Context) Reset(trampoline Trampoline, arg any) {
	if c.started && !c.done {
		panic("stackctx: Reset called while the context is still running")
	}
	c.trampoline = trampoline
	c.arg = arg
	c.started = false
	c.done = false
	c.hasPanic = false
	c.panicVal = nil
	c.toAlt = make(chan struct{})
	c.toCaller = make(chan struct{})
}

// run is the goroutine body: it plays the role of the fixed trampoline
// entry point the original jumps to on first switch-in.
func (c *Context) run() {
	defer func() {
		if r := recover(); r != nil {
			c.hasPanic = true
			c.panicVal = r
		}
		c.done = true
		c.toCaller <- struct{}{}
	}()
	c.trampoline(c.arg)
}

// String aids debugging/test failure output.
func (c *Context) String() string {
	return fmt.Sprintf("stackctx.Context{started=%t done=%t}", c.started, c.done)
}
