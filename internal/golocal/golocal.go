// Package golocal implements the per-thread "currently executing coroutine"
// handle stack spec.md §3 calls ActiveCoroutine.
//
// The original keeps a thread_local std::stack<ActiveCoroutine>: a nested
// `await` identifies its innermost enclosing coroutine without any
// parameter being threaded through the call chain. Go has no language-level
// thread-local storage, and ordinarily that's a feature -- explicit
// parameter/context passing is the idiomatic way to carry call-scoped
// state. It doesn't work here: `await` has to read naturally inside
// arbitrary user call chains with no extra parameter, exactly like a
// synchronous return, which is the entire point of this runtime. The
// joeycumines-go-utilpkg pack names a dedicated goroutineid module for this
// exact concern, which is the grounding for doing it here too: extract the
// calling goroutine's runtime id and key a small map on it.
//
// This is safe specifically because every Coroutine pins its body to one
// dedicated goroutine for its entire life (see internal/stackctx): the
// active-coroutine *stack* never has to migrate between goroutines, only
// the OS thread that happens to be running a given pinned goroutine does,
// which this package never observes.
package golocal

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Handle is the payload pushed/popped on the active-coroutine stack. It is
// an opaque `any` here so that package resumable can store whatever it
// needs (a pointer to its internal runningCoroutine) without golocal
// depending on it.
type Handle = any

var (
	mu     sync.Mutex
	stacks = make(map[uint64][]Handle)
)

// goroutineID extracts the numeric id the runtime assigns the calling
// goroutine, by parsing the fixed "goroutine N [" prefix runtime.Stack
// always produces. This allocates a small buffer per call; callers on the
// hot path (push/pop, once per Call()/await, not per instruction) can
// afford it.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	const prefix = "goroutine "
	buf = bytes.TrimPrefix(buf, []byte(prefix))
	if end := bytes.IndexByte(buf, ' '); end >= 0 {
		buf = buf[:end]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		panic("golocal: could not parse goroutine id: " + err.Error())
	}
	return id
}

// Push installs h as the new top of the calling goroutine's active-coroutine
// stack.
func Push(h Handle) {
	id := goroutineID()
	mu.Lock()
	stacks[id] = append(stacks[id], h)
	mu.Unlock()
}

// Pop removes the top of the calling goroutine's active-coroutine stack. It
// panics if the stack is empty, since Push/Pop must always be paired by the
// caller (spec.md §3: "when it yields or returns, the handle is popped").
func Pop() {
	id := goroutineID()
	mu.Lock()
	defer mu.Unlock()
	s := stacks[id]
	if len(s) == 0 {
		panic("golocal: Pop called with an empty active-coroutine stack")
	}
	s = s[:len(s)-1]
	if len(s) == 0 {
		delete(stacks, id)
	} else {
		stacks[id] = s
	}
}

// Current returns the top of the calling goroutine's active-coroutine
// stack, or nil if it is empty (no coroutine is currently executing on this
// goroutine).
func Current() Handle {
	id := goroutineID()
	mu.Lock()
	defer mu.Unlock()
	s := stacks[id]
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}
