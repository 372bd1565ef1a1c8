package resumable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingLogger captures every entry passed to Log, for asserting on
// which logger a given call site actually used.
type recordingLogger struct {
	entries []LogEntry
}

func (l *recordingLogger) Log(entry LogEntry) { l.entries = append(l.entries, entry) }

func (l *recordingLogger) IsEnabled(level LogLevel) bool { return true }

// TestWithLogger_TakesPrecedenceOverGlobal exercises the maintainer's
// "disguised no-op" concern directly: a Coroutine constructed with
// WithLogger must have its events routed to that logger instead of the
// package-level one installed via SetStructuredLogger.
func TestWithLogger_TakesPrecedenceOverGlobal(t *testing.T) {
	global := &recordingLogger{}
	SetStructuredLogger(global)
	defer SetStructuredLogger(nil)

	instance := &recordingLogger{}
	c := NewCoroutine(func(self *Self) {}, WithLogger(instance))
	c.Call()

	require.NotEmpty(t, instance.entries)
	require.Empty(t, global.entries)
}

// TestResumable_WithLoggerTakesPrecedenceOverGlobal mirrors the above for
// Resumable, whose "starting resumable body" event is logged through
// cfg.logger rather than unconditionally through the global.
func TestResumable_WithLoggerTakesPrecedenceOverGlobal(t *testing.T) {
	global := &recordingLogger{}
	SetStructuredLogger(global)
	defer SetStructuredLogger(nil)

	instance := &recordingLogger{}
	future := Resumable(func() (int, error) { return 1, nil }, WithLogger(instance))
	_, _ = future.Get()

	require.NotEmpty(t, instance.entries)
	require.Empty(t, global.entries)
}
