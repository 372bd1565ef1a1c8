// logadapter.go wires github.com/joeycumines/logiface (backed by
// log/slog via github.com/joeycumines/logiface-slog) as a concrete
// [Logger] implementation, mirroring how the teacher's own pack composes
// the two: logiface as the structured-logging facade, slog as the
// zero-dependency backend it writes through.
package resumable

import (
	"log/slog"

	"github.com/joeycumines/logiface"
	slogadapter "github.com/joeycumines/logiface-slog"
)

// LogifaceLogger adapts a *logiface.Logger[*slogadapter.Event] to this
// package's [Logger] interface.
type LogifaceLogger struct {
	logger *logiface.Logger[*slogadapter.Event]
}

// NewLogifaceLogger builds a [Logger] that writes through handler via
// logiface and slog. A nil handler defaults to the handler of
// slog.Default().
func NewLogifaceLogger(handler slog.Handler) *LogifaceLogger {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &LogifaceLogger{
		logger: logiface.New[*slogadapter.Event](slogadapter.NewLogger(handler)),
	}
}

// IsEnabled implements Logger.
func (a *LogifaceLogger) IsEnabled(level LogLevel) bool {
	return logifaceLevel(level) <= a.logger.Level()
}

// Log implements Logger, translating a LogEntry into one logiface Builder
// call chain.
func (a *LogifaceLogger) Log(entry LogEntry) {
	b := a.logger.Build(logifaceLevel(entry.Level))
	if b == nil || !b.Enabled() {
		return
	}
	b = b.Str("category", entry.Category)
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func logifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
