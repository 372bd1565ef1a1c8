package resumable

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogifaceLogger_RoutesThroughLogAndRespectsLevel(t *testing.T) {
	var buf logBuf
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := NewLogifaceLogger(handler)

	require.True(t, logger.IsEnabled(LevelInfo))

	SetStructuredLogger(logger)
	defer SetStructuredLogger(nil)

	future := Resumable(func() (int, error) { return 1, nil })
	_, _ = future.Get()

	require.NotEmpty(t, buf.String())
}

type logBuf struct {
	data []byte
}

func (b *logBuf) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *logBuf) String() string { return string(b.data) }
