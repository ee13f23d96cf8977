package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "console", ""} {
		l, err := New(Config{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestLogger_Fields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).Named("dataset").With(String("kind", "cluster"))

	l.Info("dataset loaded",
		Int("rows", 12),
		Float64("ratio", 0.5),
		Bool("cached", true),
		Duration("elapsed", time.Second),
		Err(errors.New("boom")),
		Any("sheets", []string{"afiliasi"}),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dataset", entry.LoggerName)
	assert.Equal(t, "dataset loaded", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "cluster", ctx["kind"])
	assert.Equal(t, int64(12), ctx["rows"])
	assert.Equal(t, true, ctx["cached"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	l := NewFromCore(core)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")
	assert.Equal(t, 2, logs.Len())
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := NewNop().With(String("a", "b")).Named("x")
	l.Info("ignored")
	assert.NoError(t, l.Sync())
	assert.Equal(t, "<nil>", Err(nil).Value)
}
