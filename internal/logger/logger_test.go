package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	enriched := l.With(String("component", "test"))
	assert.NotSame(t, l, enriched)
	enriched.Info("filtered out at warn level")
}

func TestFromContext(t *testing.T) {
	nop := NewNop()
	ctx := WithContext(context.Background(), nop)
	assert.Same(t, nop, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	fallback.Error("must not panic")
}

func TestFromContextOr(t *testing.T) {
	stored := NewNop()
	fallback := &NoOpLogger{}

	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))
	assert.Same(t, stored, FromContextOr(WithContext(context.Background(), stored), fallback))
}
