package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New(true, false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	debug, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithOutput(t *testing.T) {
	l, err := NewWithOutput(false, false, "stderr")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = NewWithOutput(false, false, "/nonexistent-dir/portfolio.log")
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l, err := New(false, false)
	require.NoError(t, err)
	assert.Same(t, l, OrNop(l))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "short", TruncateForLog("  short  ", 10))
	assert.Equal(t, "abc...", TruncateForLog("abcdef", 3))
	assert.Equal(t, "日本...", TruncateForLog("日本語", 2))
}
