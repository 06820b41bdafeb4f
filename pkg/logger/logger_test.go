package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	// 未初始化时调用不应 panic
	Info("hello")
	Infof("[Test] %d", 1)
	Sync()
}

func TestReplaceRoutesMessages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Replace(nil)

	Infof("[RewardSequencer] phase %s", "shaking")
	Warn("playback rejected", zap.String("asset", "reward.mp3"))

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "[RewardSequencer] phase shaking", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "reward.mp3", entries[1].ContextMap()["asset"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "input %q", in)
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	SetLevel("error")
	assert.Equal(t, zapcore.ErrorLevel, Level())
	SetLevel("nonsense")
	assert.Equal(t, zapcore.ErrorLevel, Level())
	SetLevel("info")
	assert.Equal(t, zapcore.InfoLevel, Level())
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_DIR", "")
	assert.Empty(t, logFilePath())

	t.Setenv("LOG_DIR", "/tmp/logs")
	assert.Equal(t, "/tmp/logs/giftbox.log", logFilePath())

	t.Setenv("LOG_FILE", "/var/log/x.log")
	assert.Equal(t, "/var/log/x.log", logFilePath())
}
