package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapAdapter(zap.New(core)), logs
}

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	log, logs := observed(zapcore.InfoLevel)

	log.Debug("hidden", nil)
	log.Info("processing job", map[string]interface{}{"jobKey": int64(7), "taskType": "map-display-parameters"})
	log.Warn("cache miss", nil)

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "processing job", entry.Message)
	assert.Equal(t, int64(7), entry.ContextMap()["jobKey"])
	assert.Equal(t, "map-display-parameters", entry.ContextMap()["taskType"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestZapLogger_WithFieldsIsSticky(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	child := log.WithFields(map[string]interface{}{"taskType": "taxonomy-lookup"})
	child.With(map[string]interface{}{"set": "viewer_context"}).Error("lookup failed", nil)
	log.Info("parent", nil)

	require.Equal(t, 2, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "taxonomy-lookup", ctx["taskType"])
	assert.Equal(t, "viewer_context", ctx["set"])
	assert.Empty(t, logs.All()[1].ContextMap())
}

func TestZapLogger_WithError(t *testing.T) {
	log, logs := observed(zapcore.InfoLevel)

	log.WithError(errors.New("redis down")).Warn("cache unavailable", map[string]interface{}{
		"cause": errors.New("dial tcp"),
	})

	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "redis down", ctx["error"])
	assert.Equal(t, "dial tcp", ctx["cause"])
}

func TestToZapFields_SortedKeys(t *testing.T) {
	fields := toZapFields(map[string]interface{}{"b": 1, "a": 2, "c": 3})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
	assert.Nil(t, toZapFields(nil))
}

func TestNew_Levels(t *testing.T) {
	l, err := New("debug", "json", "stderr")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("bogus", "console", "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewTestLogger(t *testing.T) {
	log := NewTestLogger(t)
	log.Info("visible under -v", map[string]interface{}{"ok": true})
	NewNoOpLogger().Error("dropped", nil)
}
