package logsvc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/user"
)

func newObservedLogger(t *testing.T) (*RollbarLogger, *observer.ObservedLogs) {
	zc, logs := observer.New(zapcore.DebugLevel)
	l := NewRollbarLogger(zap.New(zc), &core.Config{Env: core.EnvTest})
	l.Enable(false)
	return l, logs
}

func TestRollbarLogger_levels(t *testing.T) {
	l, logs := newObservedLogger(t)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "warn", entries[2].Message)
}

func TestRollbarLogger_fields(t *testing.T) {
	l, logs := newObservedLogger(t)

	usr := user.User{ID: "kim01", Name: "Kim"}
	l.Error("boom", errors.New("db down"), map[string]interface{}{"op": "list"}, usr, usr, 42)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "db down", ctx["error0"])
	assert.Equal(t, map[string]interface{}{"op": "list"}, ctx["extras"])
	assert.Equal(t, "kim01", ctx["user"])
	assert.EqualValues(t, 42, ctx["arg4"])
}

func TestNewZap_file(t *testing.T) {
	dir := t.TempDir()
	conf := &core.Config{Log: core.LogConfig{Dir: dir, Level: "debug"}}

	zl, err := NewZap("API", conf)
	require.NoError(t, err)
	zl.Info("hello")
	_ = zl.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "api.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"logger":"API"`)
}
