package logger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/brightlane/sitecms/internal/infrastructure/config"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "chatty", Format: "json"})
	assert.Error(t, err)
}

func TestNewBuildsBothFormats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New(config.LoggerConfig{Level: "info", Format: format, Output: "stdout"})
		assert.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestLogHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).WithComponent("test")

	l.LogMutation("blogs", "toggle_star", 3)
	l.LogHTTPRequest("GET", "/api/blogs", "req-1", "127.0.0.1", 200, 1.5, nil)
	l.LogHTTPRequest("PUT", "/api/blogs/1", "req-2", "127.0.0.1", 500, 2.5, errors.New("disk full"))
	l.LogSecurityEvent("login_failed", "10.0.0.1", map[string]interface{}{"path": "/admin/login"})

	entries := logs.All()
	assert.Equal(t, 4, len(entries))

	assert.Equal(t, "Collection mutated", entries[0].Message)
	assert.Equal(t, "blogs", entries[0].ContextMap()["collection"])
	assert.Equal(t, "test", entries[0].ContextMap()["component"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "disk full", entries[2].ContextMap()["error"])

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, "login_failed", entries[3].ContextMap()["security_event"])
}
