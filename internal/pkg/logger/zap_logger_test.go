package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAttachesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithZap(zap.New(core))

	l.Info("LEADERBOARD", "Skipped corrupt record", map[string]interface{}{"user_name": "kim"})
	l.Error("CHAT", "Extraction failed", map[string]interface{}{"error": "boom"})
	l.Debug("CHAT", "nil details", nil)

	entries := logs.All()
	assert.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "LEADERBOARD", first["module"])
	assert.Equal(t, map[string]interface{}{"user_name": "kim"}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error_ref"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	assert.Equal(t, map[string]interface{}{}, entries[2].ContextMap()["details"])
}
