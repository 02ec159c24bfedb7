package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoggerLevels tests that messages above the configured level are dropped
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(LogLevelInfo, &buf)

	logger.Error("failed %d", 1)
	logger.Warn("careful")
	logger.Info("loaded %s", "sample")
	logger.Debug("hidden")
	logger.Trace("hidden too")

	out := buf.String()
	assert.Contains(t, out, "failed 1")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "loaded sample")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}

// TestLoggerTrace tests that trace output is tagged
func TestLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(LogLevelTrace, &buf)
	logger.Trace("step %d", 3)
	assert.True(t, strings.Contains(buf.String(), "[TRACE] step 3"), buf.String())
}

// TestParseLogLevel tests level name parsing
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"ERROR", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{" Debug ", LogLevelDebug, true},
		{"TRACE", LogLevelTrace, true},
		{"", LogLevelInfo, false},
		{"loud", LogLevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
