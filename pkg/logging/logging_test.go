package logging

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInit_FiltersAndTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)
	t.Cleanup(func() { Init(LevelInfo, io.Discard) })

	Debug("slides", "hidden %d", 1)
	Info("deck", "loaded %d slides", 8)
	Error("app", errors.New("boom"), "reload failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "loaded 8 slides")
	assert.Contains(t, out, "subsystem=deck")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "level=ERROR")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
