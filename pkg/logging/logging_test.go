package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"upper case info", "INFO", slog.LevelInfo, false},
		{"warn", "warn", slog.LevelWarn, false},
		{"warning alias", "warning", slog.LevelWarn, false},
		{"mixed case warning", "WaRnInG", slog.LevelWarn, false},
		{"upper case debug", "DEBUG", slog.LevelDebug, false},
		{"error with spaces", " error ", slog.LevelError, false},
		{"unknown", "verbose", slog.LevelInfo, true},
		{"empty", "", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_SetLevelGatesOutput(t *testing.T) {
	var buf bytes.Buffer
	c := New("conch", &buf)

	c.Logger().Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, c.SetLevel("debug"))
	assert.Equal(t, slog.LevelDebug, c.Level())

	c.Logger().Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "logger=conch")
}

func TestConfig_SetLevelUnknownKeepsLevel(t *testing.T) {
	c := New("conch", &bytes.Buffer{}, WithLevel(slog.LevelWarn))

	assert.Error(t, c.SetLevel("loud"))
	assert.Equal(t, slog.LevelWarn, c.Level())
}

func TestConfig_InstancesAreIndependent(t *testing.T) {
	a := New("a", &bytes.Buffer{})
	b := New("b", &bytes.Buffer{})

	require.NoError(t, a.SetLevel("error"))
	assert.Equal(t, slog.LevelError, a.Level())
	assert.Equal(t, slog.LevelInfo, b.Level())
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	c := New("conch", &buf, WithJSON(), WithAttrs("version", "1.2.3"))

	c.Logger().Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "conch", rec["logger"])
	assert.Equal(t, "1.2.3", rec["version"])
	assert.Equal(t, "v", rec["k"])
}

func TestIsValidLevel(t *testing.T) {
	assert.True(t, IsValidLevel("info"))
	assert.False(t, IsValidLevel("trace"))
}

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name string
		env  string
		want slog.Level
	}{
		{"unset", "", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"upper case", "ERROR", slog.LevelError},
		{"invalid keeps info", "loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)

			c := SetDefaultStructuredLogger("conch", "1.2.3")
			assert.Equal(t, tt.want, c.Level())
			assert.Same(t, c.Logger(), slog.Default())
		})
	}
}
