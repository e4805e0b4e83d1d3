package validator

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})), &buf
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

func TestIsValidHost(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"example.com", true},
		{"sub.example.com", true},
		{"localhost", true},
		{"192.168.1.1", true},
		{"0.0.0.0", true},
		{"my-host", true},
		{"", false},
		{"invalid@hostname", false},
		{"http://example.com", false},
		{"example..com", false},
		{"example.com/", false},
		{"-example.com", false},
		{"example.com.", false},
		{"a.-b", false},
		{"a--b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidHost(tt.input); got != tt.want {
				t.Fatalf("IsValidHost(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidPort(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{"80", 80, true},
		{"443", 443, true},
		{"8080", 8080, true},
		{"lower bound", 1, true},
		{"upper bound", 65535, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"too large", 65536, false},
		{"fraction", 3.14, false},
		{"NaN", math.NaN(), false},
		{"infinity", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPort(tt.input); got != tt.want {
				t.Fatalf("IsValidPort(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	t.Run("absent stays absent", func(t *testing.T) {
		assert.Nil(t, ToNumber(nil))
	})

	t.Run("numeric string", func(t *testing.T) {
		got := ToNumber(ptr.To("123"))
		require.NotNil(t, got)
		assert.Equal(t, 123.0, *got)
	})

	t.Run("zero is present", func(t *testing.T) {
		got := ToNumber(ptr.To("0"))
		require.NotNil(t, got)
		assert.Equal(t, 0.0, *got)
	})

	t.Run("empty string is NaN", func(t *testing.T) {
		got := ToNumber(ptr.To(""))
		require.NotNil(t, got)
		assert.True(t, math.IsNaN(*got))
	})

	t.Run("garbage is NaN", func(t *testing.T) {
		got := ToNumber(ptr.To("eighty"))
		require.NotNil(t, got)
		assert.True(t, math.IsNaN(*got))
	})

	t.Run("hex literal is NaN", func(t *testing.T) {
		got := ToNumber(ptr.To("0x1F90"))
		require.NotNil(t, got)
		assert.True(t, math.IsNaN(*got))
	})
}

func TestValidate(t *testing.T) {
	t.Run("absent input returns default silently", func(t *testing.T) {
		log, buf := newTestLogger()
		got := Validate[string](nil, "hostname", func(string) bool { return false }, "MANTLE_HOST", log)
		assert.Equal(t, "hostname", got)
		assert.Equal(t, 0, countLines(buf.String()))
	})

	t.Run("invalid input returns default and logs once", func(t *testing.T) {
		log, buf := newTestLogger()
		got := Validate(ptr.To("invalid"), "hostname", func(string) bool { return false }, "MANTLE_HOST", log)
		assert.Equal(t, "hostname", got)
		assert.Equal(t, 1, countLines(buf.String()))
		assert.Contains(t, buf.String(), "MANTLE_HOST")
		assert.Contains(t, buf.String(), "invalid")
		assert.Contains(t, buf.String(), "hostname")
	})

	t.Run("valid input is returned unchanged", func(t *testing.T) {
		log, buf := newTestLogger()
		got := Validate(ptr.To("valid"), "hostname", func(string) bool { return true }, "MANTLE_HOST", log)
		assert.Equal(t, "valid", got)
		assert.Equal(t, 0, countLines(buf.String()))
	})

	t.Run("nil logger is tolerated", func(t *testing.T) {
		got := Validate(ptr.To(7), 1, func(int) bool { return false }, "X", nil)
		assert.Equal(t, 1, got)
	})
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		want     int
		logLines int
	}{
		{"absent", nil, 4000, 0},
		{"valid", ptr.To("8080"), 8080, 0},
		{"out of range", ptr.To("99999"), 4000, 1},
		{"zero", ptr.To("0"), 4000, 1},
		{"fraction", ptr.To("80.5"), 4000, 1},
		{"not a number", ptr.To("http"), 4000, 1},
		{"empty", ptr.To(""), 4000, 1},
		{"hex", ptr.To("0x1F90"), 4000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newTestLogger()
			got := ValidatePort("CONCH", tt.input, 4000, log)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.logLines, countLines(buf.String()))
			if tt.logLines > 0 {
				assert.Contains(t, buf.String(), "CONCH_PORT")
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		want     string
		logLines int
	}{
		{"absent", nil, "0.0.0.0", 0},
		{"valid", ptr.To("localhost"), "localhost", 0},
		{"scheme", ptr.To("http://localhost"), "0.0.0.0", 1},
		{"empty", ptr.To(""), "0.0.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newTestLogger()
			got := ValidateHost("CONCH", tt.input, "0.0.0.0", log)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.logLines, countLines(buf.String()))
			if tt.logLines > 0 {
				assert.Contains(t, buf.String(), "CONCH_HOST")
			}
		})
	}
}
