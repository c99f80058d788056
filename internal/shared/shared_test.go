package shared

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestParseLevel(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  log.Level
	}{
		{name: "empty defaults to warn", input: "", want: log.WarnLevel},
		{name: "warning alias", input: "WARNING", want: log.WarnLevel},
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "padded info", input: "  info ", want: log.InfoLevel},
		{name: "error", input: "error", want: log.ErrorLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("Unknown Level", func(t *testing.T) {
		if _, err := ParseLevel("chatty"); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("WithLogger Adds Fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.InfoLevel)

		WithLogger(logger, "request_id", "abc").Info("handled")

		out := buf.String()
		if !strings.Contains(out, "handled") || !strings.Contains(out, "request_id=abc") {
			t.Errorf("expected message and field in output, got %q", out)
		}
	})

	t.Run("Level Filters Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected debug to be filtered, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected valid uuid, got %q: %v", id, err)
	}
	if id == GenerateID() {
		t.Error("expected unique ids")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]any{"url": "https://aac.saavncdn.com/a.mp4?x=1&y=2"}

	t.Run("Compact Keeps Ampersands", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != `{"url":"https://aac.saavncdn.com/a.mp4?x=1&y=2"}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("Pretty Indents", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(out), "\n  \"url\"") {
			t.Errorf("expected indented output, got %s", out)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	t.Run("Rejects Non HTTP URLs", func(t *testing.T) {
		err := OpenBrowser(context.Background(), "file:///etc/passwd")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Unsupported Platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		err := OpenBrowser(context.Background(), "https://example.com")
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{262, "4:22"},
		{3725, "1:02:05"},
		{-4, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
