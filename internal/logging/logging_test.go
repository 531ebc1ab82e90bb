package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARNING ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_JSONFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "warn", Format: FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("route", "taxes.index").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"route":"taxes.index"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNew_TeesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewkit.log")

	var buf bytes.Buffer
	logger, closer, err := New(Config{Format: FormatConsole, File: path}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info().Msg("server started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"server started"`) {
		t.Fatalf("expected JSON line in file, got %s", data)
	}
	if !strings.Contains(buf.String(), "server started") {
		t.Fatalf("expected console output, got %s", buf.String())
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, _, err := New(Config{Format: "xml"}, nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
