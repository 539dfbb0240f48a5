package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       LogConfig
		wantDebug bool
		contains  string
	}{
		{"console info", LogConfig{Level: "info", Format: "console"}, false, "document written"},
		{"json debug", LogConfig{Level: "debug", Format: "json"}, true, `"msg":"document written"`},
		{"unknown level falls back to info", LogConfig{Level: "verbose"}, false, "document written"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newLogger(tt.cfg, zapcore.AddSync(&buf))

			log.Debug("debug line")
			log.Info("document written", zap.Int("pages", 2))
			_ = log.Sync()

			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output %q does not contain %q", out, tt.contains)
			}
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug line logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNewLoggerFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "codecouleurs.log")

	var console bytes.Buffer
	log := newLogger(LogConfig{Level: "info", Format: "console", File: file, MaxSize: 1}, zapcore.AddSync(&console))
	log.Warn("logo not found", zap.String("path", "/missing.png"))
	_ = log.Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"logo not found"`) {
		t.Errorf("log file = %q, want a JSON entry", data)
	}
	if !strings.Contains(console.String(), "logo not found") {
		t.Error("console output is missing the entry")
	}
}
