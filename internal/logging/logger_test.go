package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level", "info", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"default level", "invalid", slog.LevelInfo},
		{"empty level", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.level)
			if got != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cohorts.log")
	var console bytes.Buffer

	cfg := config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		OutputFile: logFile,
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger, _ := NewLogger(cfg, &console)
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}

	logger.Info("test message", "key", "value")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(content), `"msg":"test message"`) {
		t.Errorf("Expected JSON log format in file, got: %s", string(content))
	}
	if !strings.Contains(console.String(), `"msg":"test message"`) {
		t.Errorf("Expected JSON log format on console, got: %s", console.String())
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cohorts.log")
	var console bytes.Buffer

	cfg := config.LoggingConfig{
		Level:      "debug",
		Format:     "text",
		OutputFile: logFile,
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger, _ := NewLogger(cfg, &console)
	logger.Debug("test debug message")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(content), "test debug message") {
		t.Errorf("Expected text log format with message, got: %s", string(content))
	}
	if !strings.Contains(console.String(), "test debug message") {
		t.Errorf("Expected console output with message, got: %s", console.String())
	}
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	logger, _ := NewLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &console)
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(console.String(), "hidden") {
		t.Errorf("info message logged at warn level: %s", console.String())
	}
	if !strings.Contains(console.String(), "shown") {
		t.Errorf("warn message missing: %s", console.String())
	}
}

func TestLevelManager(t *testing.T) {
	var console bytes.Buffer
	logger, manager := NewLogger(config.LoggingConfig{Level: "info", Format: "text"}, &console)

	if got := manager.GetLevel(); got != "info" {
		t.Errorf("GetLevel() = %s, want info", got)
	}

	manager.SetDebugEnabled(true)
	if got := manager.GetLevel(); got != "debug" {
		t.Errorf("GetLevel() after enabling debug = %s, want debug", got)
	}
	logger.Debug("now visible")
	if !strings.Contains(console.String(), "now visible") {
		t.Errorf("debug message missing after SetDebugEnabled: %s", console.String())
	}

	manager.SetDebugEnabled(false)
	if got := manager.GetLevel(); got != "info" {
		t.Errorf("GetLevel() after disabling debug = %s, want info", got)
	}

	manager.SetQuiet()
	if got := manager.GetLevel(); got != "error" {
		t.Errorf("GetLevel() after SetQuiet = %s, want error", got)
	}

	var nilManager *LevelManager
	nilManager.SetDebugEnabled(true)
	if got := nilManager.GetLevel(); got != "info" {
		t.Errorf("nil manager GetLevel() = %s, want info", got)
	}
}

func TestShouldUseColors_NonFile(t *testing.T) {
	var buf bytes.Buffer
	if shouldUseColors(&buf) {
		t.Error("shouldUseColors() = true for a buffer, want false")
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelDebug})

	multiHandler := NewMultiHandler(handler1, handler2)

	ctx := context.Background()

	if !multiHandler.Enabled(ctx, slog.LevelDebug) {
		t.Error("multiHandler.Enabled() = false, want true when any handler accepts debug")
	}

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
	if err := multiHandler.Handle(ctx, record); err != nil {
		t.Errorf("multiHandler.Handle() error = %v", err)
	}

	if buf1.Len() == 0 {
		t.Error("First handler buffer is empty")
	}
	if buf2.Len() == 0 {
		t.Error("Second handler buffer is empty")
	}

	// Debug only reaches the handler that enables it
	buf1.Reset()
	buf2.Reset()
	debug := slog.NewRecord(time.Now(), slog.LevelDebug, "debug message", 0)
	if err := multiHandler.Handle(ctx, debug); err != nil {
		t.Errorf("multiHandler.Handle() error = %v", err)
	}
	if buf1.Len() != 0 {
		t.Errorf("info handler received debug record: %s", buf1.String())
	}
	if buf2.Len() == 0 {
		t.Error("debug handler buffer is empty")
	}

	if multiHandler.WithAttrs([]slog.Attr{slog.String("key", "value")}) == nil {
		t.Error("multiHandler.WithAttrs() returned nil")
	}
	if multiHandler.WithGroup("testgroup") == nil {
		t.Error("multiHandler.WithGroup() returned nil")
	}
}
