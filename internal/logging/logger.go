package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelManager provides runtime log level control for a logger built by NewLogger
type LevelManager struct {
	levelVar     *slog.LevelVar
	defaultLevel slog.Level
	mu           sync.RWMutex
}

// GetLevel returns the current log level as a string
func (m *LevelManager) GetLevel() string {
	if m == nil || m.levelVar == nil {
		return "info"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return levelToString(m.levelVar.Level())
}

// SetDebugEnabled enables or disables debug logging
func (m *LevelManager) SetDebugEnabled(enabled bool) {
	if m == nil || m.levelVar == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		m.levelVar.Set(slog.LevelDebug)
	} else {
		// Reset to default level when disabling debug
		m.levelVar.Set(m.defaultLevel)
	}
}

// SetQuiet raises the level so only errors are logged
func (m *LevelManager) SetQuiet() {
	if m == nil || m.levelVar == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelVar.Set(slog.LevelError)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return "info"
	}
}

// NewLogger builds a logger writing to console and, when configured, to a rotated log file.
// Console output goes to the given writer so reports on stdout stay clean.
func NewLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, *LevelManager) {
	defaultLevel := parseLevel(cfg.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(defaultLevel)

	manager := &LevelManager{
		levelVar:     levelVar,
		defaultLevel: defaultLevel,
	}

	var fileWriter io.Writer
	if cfg.OutputFile != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.OutputFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
	}

	var handler slog.Handler

	if cfg.Format == "json" {
		w := console
		if fileWriter != nil {
			w = io.MultiWriter(console, fileWriter)
		}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: levelVar,
		})
	} else {
		// Tinted console, plain text file
		consoleHandler := tint.NewHandler(console, &tint.Options{
			Level:   levelVar,
			NoColor: !shouldUseColors(console),
		})
		handler = consoleHandler
		if fileWriter != nil {
			fileHandler := slog.NewTextHandler(fileWriter, &slog.HandlerOptions{Level: levelVar})
			handler = NewMultiHandler(consoleHandler, fileHandler)
		}
	}

	return slog.New(handler), manager
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shouldUseColors determines if colored output should be used
// based on terminal capabilities and environment settings
func shouldUseColors(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	// Respect NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

// MultiHandler writes to multiple handlers
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}
