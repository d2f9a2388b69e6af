// Package logger provides structured logging with secret redaction.
//
// This package wraps Go's standard log/slog with convenience functions for:
//   - Configuration lifecycle logging (load, validation, resolution)
//   - Redaction of API keys and tokens found in model parameters
//   - Level-based verbosity control driven by LOG_LEVEL or CLI flags
//
// All exported functions use the global DefaultLogger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"
)

const (
	// FormatText selects slog's human-readable text handler.
	FormatText = "text"
	// FormatJSON selects slog's JSON handler.
	FormatJSON = "json"
)

var (
	// DefaultLogger is the global structured logger instance.
	DefaultLogger *slog.Logger

	mu sync.Mutex
)

func init() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	Configure(os.Stderr, level, FormatText)
}

// ParseLevel converts a level name (debug, info, warn/warning, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Configure replaces DefaultLogger with one writing to w at the given level.
// Unknown formats fall back to text.
func Configure(w io.Writer, level slog.Level, format string) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	DefaultLogger = slog.New(handler)
	mu.Unlock()
}

// SetLevel changes the logging level, keeping stderr text output.
func SetLevel(level slog.Level) {
	Configure(os.Stderr, level, FormatText)
}

// SetVerbose enables debug-level logging when verbose is true, otherwise sets info-level.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return DefaultLogger
}

// Info logs an informational message with key-value attributes.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// InfoContext logs an informational message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, args...)
}

// Debug logs a debug-level message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// WarnContext logs a warning message with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, args...)
}

// ConfigResolved logs a resolved labeling task configuration at debug level.
// Additional attributes can be passed as key-value pairs after the required parameters.
func ConfigResolved(task, taskType, provider string, validated bool, attrs ...any) {
	allAttrs := make([]any, 0, 8+len(attrs))
	allAttrs = append(allAttrs,
		"task", task,
		"task_type", taskType,
		"provider", provider,
		"validated", validated,
	)
	allAttrs = append(allAttrs, attrs...)
	Debug("config resolved", allAttrs...)
}

var (
	// apiKeyPatterns match common API key formats from model providers.
	apiKeyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`sk-[a-zA-Z0-9_-]{32,}`),   // OpenAI / Anthropic keys
		regexp.MustCompile(`AIza[a-zA-Z0-9_-]{35}`),   // Google API keys
		regexp.MustCompile(`hf_[a-zA-Z0-9]{30,}`),     // Hugging Face tokens
		regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]+`), // Bearer tokens
	}

	// sensitiveKeys are parameter names whose values are always redacted.
	sensitiveKeys = []string{"api_key", "apikey", "token", "secret", "password", "authorization"}
)

// RedactSensitiveData removes API keys and bearer tokens from a string,
// keeping the first four characters of a key for debugging context.
func RedactSensitiveData(input string) string {
	result := input

	for _, pattern := range apiKeyPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if strings.HasPrefix(match, "Bearer") {
				return "Bearer [REDACTED]"
			}
			if len(match) > 8 {
				return match[:4] + "...[REDACTED]"
			}
			return "[REDACTED]"
		})
	}

	return result
}

// RedactParams returns a copy of params safe for display. Values under
// sensitive keys are replaced entirely; other strings pass through
// RedactSensitiveData. Nested maps are redacted recursively.
func RedactParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for key, value := range params {
		if isSensitiveKey(key) {
			out[key] = "[REDACTED]"
			continue
		}
		switch v := value.(type) {
		case string:
			out[key] = RedactSensitiveData(v)
		case map[string]any:
			out[key] = RedactParams(v)
		default:
			out[key] = v
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
