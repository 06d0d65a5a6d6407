// Copyright 2026 The Enterprise MCP Gateway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides the gateway's structured logging conventions on top
// of log/slog: leveled records with a fixed set of contextual keys, and a
// machine/human emission format switch.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatMachine outputs one JSON record per line, stable schema.
	FormatMachine Format = "machine"
	// FormatHuman outputs aligned, human-readable text.
	FormatHuman Format = "human"
)

// LevelTrace is more verbose than Debug; used for upstream request/response
// body dumps during diagnosis.
const LevelTrace = slog.Level(-8)

// Fixed contextual keys shared by every component that logs through this
// package.
const (
	ComponentKey  = "component"
	EventKey      = "event"
	RequestIDKey  = "requestId"
	UpstreamKey   = "upstream"
	URLKey        = "url"
	StatusKey     = "status"
	DurationMSKey = "durationMs"
	AttemptKey    = "attempt"
	ErrorKey      = "error"
)

// Config holds the logging configuration.
type Config struct {
	// Level sets the minimum log level (error, warn, info, debug).
	Level string
	// Format sets the output format (machine, human).
	Format Format
	// Output is the writer for log output. Default: os.Stderr.
	Output io.Writer
	// AddSource adds source file and line information to logs.
	AddSource bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: FormatMachine,
		Output: os.Stderr,
	}
}

// New creates a new structured logger from the given configuration.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatHuman:
		handler = slog.NewTextHandler(out, opts)
	case FormatMachine:
		fallthrough
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a new logger with a component field.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String(ComponentKey, component))
}

// WithRequestID returns a new logger with a requestId field.
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With(slog.String(RequestIDKey, requestID))
}

// WithUpstream returns a new logger with an upstream field.
func WithUpstream(logger *slog.Logger, upstream string) *slog.Logger {
	return logger.With(slog.String(UpstreamKey, upstream))
}

// Duration creates a durationMs attribute.
func Duration(ms int64) slog.Attr {
	return slog.Int64(DurationMSKey, ms)
}

// Err creates an error attribute.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(ErrorKey, "")
	}
	return slog.String(ErrorKey, err.Error())
}

// Attempt creates an attempt attribute.
func Attempt(n int) slog.Attr {
	return slog.Int(AttemptKey, n)
}

// Status creates a status attribute.
func Status(code int) slog.Attr {
	return slog.Int(StatusKey, code)
}

// SanitizeAPIKey masks an API key, showing only the last 4 characters.
// Returns "[REDACTED]" if the key is 4 characters or shorter.
func SanitizeAPIKey(key string) string {
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return "..." + key[len(key)-4:]
}

// SanitizeSecret completely redacts a secret value.
func SanitizeSecret(string) string {
	return "[REDACTED]"
}

// redactAttr masks any string attribute value that looks like it could be
// a bearer token or API key, regardless of which key it is attached to.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == ErrorKey {
		return a
	}
	if a.Value.Kind() == slog.KindString && looksLikeSecret(a.Value.String()) {
		a.Value = slog.StringValue(SanitizeAPIKey(a.Value.String()))
	}
	return a
}

func looksLikeSecret(v string) bool {
	if len(v) < 20 {
		return false
	}
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "bearer ") || strings.HasPrefix(lower, "sk-") ||
		strings.HasPrefix(lower, "key-") || strings.HasPrefix(lower, "eyj")
}

// Trace logs a message at trace level with optional attributes; used for
// highly verbose debugging output like upstream request/response bodies.
func Trace(logger *slog.Logger, msg string, attrs ...slog.Attr) {
	if !logger.Enabled(nil, LevelTrace) {
		return
	}
	logger.LogAttrs(nil, LevelTrace, msg, attrs...)
}
