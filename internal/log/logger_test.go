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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"log/slog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatMachine {
		t.Errorf("expected default format 'machine', got %q", cfg.Format)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected default output to be os.Stderr")
	}
	if cfg.AddSource {
		t.Errorf("expected default AddSource to be false")
	}
}

func TestNew_MachineFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&Config{Level: "debug", Format: FormatMachine, Output: &buf})
	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v", err)
	}
	if logEntry["msg"] != "test message" {
		t.Errorf("expected msg field to be 'test message', got: %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("expected key field to be 'value', got: %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("expected level field to be 'INFO', got: %v", logEntry["level"])
	}
}

func TestNew_HumanFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&Config{Level: "info", Format: FormatHuman, Output: &buf})
	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, level)
			}
		})
	}
}

func TestLogLevel_Filtering(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		logFunc       func(*slog.Logger)
		shouldContain bool
	}{
		{"debug log at debug level", "debug", func(l *slog.Logger) { l.Debug("debug message") }, true},
		{"debug log at info level", "info", func(l *slog.Logger) { l.Debug("debug message") }, false},
		{"info log at info level", "info", func(l *slog.Logger) { l.Info("info message") }, true},
		{"info log at warn level", "warn", func(l *slog.Logger) { l.Info("info message") }, false},
		{"error log at error level", "error", func(l *slog.Logger) { l.Error("error message") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&Config{Level: tt.configLevel, Format: FormatMachine, Output: &buf})
			tt.logFunc(logger)

			output := buf.String()
			contains := len(output) > 0
			if contains != tt.shouldContain {
				t.Errorf("expected log output=%v, got output=%v (output: %s)", tt.shouldContain, contains, output)
			}
		})
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "trace", Format: FormatMachine, Output: &buf})

	Trace(logger, "trace message", slog.String("detail", "body"))

	output := buf.String()
	if !strings.Contains(output, "trace message") {
		t.Errorf("expected trace message to be emitted at trace level, got: %s", output)
	}

	buf.Reset()
	infoLogger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	Trace(infoLogger, "should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected trace message to be suppressed at info level, got: %s", buf.String())
	}
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	WithRequestID(logger, "test-request-id").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[RequestIDKey] != "test-request-id" {
		t.Errorf("expected %s field to be 'test-request-id', got: %v", RequestIDKey, logEntry[RequestIDKey])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	WithComponent(logger, "test-component").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[ComponentKey] != "test-component" {
		t.Errorf("expected %s field to be 'test-component', got: %v", ComponentKey, logEntry[ComponentKey])
	}
}

func TestWithUpstream(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	WithUpstream(logger, "primary-api").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[UpstreamKey] != "primary-api" {
		t.Errorf("expected %s field to be 'primary-api', got: %v", UpstreamKey, logEntry[UpstreamKey])
	}
}

func TestWithMultipleContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	enriched := WithRequestID(WithComponent(logger, "dispatcher"), "req-1")
	enriched.Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[ComponentKey] != "dispatcher" {
		t.Errorf("expected %s field to be 'dispatcher', got: %v", ComponentKey, logEntry[ComponentKey])
	}
	if logEntry[RequestIDKey] != "req-1" {
		t.Errorf("expected %s field to be 'req-1', got: %v", RequestIDKey, logEntry[RequestIDKey])
	}
}

func TestAddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf, AddSource: true})
	logger.Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	source, ok := logEntry["source"]
	if !ok {
		t.Fatalf("expected source field to be present")
	}
	sourceMap, ok := source.(map[string]interface{})
	if !ok {
		t.Fatalf("expected source to be a map, got: %T", source)
	}
	if _, ok := sourceMap["file"]; !ok {
		t.Errorf("expected source.file to be present")
	}
}

func TestAttrHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	logger.Info("test message", Duration(1500), Attempt(2), Status(200))

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[DurationMSKey] != float64(1500) {
		t.Errorf("expected %s to be 1500, got: %v", DurationMSKey, logEntry[DurationMSKey])
	}
	if logEntry[AttemptKey] != float64(2) {
		t.Errorf("expected %s to be 2, got: %v", AttemptKey, logEntry[AttemptKey])
	}
	if logEntry[StatusKey] != float64(200) {
		t.Errorf("expected %s to be 200, got: %v", StatusKey, logEntry[StatusKey])
	}
}

func TestErrAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "error", Format: FormatMachine, Output: &buf})
	testErr := errors.New("test error")
	logger.Error("test error message", Err(testErr))

	output := buf.String()
	if !strings.Contains(output, testErr.Error()) {
		t.Errorf("expected error message in output, got: %s", output)
	}
}

func TestRedactAttr_MasksSecretLookingValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})
	logger.Info("upstream call", "apiKey", "sk-abcdefghijklmnopqrstuvwxyz")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry["apiKey"] == "sk-abcdefghijklmnopqrstuvwxyz" {
		t.Errorf("expected secret-looking value to be redacted, got: %v", logEntry["apiKey"])
	}
	if !strings.HasPrefix(logEntry["apiKey"].(string), "...") {
		t.Errorf("expected masked value to keep the trailing suffix form, got: %v", logEntry["apiKey"])
	}
}

func TestRedactAttr_LeavesErrorKeyAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "error", Format: FormatMachine, Output: &buf})
	logger.Error("call failed", ErrorKey, "bearer sk-abcdefghijklmnopqrstuvwxyz failed auth")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if logEntry[ErrorKey] != "bearer sk-abcdefghijklmnopqrstuvwxyz failed auth" {
		t.Errorf("expected error field to pass through untouched, got: %v", logEntry[ErrorKey])
	}
}

func TestSanitizeAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal API key", "sk-1234567890abcdef", "...cdef"},
		{"short key redacted", "abc", "[REDACTED]"},
		{"exactly 4 chars redacted", "abcd", "[REDACTED]"},
		{"empty string redacted", "", "[REDACTED]"},
		{"5 chars shows last 4", "abcde", "...bcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeAPIKey(tt.input)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestSanitizeSecret(t *testing.T) {
	tests := []string{"super-secret-password", "", "this-is-a-very-long-secret"}
	for _, input := range tests {
		result := SanitizeSecret(input)
		if result != "[REDACTED]" {
			t.Errorf("expected '[REDACTED]', got %q", result)
		}
	}
}

func TestNilConfig(t *testing.T) {
	logger := New(nil)
	if logger == nil {
		t.Errorf("expected non-nil logger when nil config passed")
	}
}

func BenchmarkLogger_Machine(b *testing.B) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatMachine, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i, "key1", "value1", "key2", "value2")
	}
}

func BenchmarkLogger_Human(b *testing.B) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatHuman, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i, "key1", "value1", "key2", "value2")
	}
}
