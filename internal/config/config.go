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

// Package config builds the gateway's single immutable configuration
// record at startup: baseline defaults overlaid by environment
// variables, validated in one pass that collects every error rather
// than failing on the first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects the primary MCP transport the gateway listens on.
type Mode string

const (
	ModeStdio Mode = "stdio"
	ModeHTTP  Mode = "http"
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the gateway's configuration record. Build one with Load; the
// only later writer is SecretWatcher, which replaces the secret fields in
// place when a watched secret file changes.
type Config struct {
	Mode       Mode
	ListenPort int

	LogLevel  string
	LogFormat string // "machine" or "human"

	PrimaryAPIBaseURL string
	FunctionsBaseURL  string

	APIKeySecret     string
	APIKeySecretFile string

	BearerTokenSecret     string
	BearerTokenSecretFile string

	RequestTimeoutMs int
	MaxRetries       int
	RetryBaseDelayMs int

	WarmupIntervalMs int

	AuthServerBaseURL string
	ResourceURL       string
	ServerURL         string

	DataDir string

	TracingEnabled  bool
	TracingExporter string // "none", "stdout", "otlp-grpc", "otlp-http"
	TracingEndpoint string
	TracingInsecure bool

	TracingTLSVerify         bool
	TracingTLSCACertFile     string
	TracingTLSClientCertFile string
	TracingTLSClientKeyFile  string

	TracingSampleRate float64
}

// Default returns a Config populated with sensible baseline values. Load
// starts from this and overlays environment variables on top.
func Default() *Config {
	return &Config{
		Mode:       ModeStdio,
		ListenPort: 8080,

		LogLevel:  "info",
		LogFormat: "machine",

		RequestTimeoutMs: 10_000,
		MaxRetries:       3,
		RetryBaseDelayMs: 200,

		WarmupIntervalMs: 5 * 60 * 1000,

		DataDir: defaultDataDir(),

		TracingEnabled:    false,
		TracingExporter:   "none",
		TracingTLSVerify:  true,
		TracingSampleRate: 1.0,
	}
}

// Load builds a Config by overlaying environment variables onto Default,
// then validates it. It returns the config plus a list of non-fatal
// startup warnings (e.g. no credentials configured); it only returns an
// error when a mandatory value is missing or malformed.
func Load() (*Config, []string, error) {
	cfg := Default()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, cfg.warnings(), nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("GATEWAY_MODE"); v != "" {
		c.Mode = Mode(v)
	}
	if v := getEnvInt("GATEWAY_LISTEN_PORT"); v != nil {
		c.ListenPort = *v
	}
	if v := os.Getenv("GATEWAY_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_PRIMARY_API_BASE_URL"); v != "" {
		c.PrimaryAPIBaseURL = v
	}
	if v := os.Getenv("GATEWAY_FUNCTIONS_BASE_URL"); v != "" {
		c.FunctionsBaseURL = v
	}
	if v := os.Getenv("GATEWAY_API_KEY_SECRET"); v != "" {
		c.APIKeySecret = v
	}
	if v := os.Getenv("GATEWAY_API_KEY_SECRET_FILE"); v != "" {
		c.APIKeySecretFile = v
	}
	if v := os.Getenv("GATEWAY_BEARER_TOKEN_SECRET"); v != "" {
		c.BearerTokenSecret = v
	}
	if v := os.Getenv("GATEWAY_BEARER_TOKEN_SECRET_FILE"); v != "" {
		c.BearerTokenSecretFile = v
	}
	if v := getEnvInt("GATEWAY_REQUEST_TIMEOUT_MS"); v != nil {
		c.RequestTimeoutMs = *v
	}
	if v := getEnvInt("GATEWAY_MAX_RETRIES"); v != nil {
		c.MaxRetries = *v
	}
	if v := getEnvInt("GATEWAY_RETRY_BASE_DELAY_MS"); v != nil {
		c.RetryBaseDelayMs = *v
	}
	if v := getEnvInt("GATEWAY_WARMUP_INTERVAL_MS"); v != nil {
		c.WarmupIntervalMs = *v
	}
	if v := os.Getenv("GATEWAY_AUTH_SERVER_BASE_URL"); v != "" {
		c.AuthServerBaseURL = v
	}
	if v := os.Getenv("GATEWAY_RESOURCE_URL"); v != "" {
		c.ResourceURL = v
	}
	if v := os.Getenv("GATEWAY_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("GATEWAY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getEnvBool("GATEWAY_TRACING_ENABLED"); v != nil {
		c.TracingEnabled = *v
	}
	if v := os.Getenv("GATEWAY_TRACING_EXPORTER"); v != "" {
		c.TracingExporter = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_TRACING_ENDPOINT"); v != "" {
		c.TracingEndpoint = v
	}
	if v := getEnvBool("GATEWAY_TRACING_INSECURE"); v != nil {
		c.TracingInsecure = *v
	}
	if v := getEnvBool("GATEWAY_TRACING_TLS_VERIFY"); v != nil {
		c.TracingTLSVerify = *v
	}
	if v := os.Getenv("GATEWAY_TRACING_TLS_CA_CERT_FILE"); v != "" {
		c.TracingTLSCACertFile = v
	}
	if v := os.Getenv("GATEWAY_TRACING_TLS_CLIENT_CERT_FILE"); v != "" {
		c.TracingTLSClientCertFile = v
	}
	if v := os.Getenv("GATEWAY_TRACING_TLS_CLIENT_KEY_FILE"); v != "" {
		c.TracingTLSClientKeyFile = v
	}
	if v := getEnvFloat("GATEWAY_TRACING_SAMPLE_RATE"); v != nil {
		c.TracingSampleRate = *v
	}

	// Files, when present, take precedence over literal secrets so an
	// operator can rotate via the mounted file without touching env.
	if c.APIKeySecretFile != "" {
		if b, err := os.ReadFile(c.APIKeySecretFile); err == nil {
			c.APIKeySecret = strings.TrimSpace(string(b))
		}
	}
	if c.BearerTokenSecretFile != "" {
		if b, err := os.ReadFile(c.BearerTokenSecretFile); err == nil {
			c.BearerTokenSecret = strings.TrimSpace(string(b))
		}
	}
}

func getEnvInt(key string) *int {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func getEnvBool(key string) *bool {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func getEnvFloat(key string) *float64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

var validLogLevels = map[string]bool{"error": true, "warn": true, "warning": true, "info": true, "debug": true, "trace": true}
var validLogFormats = map[string]bool{"machine": true, "human": true}
var validModes = map[string]bool{string(ModeStdio): true, string(ModeHTTP): true}
var validTracingExporters = map[string]bool{"none": true, "stdout": true, "otlp-grpc": true, "otlp-http": true}

// Validate checks the record for mandatory values and internal
// consistency, collecting every violation into one joined error instead
// of stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[string(c.Mode)] {
		errs = append(errs, fmt.Sprintf("mode must be one of [stdio, http], got %q", c.Mode))
	}
	if c.Mode == ModeHTTP && (c.ListenPort <= 0 || c.ListenPort > 65535) {
		errs = append(errs, fmt.Sprintf("listenPort must be between 1 and 65535, got %d", c.ListenPort))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("logLevel must be one of [error, warn, info, debug, trace], got %q", c.LogLevel))
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		errs = append(errs, fmt.Sprintf("logFormat must be one of [machine, human], got %q", c.LogFormat))
	}
	if c.PrimaryAPIBaseURL == "" {
		errs = append(errs, "primaryApiBaseUrl is required")
	}
	if c.FunctionsBaseURL == "" {
		errs = append(errs, "functionsBaseUrl is required")
	}
	if c.RequestTimeoutMs <= 0 {
		errs = append(errs, fmt.Sprintf("requestTimeoutMs must be positive, got %d", c.RequestTimeoutMs))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("maxRetries must be non-negative, got %d", c.MaxRetries))
	}
	if c.RetryBaseDelayMs <= 0 {
		errs = append(errs, fmt.Sprintf("retryBaseDelayMs must be positive, got %d", c.RetryBaseDelayMs))
	}
	if c.WarmupIntervalMs <= 0 {
		errs = append(errs, fmt.Sprintf("warmupIntervalMs must be positive, got %d", c.WarmupIntervalMs))
	}
	if !validTracingExporters[c.TracingExporter] {
		errs = append(errs, fmt.Sprintf("tracingExporter must be one of [none, stdout, otlp-grpc, otlp-http], got %q", c.TracingExporter))
	}
	if c.TracingEnabled && c.TracingExporter != "none" && c.TracingExporter != "stdout" && c.TracingEndpoint == "" {
		errs = append(errs, "tracingEndpoint is required when tracing is enabled with an otlp exporter")
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		errs = append(errs, fmt.Sprintf("tracingSampleRate must be between 0 and 1, got %f", c.TracingSampleRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// warnings reports non-fatal configuration concerns surfaced at startup;
// none of these block the gateway from serving.
func (c *Config) warnings() []string {
	var warnings []string

	if c.APIKeySecret == "" {
		warnings = append(warnings, "no api-key secret configured; primary-api calls requiring an api key will fail at call time")
	}
	if c.BearerTokenSecret == "" {
		warnings = append(warnings, "no bearer-token secret configured; HTTP transport will reject all non-discovery requests")
	}
	if c.AuthServerBaseURL == "" {
		warnings = append(warnings, "no auth-server base url configured; discovery metadata will omit OAuth pointers")
	}
	if c.ResourceURL == "" {
		warnings = append(warnings, "no resource url configured; discovery documents will omit the advertised resource")
	}

	return warnings
}

func defaultDataDir() string {
	if v := os.Getenv("GATEWAY_DATA_DIR"); v != "" {
		return v
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v + "/enterprise-mcp-gateway"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/var/lib/enterprise-mcp-gateway"
	}
	return home + "/.local/share/enterprise-mcp-gateway"
}
