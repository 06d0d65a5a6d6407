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

// Package tracing builds the gateway's OpenTelemetry tracer provider and
// the upstream.call / tool.dispatch span helpers spec §9 asks for,
// keeping only the tracing half of the teacher's observability stack —
// metrics are served directly through prometheus/client_golang in
// internal/metrics instead, so no OTel metrics bridge lives here.
package tracing

import "time"

// ExporterKind selects where finished spans are sent.
type ExporterKind string

const (
	ExporterNone     ExporterKind = "none"
	ExporterStdout   ExporterKind = "stdout"
	ExporterOTLPGRPC ExporterKind = "otlp-grpc"
	ExporterOTLPHTTP ExporterKind = "otlp-http"
)

// Config controls the gateway's tracer provider.
type Config struct {
	// Enabled activates span export; when false, no exporter is built and
	// Provider.Tracer's spans are never exported.
	Enabled bool

	ServiceName    string
	ServiceVersion string

	Exporter ExporterKind
	Endpoint string
	Insecure bool
	Headers  map[string]string

	// TLS configures the connection to the OTLP collector when Insecure
	// is false. Zero value (TLS.Enabled == false) falls back to the
	// exporter's own default TLS 1.2 system-cert-pool configuration.
	TLS TLSSettings

	Sampling SamplingConfig
}

// TLSSettings selects custom TLS behavior for the OTLP exporters, built
// into a *tls.Config via export.BuildTLSConfig.
type TLSSettings struct {
	Enabled           bool
	VerifyCertificate bool
	CACertPath        string
	ClientCertFile    string
	ClientKeyFile     string
}

// DefaultConfig returns tracing disabled, the common case for a gateway
// deployment with no collector configured.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    "enterprise-mcp-gateway",
		ServiceVersion: "1.0.0",
		Exporter:       ExporterNone,
		Sampling: SamplingConfig{
			Enabled:            true,
			Rate:               1.0,
			AlwaysSampleErrors: true,
		},
	}
}

// ShutdownTimeout bounds how long Provider.Shutdown waits to flush.
const ShutdownTimeout = 5 * time.Second
