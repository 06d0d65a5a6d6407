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

package tracing

import "github.com/lanonasis/mcp-gateway/internal/config"

// FromGatewayConfig builds a Config from the gateway's own configuration
// record, the normal construction path in production. DefaultConfig
// remains the fallback used directly by tests that don't need a
// *config.Config.
func FromGatewayConfig(cfg *config.Config) Config {
	return Config{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    "enterprise-mcp-gateway",
		ServiceVersion: "1.0.0",

		Exporter: ExporterKind(cfg.TracingExporter),
		Endpoint: cfg.TracingEndpoint,
		Insecure: cfg.TracingInsecure,

		TLS: TLSSettings{
			Enabled:           cfg.TracingTLSCACertFile != "" || cfg.TracingTLSClientCertFile != "" || !cfg.TracingTLSVerify,
			VerifyCertificate: cfg.TracingTLSVerify,
			CACertPath:        cfg.TracingTLSCACertFile,
			ClientCertFile:    cfg.TracingTLSClientCertFile,
			ClientKeyFile:     cfg.TracingTLSClientKeyFile,
		},

		Sampling: SamplingConfig{
			Enabled:            true,
			Rate:               cfg.TracingSampleRate,
			AlwaysSampleErrors: true,
		},
	}
}
