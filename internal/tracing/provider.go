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

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	"github.com/lanonasis/mcp-gateway/internal/tracing/export"
)

// Provider wraps an SDK TracerProvider built from Config. A disabled
// provider still hands out a valid trace.Tracer — callers never need to
// nil-check it — backed by an SDK TracerProvider with no exporter, so its
// spans are sampled per cfg.Sampling but never leave the process.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider builds a Provider. When cfg.Enabled is false, or
// cfg.Exporter is ExporterNone, spans are created but never exported.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: build resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(NewSampler(cfg.Sampling)),
	}

	if cfg.Enabled {
		exp, err := buildExporter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if exp != nil {
			opts = append(opts, sdktrace.WithBatcher(exp))
		}
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp}, nil
}

func buildExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	tlsConfig, err := export.BuildTLSConfig(export.TLSConfigInput{
		Enabled:           cfg.TLS.Enabled,
		VerifyCertificate: cfg.TLS.VerifyCertificate,
		CACertPath:        cfg.TLS.CACertPath,
		ClientCertFile:    cfg.TLS.ClientCertFile,
		ClientKeyFile:     cfg.TLS.ClientKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing: build TLS config: %w", err)
	}

	switch cfg.Exporter {
	case ExporterOTLPGRPC:
		return export.NewOTLPExporter(ctx, export.OTLPConfig{
			Endpoint:  cfg.Endpoint,
			Insecure:  cfg.Insecure,
			TLSConfig: tlsConfig,
			Headers:   cfg.Headers,
		})
	case ExporterOTLPHTTP:
		return export.NewOTLPHTTPExporter(ctx, export.OTLPHTTPConfig{
			Endpoint:  cfg.Endpoint,
			Insecure:  cfg.Insecure,
			TLSConfig: tlsConfig,
			Headers:   cfg.Headers,
		})
	case ExporterStdout:
		return export.NewDefaultConsoleExporter()
	case ExporterNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("tracing: unknown exporter kind %q", cfg.Exporter)
	}
}

// Tracer returns a named tracer for span creation, e.g. "upstream.call" or
// "tool.dispatch" instrumentation scopes.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// Shutdown flushes and releases the underlying exporter, if any.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
