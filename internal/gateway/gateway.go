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

// Package gateway wires every collaborator package into a running
// Enterprise MCP Gateway and owns its startup/shutdown sequence, per
// spec §4.11: load config, build the HTTP client and reliability stack,
// register the tool catalog, start the selected transport, and kick off
// the upstream warmup loop.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/audit"
	"github.com/lanonasis/mcp-gateway/internal/breaker"
	"github.com/lanonasis/mcp-gateway/internal/cache"
	"github.com/lanonasis/mcp-gateway/internal/config"
	"github.com/lanonasis/mcp-gateway/internal/discovery"
	"github.com/lanonasis/mcp-gateway/internal/health"
	"github.com/lanonasis/mcp-gateway/internal/httpclient"
	internallog "github.com/lanonasis/mcp-gateway/internal/log"
	"github.com/lanonasis/mcp-gateway/internal/mcpserver"
	"github.com/lanonasis/mcp-gateway/internal/metrics"
	"github.com/lanonasis/mcp-gateway/internal/tool"
	"github.com/lanonasis/mcp-gateway/internal/tracing"
	"github.com/lanonasis/mcp-gateway/internal/upstream"
)

// Gateway is the fully wired, running instance: every collaborator package
// composed per §2's control-flow diagram, plus the orchestrator's own
// startup/shutdown bookkeeping.
type Gateway struct {
	cfg       *config.Config
	logger    *slog.Logger
	startedAt time.Time

	breakers *breaker.Registry
	caches   *cache.Registry
	clients  *upstream.Clients

	registry   *tool.Registry
	dispatcher *tool.Dispatcher
	configView *tool.ConfigView

	health   *health.Checker
	metrics  *metrics.Metrics
	tracing  *tracing.Provider
	audit    *audit.Log
	mcp      *mcpserver.Server
	warmupCh chan struct{}

	secretWatcherCancel context.CancelFunc
}

// New builds a Gateway from cfg. It performs no I/O other than
// constructing collaborators; call Start to begin serving traffic.
func New(cfg *config.Config, warnings []string) (*Gateway, error) {
	logger := internallog.New(&internallog.Config{
		Level:  cfg.LogLevel,
		Format: internallog.Format(cfg.LogFormat),
	})
	logger = internallog.WithComponent(logger, "gateway")
	for _, w := range warnings {
		logger.Warn("startup warning", "warning", w)
	}

	tracingProvider, err := tracing.NewProvider(context.Background(), tracing.FromGatewayConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("gateway: build tracer provider: %w", err)
	}

	breakers := breaker.NewRegistry()
	caches := cache.NewRegistry()

	hcCfg := httpclient.FromGatewayConfig(cfg)
	hc, err := httpclient.New(hcCfg, breakers, tracingProvider.Tracer("upstream.call"), internallog.WithComponent(logger, "httpclient"))
	if err != nil {
		return nil, fmt.Errorf("gateway: build http client: %w", err)
	}

	clients := &upstream.Clients{
		API:       upstream.NewService(hc, breaker.UpstreamAPI, cfg.PrimaryAPIBaseURL, cfg.APIKeySecret),
		Functions: upstream.NewService(hc, breaker.UpstreamEdgeFunctions, cfg.FunctionsBaseURL, cfg.APIKeySecret),
	}

	startedAt := time.Now()
	checker := health.NewChecker(clients, startedAt)
	m := metrics.New("1.0.0", startedAt, breakers, caches)

	auditLog, auditErr := audit.Open(cfg.DataDir)
	if auditErr != nil {
		logger.Warn("admin audit trail unavailable", "error", auditErr.Error())
		auditLog = nil
	}

	registry := tool.NewRegistry()
	configView := tool.NewConfigView(configSnapshot(cfg), func(path string, value any) {
		applyConfigMutation(cfg, logger, path, value)
	})

	tool.RegisterCatalog(registry, tool.Deps{
		Clients: clients,
		Caches:  caches,
		Config:  configView,
		Logger:  internallog.WithComponent(logger, "tool"),
	})
	registry.Freeze()

	limiter := tool.NewRateLimiter(600)
	dispatcher := tool.NewDispatcher(registry, limiter)

	mcpSrv := mcpserver.New(cfg, registry, dispatcher, internallog.WithComponent(logger, "mcp"), m, tracingProvider.Tracer("tool.dispatch"))

	return &Gateway{
		cfg:        cfg,
		logger:     logger,
		startedAt:  startedAt,
		breakers:   breakers,
		caches:     caches,
		clients:    clients,
		registry:   registry,
		dispatcher: dispatcher,
		configView: configView,
		health:     checker,
		metrics:    m,
		tracing:    tracingProvider,
		audit:      auditLog,
		mcp:        mcpSrv,
	}, nil
}

// configSnapshot projects the subset of Config that get_config/set_config
// may address, matching the nested shape set_config's jq paths assume
// (".log.level", ".log.format").
func configSnapshot(cfg *config.Config) map[string]any {
	return map[string]any{
		"mode": string(cfg.Mode),
		"log": map[string]any{
			"level":  cfg.LogLevel,
			"format": cfg.LogFormat,
		},
		"requestTimeoutMs": cfg.RequestTimeoutMs,
		"maxRetries":       cfg.MaxRetries,
		"warmupIntervalMs": cfg.WarmupIntervalMs,
	}
}

// applyConfigMutation is configView's onMutate callback: the only two
// hot-reloadable paths are log level and log format, so this just logs the
// change — a future log level change takes effect on the next New() call
// per the teacher's env-driven logger construction, since slog.Logger's
// level var is not itself swappable without a LevelVar indirection.
func applyConfigMutation(cfg *config.Config, logger *slog.Logger, path string, value any) {
	logger.Info("config hot-reloaded", "path", path, "value", value)
}

// Start runs the warmup loop and the selected MCP transport. For
// config.ModeStdio this blocks until ctx is cancelled; for config.ModeHTTP
// it mounts health/metrics/discovery/admin handlers, starts the listener
// in the background, and returns immediately.
func (g *Gateway) Start(ctx context.Context) error {
	if g.cfg.Mode == config.ModeHTTP {
		g.mountOperationalEndpoints()
	}

	watcher := config.NewSecretWatcher(g.cfg, internallog.WithComponent(g.logger, "secret-watcher"))
	watcher.Sink = func(refresh config.SecretRefresh) {
		switch refresh.Kind {
		case config.SecretAPIKey:
			g.clients.API.SetAPIKey(refresh.Value)
			g.clients.Functions.SetAPIKey(refresh.Value)
		}
	}
	watcherCtx, cancel := context.WithCancel(ctx)
	g.secretWatcherCancel = cancel
	go func() {
		if err := watcher.Run(watcherCtx); err != nil {
			g.logger.Warn("secret watcher stopped", "error", err.Error())
		}
	}()

	warmupInterval := time.Duration(g.cfg.WarmupIntervalMs) * time.Millisecond
	if warmupInterval <= 0 {
		warmupInterval = 5 * time.Minute
	}
	go g.health.Warmup(ctx, warmupInterval, internallog.WithComponent(g.logger, "warmup"))

	if err := g.mcp.Start(ctx); err != nil {
		return fmt.Errorf("gateway: start transport: %w", err)
	}

	g.logger.Info("gateway started", "mode", string(g.cfg.Mode), "listenPort", g.cfg.ListenPort)
	return nil
}

// mountOperationalEndpoints wires health, metrics, discovery, and admin
// handlers onto the MCP server's shared mux before Start wraps it with
// correlation/auth middleware. Discovery paths are listed in
// mcpserver's auth allow-list and so never require a bearer token.
func (g *Gateway) mountOperationalEndpoints() {
	mux := g.mcp.Mux()

	mux.HandleFunc("/health", g.health.LivenessHandler())
	mux.HandleFunc("/health/full", g.health.FullHandler())
	mux.Handle("/metrics", g.metrics.Handler())
	mux.HandleFunc("/health/metrics", g.metrics.JSONHandler())

	disc := discovery.New(discovery.Config{
		ServerName:        "enterprise-mcp-gateway",
		ResourceURL:       g.cfg.ResourceURL,
		ServerURL:         g.cfg.ServerURL,
		AuthServerBaseURL: g.cfg.AuthServerBaseURL,
	}, g.registry)

	mux.HandleFunc("/", disc.Landing())
	mux.HandleFunc("/server-info", disc.CapabilityCard())
	mux.HandleFunc("/.well-known/mcp.json", disc.CapabilityCard())
	mux.HandleFunc("/.well-known/mcp-config", disc.CapabilityCard())
	mux.HandleFunc("/.well-known/oauth-protected-resource", disc.ProtectedResourceMetadata())
	mux.HandleFunc("/.well-known/oauth-authorization-server", disc.AuthorizationServerMetadata())
	mux.HandleFunc("/register", disc.Register())

	mux.HandleFunc("/admin/cache/clear", g.handleCacheClear)
	mux.HandleFunc("/admin/circuit-breaker/reset", g.handleBreakerReset)
}

// Stop drains in-flight calls up to grace, then tears down the transport,
// tracer provider, and caches' sweep goroutines, logging a summary.
func (g *Gateway) Stop(ctx context.Context, grace time.Duration) error {
	if g.secretWatcherCancel != nil {
		g.secretWatcherCancel()
	}

	err := g.mcp.Stop(ctx, grace)

	shutdownCtx, cancel := context.WithTimeout(ctx, tracing.ShutdownTimeout)
	defer cancel()
	if tErr := g.tracing.Shutdown(shutdownCtx); tErr != nil && err == nil {
		err = tErr
	}

	g.caches.Stop()

	if g.audit != nil {
		if aErr := g.audit.Close(); aErr != nil && err == nil {
			err = aErr
		}
	}

	g.logger.Info("gateway stopped", "uptimeSeconds", int64(time.Since(g.startedAt).Seconds()))
	return err
}
