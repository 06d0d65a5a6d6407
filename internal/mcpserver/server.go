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

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	mcplib "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"

	"github.com/lanonasis/mcp-gateway/internal/config"
	"github.com/lanonasis/mcp-gateway/internal/correlation"
	"github.com/lanonasis/mcp-gateway/internal/tool"
)

const serverVersion = "1.0.0"
const serverName = "enterprise-mcp-gateway"

// Server owns the MCP protocol surface: the underlying mcp-go server, its
// three transport variants, and the HTTP mux operational endpoints mount
// onto before Start is called.
type Server struct {
	cfg        *config.Config
	registry   *tool.Registry
	dispatcher *tool.Dispatcher
	logger     *slog.Logger

	mcpSrv *mcplib.MCPServer
	mux    *http.ServeMux

	mu          sync.Mutex
	sseServer   *mcplib.SSEServer
	streamSrv   *mcplib.StreamableHTTPServer
	stdioServer *mcplib.StdioServer
	httpServers []*http.Server
}

// New builds a Server wired to reg/dispatcher. The caller must have
// already called reg.Freeze(). metrics and tracer may be nil. Mux returns
// the mux so the orchestrator can mount health, metrics, discovery, and
// admin handlers before Start.
func New(cfg *config.Config, reg *tool.Registry, dispatcher *tool.Dispatcher, logger *slog.Logger, metrics metricsSink, tracer trace.Tracer) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mcpSrv := mcplib.NewMCPServer(
		serverName,
		serverVersion,
		mcplib.WithToolCapabilities(true),
		mcplib.WithResourceCapabilities(true, true),
		mcplib.WithPromptCapabilities(true),
	)
	registerCatalog(mcpSrv, reg, dispatcher, metrics, tracer)

	return &Server{
		cfg:        cfg,
		registry:   reg,
		dispatcher: dispatcher,
		logger:     logger,
		mcpSrv:     mcpSrv,
		mux:        http.NewServeMux(),
	}
}

// Mux exposes the operational HTTP mux so health/metrics/discovery/admin
// handlers can be mounted before Start wraps it with auth and correlation
// middleware and hands it to a listener.
func (s *Server) Mux() *http.ServeMux { return s.mux }

// Start begins serving the transport selected by cfg.Mode. For
// config.ModeStdio it blocks the calling goroutine on the stdio session;
// for config.ModeHTTP it starts the listener in the background and
// returns immediately.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Mode == config.ModeStdio {
		s.mu.Lock()
		s.stdioServer = mcplib.NewStdioServer(s.mcpSrv)
		stdio := s.stdioServer
		s.mu.Unlock()
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	}

	baseURL := s.cfg.ResourceURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", s.cfg.ListenPort)
	}

	s.mu.Lock()
	s.sseServer = mcplib.NewSSEServer(
		s.mcpSrv,
		mcplib.WithBaseURL(baseURL),
		mcplib.WithSSEEndpoint("/sse"),
		mcplib.WithMessageEndpoint("/sse"),
		mcplib.WithKeepAlive(true),
		mcplib.WithKeepAliveInterval(30*time.Second),
	)
	s.streamSrv = mcplib.NewStreamableHTTPServer(s.mcpSrv)

	s.mux.Handle("/sse", s.sseServer)
	s.mux.Handle("/mcp", s.streamSrv)

	handler := correlation.Middleware(bearerAuth(s.cfg.BearerTokenSecret, s.mux))

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.ListenPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServers = append(s.httpServers, httpSrv)
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(200 * time.Millisecond):
		s.logger.Info("mcp transport listening", "addr", httpSrv.Addr)
		return nil
	}
}

// Stop gracefully shuts down any running HTTP listeners within grace. The
// stdio transport tears itself down when ctx (passed to Listen) is
// cancelled, so there is nothing additional to close for it here.
func (s *Server) Stop(ctx context.Context, grace time.Duration) error {
	s.mu.Lock()
	servers := s.httpServers
	s.httpServers = nil
	s.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(ctx, grace)
	defer cancel()

	var firstErr error
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
