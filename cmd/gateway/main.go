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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanonasis/mcp-gateway/internal/config"
	"github.com/lanonasis/mcp-gateway/internal/gateway"
)

// Version information (injected via ldflags at build time).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gateway",
		Short:         "Enterprise MCP Gateway - a hardened front door for MCP clients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("gateway %s (commit: %s, built: %s)\n", version, commit, buildDate)
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	var shutdownGrace time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway, serving MCP clients over stdio or HTTP per GATEWAY_MODE",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), shutdownGrace)
		},
	}
	cmd.Flags().DurationVar(&shutdownGrace, "shutdown-grace", 15*time.Second, "time allowed to drain in-flight calls on shutdown")
	return cmd
}

func serve(ctx context.Context, shutdownGrace time.Duration) error {
	cfg, warnings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gw, err := gateway.New(cfg, warnings)
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- gw.Start(runCtx)
	}()

	select {
	case sig := <-sigCh:
		fmt.Fprintf(os.Stderr, "received signal %v, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gateway exited: %w", err)
		}
		// In HTTP mode Start returns once the listener is up; keep serving
		// until a signal arrives or the parent context ends.
		if cfg.Mode == config.ModeHTTP {
			select {
			case sig := <-sigCh:
				fmt.Fprintf(os.Stderr, "received signal %v, shutting down...\n", sig)
			case <-ctx.Done():
			}
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	return gw.Stop(shutdownCtx, shutdownGrace)
}
