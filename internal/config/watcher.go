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

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// SecretKind identifies which live secret a refresh applies to.
type SecretKind string

const (
	SecretAPIKey      SecretKind = "apiKey"
	SecretBearerToken SecretKind = "bearerToken"
)

// SecretRefresh is delivered to Sink whenever a watched secret file changes.
type SecretRefresh struct {
	Kind  SecretKind
	Value string
}

// SecretWatcher watches the secret files named in a Config (when present)
// and pushes refreshed values to Sink without requiring a restart. The
// orchestrator wires Sink to push the new value into the live
// UpstreamClient headers.
type SecretWatcher struct {
	cfg    *Config
	logger *slog.Logger
	Sink   func(SecretRefresh)
}

// NewSecretWatcher builds a watcher bound to cfg's *SecretFile paths.
func NewSecretWatcher(cfg *Config, logger *slog.Logger) *SecretWatcher {
	return &SecretWatcher{cfg: cfg, logger: logger}
}

// Run blocks, watching configured secret files until ctx is cancelled. It
// is a no-op if neither secret file path is set.
func (w *SecretWatcher) Run(ctx context.Context) error {
	paths := map[string]SecretKind{}
	if w.cfg.APIKeySecretFile != "" {
		paths[filepath.Clean(w.cfg.APIKeySecretFile)] = SecretAPIKey
	}
	if w.cfg.BearerTokenSecretFile != "" {
		paths[filepath.Clean(w.cfg.BearerTokenSecretFile)] = SecretBearerToken
	}
	if len(paths) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			w.logger.Warn("secret watcher: failed to watch directory", "dir", dir, "error", err.Error())
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			kind, known := paths[filepath.Clean(event.Name)]
			if !known {
				continue
			}
			w.reload(event.Name, kind)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("secret watcher error", "error", err.Error())
		}
	}
}

func (w *SecretWatcher) reload(path string, kind SecretKind) {
	b, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("secret watcher: failed to read refreshed secret", "path", path, "error", err.Error())
		return
	}
	value := strings.TrimSpace(string(b))
	if value == "" {
		return
	}
	switch kind {
	case SecretAPIKey:
		w.cfg.APIKeySecret = value
	case SecretBearerToken:
		w.cfg.BearerTokenSecret = value
	}
	if w.Sink != nil {
		w.Sink(SecretRefresh{Kind: kind, Value: value})
	}
	w.logger.Info("secret refreshed from file", "kind", string(kind), "path", path)
}
