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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, p)

	tracer := p.Tracer("upstream.call")
	require.NotNil(t, tracer)

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_StdoutExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = ExporterStdout

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	ctx, span := p.Tracer("tool.dispatch").Start(context.Background(), "test")
	span.End()
	_ = ctx

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = ExporterKind("bogus")

	_, err := NewProvider(context.Background(), cfg)
	require.Error(t, err)
}
