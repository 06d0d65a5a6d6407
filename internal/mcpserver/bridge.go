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
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcplib "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lanonasis/mcp-gateway/internal/correlation"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/tool"
)

// metricsSink records a dispatched tool call's outcome; *metrics.Metrics
// satisfies it without this package importing internal/metrics directly.
type metricsSink interface {
	RecordRequest(tool string, failed bool, duration time.Duration)
}

// registerCatalog translates every tool, prompt, and resource in reg onto
// srv, bridging the catalog's transport-agnostic shapes into mcp-go's
// ServerTool/ServerPrompt/ServerResource registration batches. metrics and
// tracer may be nil, in which case per-call recording/spans are skipped.
func registerCatalog(srv *mcplib.MCPServer, reg *tool.Registry, dispatcher *tool.Dispatcher, metrics metricsSink, tracer trace.Tracer) {
	tools := reg.Tools()
	serverTools := make([]mcplib.ServerTool, 0, len(tools))
	for _, d := range tools {
		serverTools = append(serverTools, mcplib.ServerTool{
			Tool:    toMCPTool(*d),
			Handler: toolHandler(dispatcher, d.Name, metrics, tracer),
		})
	}
	if len(serverTools) > 0 {
		srv.AddTools(serverTools...)
	}

	prompts := reg.Prompts()
	serverPrompts := make([]mcplib.ServerPrompt, 0, len(prompts))
	for _, p := range prompts {
		serverPrompts = append(serverPrompts, mcplib.ServerPrompt{
			Prompt:  mcp.Prompt{Name: p.Name, Description: p.Description},
			Handler: promptHandler(p),
		})
	}
	if len(serverPrompts) > 0 {
		srv.AddPrompts(serverPrompts...)
	}

	resources := reg.Resources()
	serverResources := make([]mcplib.ServerResource, 0, len(resources))
	for _, r := range resources {
		serverResources = append(serverResources, mcplib.ServerResource{
			Resource: mcp.Resource{
				URI:         r.URI,
				Name:        r.Name,
				Description: r.Description,
				MIMEType:    r.MimeType,
			},
			Handler: resourceHandler(r),
		})
	}
	if len(serverResources) > 0 {
		srv.AddResources(serverResources...)
	}
}

func toMCPTool(d tool.Descriptor) mcp.Tool {
	return mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: toMCPInputSchema(d.Schema),
		Annotations: mcp.ToolAnnotations{
			Title:           d.Title,
			ReadOnlyHint:    boolPtr(d.Annotations.ReadOnly),
			DestructiveHint: boolPtr(d.Annotations.Destructive),
			IdempotentHint:  boolPtr(d.Annotations.Idempotent),
			OpenWorldHint:   boolPtr(d.Annotations.OpenWorld),
		},
	}
}

func boolPtr(b bool) *bool { return &b }

// toolHandler bridges one catalog tool call through the dispatcher: the
// dispatcher already validates, sanitizes, and serializes, so this closure
// adds the ambient tool.dispatch span and per-tool metrics recording
// around it, then translates mcp-go's request/response envelope.
func toolHandler(dispatcher *tool.Dispatcher, name string, metrics metricsSink, tracer trace.Tracer) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if tracer != nil {
			var span trace.Span
			ctx, span = tracer.Start(ctx, "tool.dispatch", trace.WithAttributes(attribute.String("tool", name)))
			defer span.End()
		}

		start := time.Now()
		args := req.GetArguments()
		payload, err := dispatcher.Dispatch(ctx, name, args)
		duration := time.Since(start)

		if span := trace.SpanFromContext(ctx); span.IsRecording() && err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		if metrics != nil {
			metrics.RecordRequest(name, err != nil, duration)
		}

		if err != nil {
			return mcp.NewToolResultError(errorEnvelope(ctx, err)), nil
		}
		return mcp.NewToolResultText(payload), nil
	}
}

// errorEnvelope shapes a dispatch failure into the user-visible
// {success:false, error:{code, message, requestId, retryable, details?}}
// object spec §7 requires for every tool-call failure.
func errorEnvelope(ctx context.Context, err interface {
	Error() string
}) string {
	body := map[string]any{
		"success": false,
		"error": map[string]any{
			"message":   err.Error(),
			"requestId": correlation.FromContext(ctx).String(),
		},
	}
	if ge, ok := err.(*gwerrors.Error); ok {
		e := body["error"].(map[string]any)
		e["code"] = string(ge.Kind)
		e["retryable"] = ge.Retryable()
		if len(ge.Details) > 0 {
			e["details"] = ge.Details
		}
	}
	out, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		return err.Error()
	}
	return string(out)
}

func promptHandler(p *tool.Prompt) func(context.Context, mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := make(map[string]any, len(req.Params.Arguments))
		for k, v := range req.Params.Arguments {
			args[k] = v
		}
		text, err := p.Render(args)
		if err != nil {
			return nil, err
		}
		return &mcp.GetPromptResult{
			Description: p.Description,
			Messages: []mcp.PromptMessage{
				{
					Role:    mcp.RoleAssistant,
					Content: mcp.TextContent{Type: "text", Text: text},
				},
			},
		}, nil
	}
}

func resourceHandler(r *tool.Resource) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := r.Load(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      r.URI,
				MIMEType: r.MimeType,
				Text:     text,
			},
		}, nil
	}
}
