// Package mcpserver exposes the Prolific tool catalog over the Model
// Context Protocol. One stdio server, a static tool set, no cross-call
// state; every tool failure is rendered as a text payload rather than a
// protocol error.
package mcpserver

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prolific-tools/prolific-mcp/pkg/llmutils"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

var logger = xlog.NewPackageLogger("github.com/prolific-tools/prolific-mcp", "mcpserver")

// Server wraps an MCP server around a set of tools.
type Server struct {
	srv      *server.MCPServer
	tools    map[string]tools.ITool
	callback tools.Callback
}

// New creates a stdio MCP server serving the given tools.
func New(name, version string, list ...tools.ITool) (*Server, error) {
	s := &Server{
		srv: server.NewMCPServer(name, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		tools:    make(map[string]tools.ITool, len(list)),
		callback: NewLoggerCallback(logger),
	}
	for _, t := range list {
		if err := s.register(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) register(t tools.ITool) error {
	name := t.Name()
	if _, ok := s.tools[name]; ok {
		return errors.Errorf("tool already registered: %s", name)
	}
	s.tools[name] = t

	rawSchema, err := json.Marshal(t.Parameters())
	if err != nil {
		return errors.Wrapf(err, "failed to marshal parameters: %s", name)
	}
	s.srv.AddTool(
		mcp.NewToolWithRawSchema(name, t.Description(), rawSchema),
		s.handler(t),
	)
	return nil
}

// handler adapts a tool to the MCP call contract. Errors become
// error-flagged text results so a misbehaving call never takes the
// server down.
func (s *Server) handler(t tools.ITool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := llmutils.ToJSON(req.GetArguments())

		s.callback.OnToolStart(ctx, t, input)
		out, err := t.Call(ctx, input)
		if err != nil {
			s.callback.OnToolError(ctx, t, input, err)
			return mcp.NewToolResultError(RenderError(err)), nil
		}
		s.callback.OnToolEnd(ctx, t, input, out)
		return mcp.NewToolResultText(out), nil
	}
}

// Tools returns the registered tools.
func (s *Server) Tools() []tools.ITool {
	list := make([]tools.ITool, 0, len(s.tools))
	for _, t := range s.tools {
		list = append(list, t)
	}
	return list
}

// ServeStdio serves MCP over stdin/stdout until EOF.
// All logging goes to stderr; stdout belongs to the protocol.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.srv)
}

// RenderError renders a tool failure as a text payload.
// API errors carry the upstream status code and raw body when available.
func RenderError(err error) string {
	var apiErr *prolific.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if apiErr.StatusCode != 0 {
			msg += " (Status: " + strconv.Itoa(apiErr.StatusCode) + ")"
		}
		if len(apiErr.Body) > 0 {
			body := string(apiErr.Body)
			if json.Valid(apiErr.Body) {
				body = llmutils.JSONIndent(body)
			}
			msg += "\nResponse: " + body
		}
		return msg
	}
	return "Error: " + err.Error()
}
