// Package gemini implements a chat client that drives the Prolific tool
// catalog with a Gemini model. The MCP server runs as a stdio subprocess;
// discovered tools are converted to function declarations and function
// calls are relayed back to the server.
package gemini

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/genai"
)

var logger = xlog.NewPackageLogger("github.com/prolific-tools/prolific-mcp", "gemini")

// DefaultModel is used when no model is specified.
const DefaultModel = "gemini-2.0-flash-exp"

// maxIterations bounds the function calling loop.
const maxIterations = 10

// Chat relays a conversation between a Gemini model and the tool server.
type Chat struct {
	genai *genai.Client
	mcp   *mcpclient.Client
	decls []*genai.FunctionDeclaration
}

// New creates a chat client with the given Gemini API key.
func New(ctx context.Context, apiKey string) (*Chat, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}
	return &Chat{
		genai: client,
	}, nil
}

// Connect starts the tool server subprocess and loads its tool catalog.
func (c *Chat) Connect(ctx context.Context, command string, env []string, args ...string) error {
	cli, err := mcpclient.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return errors.Wrap(err, "failed to start tool server")
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "prolific-mcp-chat",
		Version: "1.0",
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		_ = cli.Close()
		return errors.Wrap(err, "failed to initialize tool server session")
	}

	toolsRes, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = cli.Close()
		return errors.Wrap(err, "failed to list tools")
	}

	c.decls = make([]*genai.FunctionDeclaration, 0, len(toolsRes.Tools))
	for _, t := range toolsRes.Tools {
		c.decls = append(c.decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  ConvertInputSchema(t.InputSchema),
		})
	}
	c.mcp = cli

	logger.ContextKV(ctx, xlog.INFO, "event", "connected", "tools", len(c.decls))
	return nil
}

// Chat sends a prompt and handles function calls until the model
// produces a final text response.
func (c *Chat) Chat(ctx context.Context, prompt, model string) (string, error) {
	if c.mcp == nil {
		return "", errors.New("not connected to a tool server")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.GenerateContentConfig{}
	if len(c.decls) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: c.decls}}
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		logger.ContextKV(ctx, xlog.DEBUG, "model", model, "iteration", iteration)

		resp, err := c.genai.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate content")
		}
		if len(resp.Candidates) == 0 ||
			resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			return "", errors.New("no response from model")
		}

		content := resp.Candidates[0].Content
		var calls []*genai.FunctionCall
		for _, part := range content.Parts {
			if part.FunctionCall != nil {
				calls = append(calls, part.FunctionCall)
			}
		}

		if len(calls) == 0 {
			var sb strings.Builder
			for _, part := range content.Parts {
				sb.WriteString(part.Text)
			}
			return sb.String(), nil
		}

		// tool failures go back to the model rather than aborting the chat
		responses := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			text, err := c.callTool(ctx, call.Name, call.Args)
			if err != nil {
				logger.ContextKV(ctx, xlog.ERROR, "tool", call.Name, "err", err.Error())
				responses = append(responses, genai.NewPartFromFunctionResponse(call.Name, map[string]any{
					"error": err.Error(),
				}))
				continue
			}
			responses = append(responses, genai.NewPartFromFunctionResponse(call.Name, map[string]any{
				"result": text,
			}))
		}

		contents = append(contents, content, genai.NewContentFromParts(responses, genai.RoleUser))
	}

	return "", errors.New("maximum iterations reached")
}

func (c *Chat) callTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "tool call failed: %s", name)
	}

	var parts []string
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Close shuts down the tool server subprocess.
func (c *Chat) Close() error {
	if c.mcp == nil {
		return nil
	}
	return c.mcp.Close()
}
