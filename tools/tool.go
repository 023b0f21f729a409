package tools

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/pkg/llmutils"
)

var (
	ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")
)

// ITool is a tool for an agent to interact with the Prolific API.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the catalog.
	Description() string
	// Parameters returns the parameters definition of the function, to be used in the catalog.
	Parameters() any

	// Call executes the tool with the given input and returns the rendered result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// Result is a tool outcome: a fixed success message plus the JSON payload
// relayed from the API, rendered as a single text block.
type Result struct {
	Message string
	Data    json.RawMessage
}

func (r *Result) String() string {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return r.Message
	}
	return r.Message + "\n" + llmutils.JSONIndent(string(r.Data))
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.ToJSONIndent(d)
}
