package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const ListToolName = "prolific_list_studies"

type ListRequest struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,gt=0" jsonschema:"description=Maximum number of studies to return"`
}

// ListTool lists the researcher's studies.
type ListTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[ListRequest, tools.Result] = (*ListTool)(nil)

func NewListTool(client *prolific.Client) (*ListTool, error) {
	enc, err := tools.NewEncoder(ListRequest{})
	if err != nil {
		return nil, err
	}
	return &ListTool{
		name:        ListToolName,
		description: "List all studies. Optionally limit the number of results.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *ListTool) Name() string        { return t.name }
func (t *ListTool) Description() string { return t.description }
func (t *ListTool) Parameters() any     { return t.enc.Parameters() }

func (t *ListTool) Run(ctx context.Context, req *ListRequest) (*tools.Result, error) {
	resp, err := t.client.ListStudies(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Studies:", Data: resp}, nil
}

func (t *ListTool) Call(ctx context.Context, input string) (string, error) {
	var req ListRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
