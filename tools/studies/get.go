package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const GetToolName = "prolific_get_study"

type GetRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
}

// GetTool fetches details of a single study.
type GetTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[GetRequest, tools.Result] = (*GetTool)(nil)

func NewGetTool(client *prolific.Client) (*GetTool, error) {
	enc, err := tools.NewEncoder(GetRequest{})
	if err != nil {
		return nil, err
	}
	return &GetTool{
		name:        GetToolName,
		description: "Get details of a specific study by ID.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *GetTool) Name() string        { return t.name }
func (t *GetTool) Description() string { return t.description }
func (t *GetTool) Parameters() any     { return t.enc.Parameters() }

func (t *GetTool) Run(ctx context.Context, req *GetRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	resp, err := t.client.GetStudy(ctx, req.StudyID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study details:", Data: resp}, nil
}

func (t *GetTool) Call(ctx context.Context, input string) (string, error) {
	var req GetRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
