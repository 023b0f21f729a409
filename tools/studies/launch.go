package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const LaunchToolName = "prolific_launch_study"

type LaunchRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
}

// LaunchTool publishes a study to start participant recruitment.
// The UNPUBLISHED to ACTIVE transition is enforced remotely.
type LaunchTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[LaunchRequest, tools.Result] = (*LaunchTool)(nil)

func NewLaunchTool(client *prolific.Client) (*LaunchTool, error) {
	enc, err := tools.NewEncoder(LaunchRequest{})
	if err != nil {
		return nil, err
	}
	return &LaunchTool{
		name:        LaunchToolName,
		description: "Launch a study to start participant recruitment.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *LaunchTool) Name() string        { return t.name }
func (t *LaunchTool) Description() string { return t.description }
func (t *LaunchTool) Parameters() any     { return t.enc.Parameters() }

func (t *LaunchTool) Run(ctx context.Context, req *LaunchRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	resp, err := t.client.LaunchStudy(ctx, req.StudyID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study launched successfully:", Data: resp}, nil
}

func (t *LaunchTool) Call(ctx context.Context, input string) (string, error) {
	var req LaunchRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
