package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const TestLaunchToolName = "prolific_launch_test_study"

type TestLaunchRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID; the study must be in draft status"`
}

// TestLaunchTool launches a draft study in test mode, which does not
// consume credits. Requires a test participant to exist and the feature
// to be enabled for the workspace.
type TestLaunchTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[TestLaunchRequest, tools.Result] = (*TestLaunchTool)(nil)

func NewTestLaunchTool(client *prolific.Client) (*TestLaunchTool, error) {
	enc, err := tools.NewEncoder(TestLaunchRequest{})
	if err != nil {
		return nil, err
	}
	return &TestLaunchTool{
		name:        TestLaunchToolName,
		description: "Launch a study in test mode (doesn't consume credits). Requires at least one test participant to exist and the study must be in draft status. The feature must be enabled for your workspace.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *TestLaunchTool) Name() string        { return t.name }
func (t *TestLaunchTool) Description() string { return t.description }
func (t *TestLaunchTool) Parameters() any     { return t.enc.Parameters() }

func (t *TestLaunchTool) Run(ctx context.Context, req *TestLaunchRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	resp, err := t.client.LaunchTestStudy(ctx, req.StudyID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Test study launched successfully:", Data: resp}, nil
}

func (t *TestLaunchTool) Call(ctx context.Context, input string) (string, error) {
	var req TestLaunchRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
