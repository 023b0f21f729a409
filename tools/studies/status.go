package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const StatusToolName = "prolific_get_study_status"

type StatusRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
}

// StatusTool returns the status projection of a study: current state,
// places taken and completion rate.
type StatusTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[StatusRequest, tools.Result] = (*StatusTool)(nil)

func NewStatusTool(client *prolific.Client) (*StatusTool, error) {
	enc, err := tools.NewEncoder(StatusRequest{})
	if err != nil {
		return nil, err
	}
	return &StatusTool{
		name:        StatusToolName,
		description: "Get the current status of a study including completion rate and places taken.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *StatusTool) Name() string        { return t.name }
func (t *StatusTool) Description() string { return t.description }
func (t *StatusTool) Parameters() any     { return t.enc.Parameters() }

func (t *StatusTool) Run(ctx context.Context, req *StatusRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	resp, err := t.client.GetStudyStatus(ctx, req.StudyID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study status:", Data: resp}, nil
}

func (t *StatusTool) Call(ctx context.Context, input string) (string, error) {
	var req StatusRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
