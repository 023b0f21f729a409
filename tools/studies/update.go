package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const UpdateToolName = "prolific_update_study"

type UpdateRequest struct {
	StudyID string         `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
	Updates map[string]any `json:"updates" validate:"required,min=1" jsonschema:"description=Fields to update; the merge is performed by the Prolific service"`
}

// UpdateTool patches fields of an existing study.
type UpdateTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[UpdateRequest, tools.Result] = (*UpdateTool)(nil)

func NewUpdateTool(client *prolific.Client) (*UpdateTool, error) {
	enc, err := tools.NewEncoder(UpdateRequest{})
	if err != nil {
		return nil, err
	}
	return &UpdateTool{
		name:        UpdateToolName,
		description: "Update a study's parameters. Provide study_id and the fields to update.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *UpdateTool) Name() string        { return t.name }
func (t *UpdateTool) Description() string { return t.description }
func (t *UpdateTool) Parameters() any     { return t.enc.Parameters() }

func (t *UpdateTool) Run(ctx context.Context, req *UpdateRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	if len(req.Updates) == 0 {
		return nil, errors.New("invalid request: empty updates")
	}
	resp, err := t.client.UpdateStudy(ctx, req.StudyID, req.Updates)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study updated successfully:", Data: resp}, nil
}

func (t *UpdateTool) Call(ctx context.Context, input string) (string, error) {
	var req UpdateRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
