package studies

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const DeleteToolName = "prolific_delete_study"

type DeleteRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
}

// DeleteTool deletes a draft study. Published studies cannot be deleted;
// the restriction is enforced remotely.
type DeleteTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[DeleteRequest, tools.Result] = (*DeleteTool)(nil)

func NewDeleteTool(client *prolific.Client) (*DeleteTool, error) {
	enc, err := tools.NewEncoder(DeleteRequest{})
	if err != nil {
		return nil, err
	}
	return &DeleteTool{
		name:        DeleteToolName,
		description: "Delete a study. Only draft studies can be deleted.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *DeleteTool) Name() string        { return t.name }
func (t *DeleteTool) Description() string { return t.description }
func (t *DeleteTool) Parameters() any     { return t.enc.Parameters() }

func (t *DeleteTool) Run(ctx context.Context, req *DeleteRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	if err := t.client.DeleteStudy(ctx, req.StudyID); err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study " + req.StudyID + " deleted successfully"}, nil
}

func (t *DeleteTool) Call(ctx context.Context, input string) (string, error) {
	var req DeleteRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
