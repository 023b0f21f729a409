// Package submissions implements the tool that relays participant
// submissions for a study. Submission review states are owned by the
// Prolific service.
package submissions

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const ResultsToolName = "prolific_get_results"

type ResultsRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
}

// ResultsTool fetches all submissions for a study.
type ResultsTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[ResultsRequest, tools.Result] = (*ResultsTool)(nil)

func NewResultsTool(client *prolific.Client) (*ResultsTool, error) {
	enc, err := tools.NewEncoder(ResultsRequest{})
	if err != nil {
		return nil, err
	}
	return &ResultsTool{
		name:        ResultsToolName,
		description: "Get all submissions/results for a completed or in-progress study.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *ResultsTool) Name() string        { return t.name }
func (t *ResultsTool) Description() string { return t.description }
func (t *ResultsTool) Parameters() any     { return t.enc.Parameters() }

func (t *ResultsTool) Run(ctx context.Context, req *ResultsRequest) (*tools.Result, error) {
	if req.StudyID == "" {
		return nil, errors.New("invalid request: empty study_id")
	}
	resp, err := t.client.GetSubmissions(ctx, req.StudyID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Study submissions:", Data: resp}, nil
}

func (t *ResultsTool) Call(ctx context.Context, input string) (string, error) {
	var req ResultsRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
