// Package participants implements the test participant tool. Test
// participants are remote accounts flagged to complete studies without
// real payment; nothing is persisted locally.
package participants

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const CreateTestParticipantToolName = "prolific_create_test_participant"

type CreateTestParticipantRequest struct {
	Email string `json:"email" validate:"required,email" jsonschema:"format=email,description=Email address for the test participant; must not be registered with Prolific already"`
}

// CreateTestParticipantTool creates a test participant account for
// validating studies without consuming credits.
type CreateTestParticipantTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[CreateTestParticipantRequest, tools.Result] = (*CreateTestParticipantTool)(nil)

func NewCreateTestParticipantTool(client *prolific.Client) (*CreateTestParticipantTool, error) {
	enc, err := tools.NewEncoder(CreateTestParticipantRequest{})
	if err != nil {
		return nil, err
	}
	return &CreateTestParticipantTool{
		name:        CreateTestParticipantToolName,
		description: "Create a test participant account for testing studies without consuming credits. Test participants can only take studies in workspaces where the feature is enabled and cannot cash out earnings.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *CreateTestParticipantTool) Name() string        { return t.name }
func (t *CreateTestParticipantTool) Description() string { return t.description }
func (t *CreateTestParticipantTool) Parameters() any     { return t.enc.Parameters() }

func (t *CreateTestParticipantTool) Run(ctx context.Context, req *CreateTestParticipantRequest) (*tools.Result, error) {
	if req.Email == "" {
		return nil, errors.New("invalid request: empty email")
	}
	resp, err := t.client.CreateTestParticipant(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Message: "Test participant created successfully:", Data: resp}, nil
}

func (t *CreateTestParticipantTool) Call(ctx context.Context, input string) (string, error) {
	var req CreateTestParticipantRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
