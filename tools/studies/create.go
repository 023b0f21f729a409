package studies

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
)

const CreateToolName = "prolific_create_study"

// CreateRequest is the study configuration accepted by the create tool.
// Unset optional fields are defaulted before the request is relayed.
type CreateRequest struct {
	Name                    string           `json:"name" validate:"required" jsonschema:"description=Public name or title of the study visible to participants"`
	Description             string           `json:"description" validate:"required" jsonschema:"description=Study description for participants to read before starting"`
	Reward                  int              `json:"reward" validate:"required" jsonschema:"description=Reward amount in cents"`
	TotalAvailablePlaces    int              `json:"total_available_places" validate:"required" jsonschema:"description=Number of participants needed"`
	EstimatedCompletionTime int              `json:"estimated_completion_time" validate:"required" jsonschema:"description=Estimated completion time in minutes"`
	ExternalStudyURL        string           `json:"external_study_url" validate:"required" jsonschema:"description=URL to the external study; may include {{%PROLIFIC_PID%}} and {{%STUDY_ID%}} and {{%SESSION_ID%}} placeholders"`
	ProlificIDOption        string           `json:"prolific_id_option,omitempty" validate:"omitempty,oneof=question url_parameters not_required" jsonschema:"enum=question,enum=url_parameters,enum=not_required,default=url_parameters,description=How to collect the Prolific ID"`
	CompletionCodes         []CompletionCode `json:"completion_codes,omitempty" validate:"omitempty,dive" jsonschema:"description=Completion code objects; defaults to a single COMPLETED code with a MANUALLY_REVIEW action"`
	InternalName            string           `json:"internal_name,omitempty" jsonschema:"description=Internal name for the study; not visible to participants"`

	// Extra holds study fields not modeled above, such as
	// device_compatibility or filters. They are relayed verbatim;
	// declared fields always win on key collisions.
	Extra map[string]any `json:"-"`
}

// body flattens the request into the study configuration sent upstream,
// merging Extra fields under the declared ones.
func (r *CreateRequest) body() (map[string]any, error) {
	bs, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal study configuration")
	}
	var body map[string]any
	if err := json.Unmarshal(bs, &body); err != nil {
		return nil, errors.Wrap(err, "failed to build study configuration")
	}
	for k, v := range r.Extra {
		if _, ok := body[k]; !ok {
			body[k] = v
		}
	}
	return body, nil
}

// CreateTool creates a new study on Prolific.
type CreateTool struct {
	name        string
	description string

	client *prolific.Client
	enc    *tools.Encoder
}

var _ tools.Tool[CreateRequest, tools.Result] = (*CreateTool)(nil)

func NewCreateTool(client *prolific.Client) (*CreateTool, error) {
	enc, err := tools.NewEncoder(CreateRequest{})
	if err != nil {
		return nil, err
	}
	return &CreateTool{
		name:        CreateToolName,
		description: "Create a new study on Prolific. Requires study configuration including name, description, reward, duration, external study URL, prolific_id_option, and completion_codes.",
		client:      client,
		enc:         enc,
	}, nil
}

func (t *CreateTool) Name() string        { return t.name }
func (t *CreateTool) Description() string { return t.description }
func (t *CreateTool) Parameters() any     { return t.enc.Parameters() }

func (t *CreateTool) Run(ctx context.Context, req *CreateRequest) (*tools.Result, error) {
	if req.ProlificIDOption == "" {
		req.ProlificIDOption = "url_parameters"
	}
	if len(req.CompletionCodes) == 0 {
		req.CompletionCodes = DefaultCompletionCodes()
	}

	body, err := req.body()
	if err != nil {
		return nil, err
	}
	resp, err := t.client.CreateStudy(ctx, body)
	if err != nil {
		return nil, err
	}
	logger.ContextKV(ctx, xlog.DEBUG, "tool", t.name, "codes", len(req.CompletionCodes), "extra", len(req.Extra))
	return &tools.Result{Message: "Study created successfully:", Data: resp}, nil
}

func (t *CreateTool) Call(ctx context.Context, input string) (string, error) {
	var req CreateRequest
	if err := t.enc.Decode(input, &req); err != nil {
		return "", err
	}
	req.Extra = t.enc.Undeclared([]byte(input))
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return res.String(), nil
}
