package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	StudyID string `json:"study_id" validate:"required" jsonschema:"description=Prolific study ID"`
	Limit   int    `json:"limit,omitempty" validate:"omitempty,gt=0" jsonschema:"description=Maximum number of results"`
}

type echoTool struct{}

func (t *echoTool) Name() string        { return "echo" }
func (t *echoTool) Description() string { return "Echo the input back." }
func (t *echoTool) Parameters() any     { return nil }
func (t *echoTool) Call(ctx context.Context, input string) (string, error) {
	return input, nil
}

func Test_Result_String(t *testing.T) {
	res := &tools.Result{Message: "Study abc123 deleted successfully"}
	assert.Equal(t, "Study abc123 deleted successfully", res.String())

	res = &tools.Result{Message: "Study details:", Data: json.RawMessage("null")}
	assert.Equal(t, "Study details:", res.String())

	res = &tools.Result{
		Message: "Study details:",
		Data:    json.RawMessage(`{"id":"abc123"}`),
	}
	exp := "Study details:\n{\n\t\"id\": \"abc123\"\n}"
	assert.Equal(t, exp, res.String())

	// non-JSON payloads are relayed verbatim
	res = &tools.Result{
		Message: "Study details:",
		Data:    json.RawMessage("plain text body"),
	}
	assert.Equal(t, "Study details:\nplain text body", res.String())
}

func Test_GetDescriptions(t *testing.T) {
	out := tools.GetDescriptions(&echoTool{})
	assert.Contains(t, out, `"Name": "echo"`)
	assert.Contains(t, out, `"Description": "Echo the input back."`)
}

func Test_Encoder_Decode(t *testing.T) {
	enc, err := tools.NewEncoder(echoRequest{})
	require.NoError(t, err)

	var req echoRequest
	err = enc.Decode(`{"study_id":"abc123","limit":5}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", req.StudyID)
	assert.Equal(t, 5, req.Limit)

	// agents often wrap JSON in prose or fences
	req = echoRequest{}
	err = enc.Decode("Sure, here you go:\n```json\n{\"study_id\":\"abc123\"}\n```", &req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", req.StudyID)
}

func Test_Encoder_Decode_Invalid(t *testing.T) {
	enc, err := tools.NewEncoder(echoRequest{})
	require.NoError(t, err)

	var req echoRequest
	err = enc.Decode("plain string", &req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tools.ErrFailedUnmarshalInput))
	assert.EqualError(t, err, "failed to unmarshal input: check the schema and try again")

	err = enc.Decode(`{"limit":5}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.Contains(t, err.Error(), "StudyID")
}

func Test_Encoder_Undeclared(t *testing.T) {
	enc, err := tools.NewEncoder(echoRequest{})
	require.NoError(t, err)

	extra := enc.Undeclared([]byte(`{"study_id":"abc123","limit":5,"device_compatibility":["desktop"],"filters":[]}`))
	require.Len(t, extra, 2)
	assert.Equal(t, []any{"desktop"}, extra["device_compatibility"])
	assert.Contains(t, extra, "filters")
	assert.NotContains(t, extra, "study_id")

	assert.Nil(t, enc.Undeclared([]byte(`{"study_id":"abc123"}`)))
	assert.Nil(t, enc.Undeclared([]byte("plain string")))
}

func Test_Encoder_Parameters(t *testing.T) {
	enc, err := tools.NewEncoder(echoRequest{})
	require.NoError(t, err)

	bs, err := json.MarshalIndent(enc.Parameters(), "", "\t")
	require.NoError(t, err)

	exp := `{
	"properties": {
		"study_id": {
			"type": "string",
			"description": "Prolific study ID"
		},
		"limit": {
			"type": "integer",
			"description": "Maximum number of results"
		}
	},
	"type": "object",
	"required": [
		"study_id"
	]
}`
	assert.Equal(t, exp, string(bs))
}
