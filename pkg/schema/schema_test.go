package schema_test

import (
	"reflect"
	"testing"

	"github.com/prolific-tools/prolific-mcp/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type action struct {
	Action string `json:"action" validate:"required" jsonschema:"enum=AUTOMATICALLY_APPROVE,enum=MANUALLY_REVIEW,description=Action to perform"`
}

type studyRequest struct {
	Name    string   `json:"name" validate:"required" jsonschema:"description=Study name"`
	Reward  int      `json:"reward" validate:"required,gt=0" jsonschema:"description=Reward in cents"`
	Actions []action `json:"actions,omitempty" jsonschema:"description=Completion actions"`
}

func Test_New(t *testing.T) {
	sc, err := schema.New(reflect.TypeOf(studyRequest{}))
	require.NoError(t, err)
	require.NotNil(t, sc.Parameters)

	assert.Equal(t, "object", sc.Parameters.Type)
	assert.Equal(t, []string{"name", "reward"}, sc.Parameters.Required)

	name, ok := sc.Parameters.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "Study name", name.Description)

	// nested definitions are inlined into the parameters schema
	actions, ok := sc.Parameters.Properties.Get("actions")
	require.True(t, ok)
	assert.Equal(t, "array", actions.Type)
	require.NotNil(t, actions.Items)
	assert.Empty(t, actions.Items.Ref)
	act, ok := actions.Items.Properties.Get("action")
	require.True(t, ok)
	assert.Len(t, act.Enum, 2)
}

func Test_New_Cached(t *testing.T) {
	s1, err := schema.New(reflect.TypeOf(studyRequest{}))
	require.NoError(t, err)
	s2, err := schema.New(reflect.TypeOf(studyRequest{}))
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}

func Test_String(t *testing.T) {
	sc, err := schema.New(reflect.TypeOf(studyRequest{}))
	require.NoError(t, err)

	out := sc.String()
	assert.Contains(t, out, `"type": "object"`)
	assert.Contains(t, out, `"Study name"`)
}
