package tools

import (
	"reflect"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/prolific-tools/prolific-mcp/pkg/llmutils"
	"github.com/prolific-tools/prolific-mcp/pkg/schema"
)

// Encoder decodes and validates tool arguments against a request type.
type Encoder struct {
	schema   *schema.Schema
	validate *validator.Validate
}

func NewEncoder(req any) (*Encoder, error) {
	sc, err := schema.New(reflect.TypeOf(req))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Encoder{
		schema:   sc,
		validate: validator.New(),
	}, nil
}

// Unmarshal decodes lenient JSON input into ret.
func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	data := llmutils.CleanJSON(bs)
	if err := ljson.Unmarshal(data, ret); err != nil {
		return ErrFailedUnmarshalInput
	}
	return nil
}

// Validate checks the decoded request against its declared constraints.
func (e *Encoder) Validate(req any) error {
	return e.validate.Struct(req)
}

// Decode unmarshals and validates tool input in one step.
// No request is issued upstream when Decode fails.
func (e *Encoder) Decode(input string, ret any) error {
	if err := e.Unmarshal([]byte(input), ret); err != nil {
		return err
	}
	return errors.WithMessage(e.validate.Struct(ret), "invalid request")
}

// Undeclared returns input keys that are not declared on the request
// schema, so tools can relay fields the struct does not model.
func (e *Encoder) Undeclared(bs []byte) map[string]any {
	var raw map[string]any
	if err := ljson.Unmarshal(llmutils.CleanJSON(bs), &raw); err != nil {
		return nil
	}
	for k := range raw {
		if _, ok := e.schema.Parameters.Properties.Get(k); ok {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// Parameters returns the function parameters definition of the request type.
func (e *Encoder) Parameters() *jsonschema.Schema {
	return e.schema.Parameters
}

func (e *Encoder) Schema() *schema.Schema {
	return e.schema
}
