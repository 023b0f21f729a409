// Package studies implements the study lifecycle tools: create, inspect,
// update, launch, list and delete. Study state transitions are owned by the
// Prolific service; these tools only relay requests.
package studies

import (
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/prolific-tools/prolific-mcp", "studies")

// CompletionCode is a code participants submit when finishing a study,
// with the actions Prolific applies when it is used.
type CompletionCode struct {
	Code     string       `json:"code" validate:"required" jsonschema:"description=The completion code participants will enter"`
	CodeType string       `json:"code_type" validate:"required" jsonschema:"enum=COMPLETED,enum=FAILED_ATTENTION_CHECK,enum=FOLLOW_UP_STUDY,enum=GIVE_BONUS,enum=INCOMPATIBLE_DEVICE,enum=NO_CONSENT,enum=OTHER,enum=FIXED_SCREENOUT,description=Type of the completion code"`
	Actions  []CodeAction `json:"actions" validate:"required,min=1,dive" jsonschema:"description=Actions to take when this code is used"`
}

// CodeAction is a single action attached to a completion code.
type CodeAction struct {
	Action string `json:"action" validate:"required" jsonschema:"enum=AUTOMATICALLY_APPROVE,enum=MANUALLY_REVIEW,enum=REQUEST_RETURN,enum=ADD_TO_PARTICIPANT_GROUP,enum=REMOVE_FROM_PARTICIPANT_GROUP,description=Action to perform"`
}

// DefaultCompletionCodes is substituted when a study is created without
// explicit codes: one COMPLETED code routed to manual review.
func DefaultCompletionCodes() []CompletionCode {
	return []CompletionCode{
		{
			Code:     "COMPLETED",
			CodeType: "COMPLETED",
			Actions:  []CodeAction{{Action: "MANUALLY_REVIEW"}},
		},
	}
}
