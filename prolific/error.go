package prolific

import (
	"encoding/json"
	"fmt"
)

// Error is the single error kind returned by the client.
// StatusCode and Body are populated only when an HTTP response was received.
type Error struct {
	Message    string
	StatusCode int
	Body       json.RawMessage
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
	}
	return e.Message
}
