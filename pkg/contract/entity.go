package contract

import (
	"fmt"

	"github.com/google/uuid"
)

// Generation is the outcome of one successful generate call.
type Generation struct {
	ID     uuid.UUID
	Prompt string
	Source string
	Path   string
}

// TransportError means the call to the generation service itself failed.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// APIError means the service answered but reported a failure status.
type APIError struct{ Message string }

func (e *APIError) Error() string { return fmt.Sprintf("service reported failure: %s", e.Message) }
