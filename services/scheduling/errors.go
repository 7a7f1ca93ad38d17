package scheduling

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy for the scheduling core. Validation failures never reach the
// store; NotFound and SlotUnavailable are recoverable and returned as typed
// values; unexpected store failures are wrapped in ServiceError and always
// surfaced, never converted into a fabricated success.

var (
	// ErrNotFound marks an unknown doctor, template, or appointment id.
	ErrNotFound = errors.New("not found")

	// ErrSlotUnavailable is the commit-time booking conflict. Recoverable:
	// the client should refresh the slot list and retry.
	ErrSlotUnavailable = errors.New("slot no longer available")

	// ErrInvalidTransition rejects a status change the appointment state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid appointment status transition")
)

// ValidationIssue pinpoints one invalid descriptor or field. Index is the
// position in the submitted batch, or -1 for single-value operations.
type ValidationIssue struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError rejects malformed input before any mutation. For
// reconciliation it is batch-wide: one bad descriptor rejects the whole
// submission with every offending index itemized.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Issues[0].Reason)
	}
	reasons := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		reasons[i] = fmt.Sprintf("[%d] %s", issue.Index, issue.Reason)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(reasons, "; "))
}

func newValidationError(reason string) *ValidationError {
	return &ValidationError{Issues: []ValidationIssue{{Index: -1, Reason: reason}}}
}

// ServiceError wraps an unexpected store failure with the operation that hit it.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func serviceErr(op string, err error) error {
	return &ServiceError{Op: op, Err: err}
}
