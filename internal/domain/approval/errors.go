package approval

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrInvalidState     = errors.New("request is not awaiting a decision")
	ErrSelfApproval     = errors.New("cannot decide your own request")
	ErrRoleNotPermitted = errors.New("role is not permitted to decide this request")
	ErrUnknownKind      = errors.New("unknown request kind")
	ErrInvalidDecision  = errors.New("invalid decision for this request kind")
)

// PartialApprovalError reports that the status transition was committed but
// a downstream ledger effect failed. The request stays approved; callers
// retry the effect via reconciliation, never the decision.
type PartialApprovalError struct {
	RequestID string
	Kind      Kind
	Step      string // which sub-step failed, e.g. "adjust_balance"
	Err       error
}

func (e *PartialApprovalError) Error() string {
	return fmt.Sprintf("request %s approved but %s failed: %v", e.RequestID, e.Step, e.Err)
}

func (e *PartialApprovalError) Unwrap() error {
	return e.Err
}

// IsPartial reports whether err is (or wraps) a PartialApprovalError.
func IsPartial(err error) bool {
	var partial *PartialApprovalError
	return errors.As(err, &partial)
}
