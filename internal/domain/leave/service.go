package leave

import "context"

// BalanceService is the leave balance ledger: every quota mutation in the
// system funnels through it.
type BalanceService interface {
	// GrantAnnual computes the tenure-based yearly quota and upserts the
	// employee's annual entry. Re-granting preserves UsedDays.
	GrantAnnual(ctx context.Context, req GrantAnnualRequest) (BalanceResponse, error)

	// AdjustBalance applies deltaDays to the entry's remaining days
	// (negative consumes, positive restores). Under the default policy a
	// delta that would drive remaining below zero fails with
	// ErrInsufficientBalance and leaves the entry untouched.
	AdjustBalance(ctx context.Context, employeeID, leaveTypeID string, year int, deltaDays float64) error

	// GetBalances returns the employee's entries for the year keyed by
	// leave type code.
	GetBalances(ctx context.Context, employeeID string, year int) (map[string]BalanceResponse, error)
}

// RequestService creates and reads leave requests. Status transitions are
// owned by the approval workflow, not by this service.
type RequestService interface {
	// Submit derives the inclusive day count and creates a pending request.
	Submit(ctx context.Context, req SubmitLeaveRequest) (RequestResponse, error)

	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, employeeID string) ([]RequestResponse, error)
}
