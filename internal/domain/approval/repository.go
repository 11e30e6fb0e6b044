package approval

import (
	"context"
	"time"
)

// RequestStore is implemented once per request kind. Transition is the
// storage-level concurrency guard: it must only move rows currently in
// `from`, so two concurrent decisions on one request cannot both succeed.
type RequestStore interface {
	// GetApprovable returns the workflow view of the request, or
	// ErrRequestNotFound.
	GetApprovable(ctx context.Context, id string) (Approvable, error)

	// Transition conditionally moves the request from `from` to `to`,
	// recording the approver and timestamp. Returns ErrInvalidState when the
	// row is no longer in `from`.
	Transition(ctx context.Context, id string, from, to Status, approverID string, reason *string, at time.Time) error
}

// PurchaseRequestRepository persists the purchase request kind.
type PurchaseRequestRepository interface {
	RequestStore

	Create(ctx context.Context, req PurchaseRequest) (PurchaseRequest, error)
	GetByID(ctx context.Context, id string) (PurchaseRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PurchaseRequest, error)
	List(ctx context.Context) ([]PurchaseRequest, error)
}
