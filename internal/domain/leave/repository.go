package leave

import (
	"context"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCode(ctx context.Context, code TypeCode) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	// Upsert creates or overwrites the entry keyed by
	// (employee_id, leave_type_id, year). Grants are idempotent through it.
	Upsert(ctx context.Context, balance Balance) (Balance, error)

	// GetByEmployeeTypeYear returns the entry, or ErrBalanceNotFound.
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)

	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// Update rewrites an existing entry by ID.
	Update(ctx context.Context, balance Balance) error
}

// RequestRepository - interface for leave_requests table. It also satisfies
// approval.RequestStore so the workflow can drive leave transitions.
type RequestRepository interface {
	approval.RequestStore

	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// SetEffectFlags records ledger-effect completion after the terminal
	// transition has been committed.
	SetEffectFlags(ctx context.Context, id string, balanceApplied, effectsApplied bool) error

	// ListApprovedPendingEffects returns approved requests whose ledger
	// effects have not fully applied. Reconciliation input.
	ListApprovedPendingEffects(ctx context.Context) ([]Request, error)
}
