package approval

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which class of request is moving through the workflow.
type Kind string

const (
	KindLeave    Kind = "leave"
	KindPurchase Kind = "purchase"
	KindPayroll  Kind = "payroll"
)

// Status is the shared request lifecycle. The approval workflow exclusively
// owns transitions between these values; terminal states are final.
type Status string

const (
	StatusDraft    Status = "draft" // payroll pre-state
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Approvable is the generic view the workflow needs of any request kind.
type Approvable struct {
	ID                string
	Kind              Kind
	SubjectEmployeeID string
	Status            Status
}

// PurchaseRequest is the concrete request kind owned by this package:
// a monetary request with no ledger side effects.
type PurchaseRequest struct {
	ID          string
	EmployeeID  string
	Description string
	Amount      decimal.Decimal

	Status          Status
	ApproverID      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}
