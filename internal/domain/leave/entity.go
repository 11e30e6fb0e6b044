package leave

import (
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
)

// TypeCode is the typed leave-type identifier. Accrual rules are looked up
// by code once at configuration time, never by raw strings inside ledger
// code.
type TypeCode string

const (
	TypeAnnual TypeCode = "ANNUAL"
	TypeSick   TypeCode = "SICK"
	TypeUnpaid TypeCode = "UNPAID"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Code        TypeCode
	Name        string
	Description *string

	// Accrued types get a yearly grant computed from tenure; the rest have
	// no quota and skip balance checks entirely.
	HasQuota bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance is one ledger entry per (employee, leave type, year).
// Invariant: RemainingDays = TotalDays + CarriedOverDays - UsedDays.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	TotalDays       float64
	UsedDays        float64
	CarriedOverDays float64
	RemainingDays   float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	LeaveTypeCode *string
	LeaveTypeName *string
}

// Remaining computes the invariant value from the entry's parts.
func (b Balance) Remaining() float64 {
	return b.TotalDays + b.CarriedOverDays - b.UsedDays
}

// Request is a requested absence. Its status column is owned by the
// approval workflow; the leave services never transition it directly.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int // inclusive day count, derived at submission

	Reason string

	Status          approval.Status
	ApproverID      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	// Commit-then-apply bookkeeping: the decision is durable before ledger
	// effects run, and each effect records its own completion.
	BalanceApplied bool
	EffectsApplied bool

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	LeaveTypeCode *string
	LeaveTypeName *string
	EmployeeName  *string
}

// DayCountInclusive returns the calendar days in [start, end], inclusive of
// both endpoints.
func DayCountInclusive(start, end time.Time) int {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
