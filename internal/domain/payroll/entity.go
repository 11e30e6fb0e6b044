package payroll

import (
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

// Record - generated payroll result for one employee and period. Records
// enter the approval workflow in draft; only the owner approves them, and
// there is no rejection path.
type Record struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BaseSalary      decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	Status     approval.Status
	ApprovedBy *string
	ApprovedAt *time.Time
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// Net computes base + allowances - deductions.
func (r Record) Net() decimal.Decimal {
	return r.BaseSalary.Add(r.TotalAllowances).Sub(r.TotalDeductions)
}
