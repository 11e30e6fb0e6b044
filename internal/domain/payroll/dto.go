package payroll

import (
	"github.com/loomhr/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateDraftRequest struct {
	EmployeeID      string  `json:"employee_id"`
	PeriodMonth     int     `json:"period_month"`
	PeriodYear      int     `json:"period_year"`
	BaseSalary      string  `json:"base_salary"`
	TotalAllowances string  `json:"total_allowances"`
	TotalDeductions string  `json:"total_deductions"`
	Notes           *string `json:"notes,omitempty"`
}

func (r CreateDraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2200 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "period_year is out of range"})
	}

	for field, value := range map[string]string{
		"base_salary":      r.BaseSalary,
		"total_allowances": r.TotalAllowances,
		"total_deductions": r.TotalDeductions,
	} {
		if validator.IsEmpty(value) {
			continue // omitted amounts default to zero
		}
		if amount, err := decimal.NewFromString(value); err != nil {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be a decimal number"})
		} else if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	PeriodMonth     int     `json:"period_month"`
	PeriodYear      int     `json:"period_year"`
	BaseSalary      string  `json:"base_salary"`
	TotalAllowances string  `json:"total_allowances"`
	TotalDeductions string  `json:"total_deductions"`
	NetSalary       string  `json:"net_salary"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToResponse converts a Record to its response payload.
func (r Record) ToResponse() RecordResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format("2006-01-02 15:04:05")
		approvedAt = &s
	}

	return RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		PeriodMonth:     r.PeriodMonth,
		PeriodYear:      r.PeriodYear,
		BaseSalary:      r.BaseSalary.StringFixed(2),
		TotalAllowances: r.TotalAllowances.StringFixed(2),
		TotalDeductions: r.TotalDeductions.StringFixed(2),
		NetSalary:       r.NetSalary.StringFixed(2),
		Status:          string(r.Status),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      approvedAt,
		Notes:           r.Notes,
	}
}
