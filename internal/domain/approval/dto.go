package approval

import (
	"github.com/loomhr/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitPurchaseRequest struct {
	EmployeeID  string `json:"employee_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

func (r SubmitPurchaseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if validator.IsEmpty(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount is required"})
	} else if amount, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be a decimal number"})
	} else if amount.IsNegative() || amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	RequestID string  `json:"request_id"`
	Kind      string  `json:"kind"`
	Decision  string  `json:"decision"` // "approve" or "reject"
	Reason    *string `json:"reason,omitempty"`
}

func (r DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request_id is required"})
	}
	if !validator.IsInSlice(r.Decision, []string{string(DecisionApprove), string(DecisionReject)}) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be approve or reject"})
	}
	if Decision(r.Decision) == DecisionReject && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PurchaseRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Description     string  `json:"description"`
	Amount          string  `json:"amount"`
	Status          string  `json:"status"`
	ApproverID      *string `json:"approver_id,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	SubmittedAt     string  `json:"submitted_at"`
}

// ToResponse converts a PurchaseRequest to its response payload.
func (p PurchaseRequest) ToResponse() PurchaseRequestResponse {
	var approvedAt *string
	if p.ApprovedAt != nil {
		s := p.ApprovedAt.Format("2006-01-02 15:04:05")
		approvedAt = &s
	}

	return PurchaseRequestResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		Description:     p.Description,
		Amount:          p.Amount.StringFixed(2),
		Status:          string(p.Status),
		ApproverID:      p.ApproverID,
		ApprovedAt:      approvedAt,
		RejectionReason: p.RejectionReason,
		SubmittedAt:     p.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}
