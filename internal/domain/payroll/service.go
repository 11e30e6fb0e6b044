package payroll

import "context"

// PayrollService creates and reads payroll records. Draft records reach
// approved exclusively through the approval workflow.
type PayrollService interface {
	// CreateDraft inserts a draft record for the employee and period.
	CreateDraft(ctx context.Context, req CreateDraftRequest) (RecordResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context) ([]RecordResponse, error)
}
