package payroll

import (
	"context"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
)

// RecordRepository persists payroll records. It satisfies
// approval.RequestStore so the workflow can drive draft -> approved.
type RecordRepository interface {
	approval.RequestStore

	// Create inserts a draft record. Fails with ErrRecordAlreadyExists when
	// the (employee_id, period_month, period_year) triple is taken.
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
