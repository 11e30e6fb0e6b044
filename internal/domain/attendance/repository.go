package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// storage layer enforces uniqueness on (employee_id, date); Create returns
// ErrDuplicateRecord when a concurrent insert loses that race.
type AttendanceRepository interface {
	// Create inserts a new record. Fails with ErrDuplicateRecord if one
	// already exists for (employee_id, date).
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns the record for the pair, or
	// ErrAttendanceNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update rewrites an existing record by ID.
	Update(ctx context.Context, att Attendance) error

	// Upsert creates or overwrites the record keyed by (employee_id, date).
	// Used by vacation stamping, which must be idempotent.
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	// ListByMonth returns all records for the employee within the calendar
	// month, ordered by date.
	ListByMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error)

	// Delete removes a record. Administrative override only.
	Delete(ctx context.Context, id string) error
}
