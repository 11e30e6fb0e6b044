package attendance

import (
	"context"
	"time"
)

// AttendanceService is the attendance ledger: the sole owner of attendance
// records and their derived hour fields.
type AttendanceService interface {
	// CheckIn opens the record for (employee, date) with status present.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the record and populates the derived fields.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// StampVacationDay upserts a vacation record for the date. Idempotent;
	// invoked once per day of an approved leave range.
	StampVacationDay(ctx context.Context, employeeID string, date time.Time, label string) error

	// GetTodayStatus returns the record for the given date, or
	// ErrAttendanceNotFound when the employee has no record yet.
	GetTodayStatus(ctx context.Context, employeeID string, date time.Time) (AttendanceResponse, error)

	// ListMonth returns the employee's records for "YYYY-MM" in date order.
	ListMonth(ctx context.Context, employeeID string, yearMonth string) ([]AttendanceResponse, error)

	// MonthlySummary aggregates day counts and hour sums for "YYYY-MM".
	MonthlySummary(ctx context.Context, employeeID string, yearMonth string) (MonthlySummaryResponse, error)

	// DeleteAttendance removes a record. Administrative override.
	DeleteAttendance(ctx context.Context, id string) error
}
