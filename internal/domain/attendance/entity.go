package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusLate     Status = "late"
	StatusVacation Status = "vacation"
)

// Attendance is the single record per (employee, work date). Derived hour
// fields are owned by the attendance ledger and populated on check-out.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // work date, truncated to day
	CheckIn    *time.Time
	CheckOut   *time.Time

	WorkHours     decimal.Decimal // two-decimal precision
	OvertimeHours decimal.Decimal
	NightHours    int
	IsHoliday     bool

	Status   Status
	Notes    *string
	Location *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// MonthlySummary aggregates one employee's records over a calendar month.
type MonthlySummary struct {
	EmployeeID string
	YearMonth  string // "YYYY-MM"

	DaysByStatus map[Status]int

	TotalWorkHours     decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	TotalNightHours    int
	HolidayDaysWorked  int
}
