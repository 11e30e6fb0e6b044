package attendance

import (
	"time"

	"github.com/loomhr/workforce-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // "YYYY-MM-DD"
	Location   *string `json:"location,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
	WorkHours     string  `json:"work_hours"`
	OvertimeHours string  `json:"overtime_hours"`
	NightHours    int     `json:"night_hours"`
	IsHoliday     bool    `json:"is_holiday"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	Location      *string `json:"location,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

type MonthlySummaryResponse struct {
	EmployeeID         string         `json:"employee_id"`
	YearMonth          string         `json:"year_month"`
	DaysByStatus       map[string]int `json:"days_by_status"`
	TotalWorkHours     string         `json:"total_work_hours"`
	TotalOvertimeHours string         `json:"total_overtime_hours"`
	TotalNightHours    int            `json:"total_night_hours"`
	HolidayDaysWorked  int            `json:"holiday_days_worked"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts an Attendance entity to its response payload.
func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Date:          a.Date.Format("2006-01-02"),
		CheckInTime:   timePtrToString(a.CheckIn),
		CheckOutTime:  timePtrToString(a.CheckOut),
		WorkHours:     a.WorkHours.StringFixed(2),
		OvertimeHours: a.OvertimeHours.StringFixed(2),
		NightHours:    a.NightHours,
		IsHoliday:     a.IsHoliday,
		Status:        string(a.Status),
		Notes:         a.Notes,
		Location:      a.Location,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToResponse converts a MonthlySummary to its response payload.
func (s MonthlySummary) ToResponse() MonthlySummaryResponse {
	days := make(map[string]int, len(s.DaysByStatus))
	for status, count := range s.DaysByStatus {
		days[string(status)] = count
	}

	return MonthlySummaryResponse{
		EmployeeID:         s.EmployeeID,
		YearMonth:          s.YearMonth,
		DaysByStatus:       days,
		TotalWorkHours:     s.TotalWorkHours.StringFixed(2),
		TotalOvertimeHours: s.TotalOvertimeHours.StringFixed(2),
		TotalNightHours:    s.TotalNightHours,
		HolidayDaysWorked:  s.HolidayDaysWorked,
	}
}
