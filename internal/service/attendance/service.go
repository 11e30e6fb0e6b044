package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/loomhr/workforce-backend-go/internal/pkg/timecalc"
	"github.com/loomhr/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	clock clock.Clock
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	clk clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		clock:                clk,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Only a prior check-in blocks; a vacation stamp without a check-in
	// time gets overwritten.
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil && existing.CheckIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	checkInAt := s.clock.Now()
	record := attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		CheckIn:       &checkInAt,
		WorkHours:     decimal.Zero,
		OvertimeHours: decimal.Zero,
		IsHoliday:     timecalc.IsHoliday(date),
		Status:        attendance.StatusPresent,
		Notes:         req.Notes,
		Location:      req.Location,
	}

	if err == nil {
		created, upsertErr := s.AttendanceRepository.Upsert(ctx, record)
		if upsertErr != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to upsert attendance record: %w", upsertErr)
		}
		return created.ToResponse(), nil
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService. The derived hour
// fields are computed here and nowhere else.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOutAt := s.clock.Now()

	workHours, err := timecalc.ElapsedHours(*record.CheckIn, checkOutAt)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.CheckOut = &checkOutAt
	record.WorkHours = workHours
	record.OvertimeHours = timecalc.OvertimeHours(workHours)
	record.NightHours = timecalc.NightHours(*record.CheckIn, checkOutAt)
	record.IsHoliday = timecalc.IsHoliday(record.Date)
	record.Notes = appendNotes(record.Notes, req.Notes)

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return record.ToResponse(), nil
}

// StampVacationDay implements attendance.AttendanceService. The upsert
// makes re-stamping the same day a no-op apart from the timestamps, so
// approval retries stay safe.
func (s *AttendanceServiceImpl) StampVacationDay(ctx context.Context, employeeID string, date time.Time, label string) error {
	record := attendance.Attendance{
		EmployeeID:    employeeID,
		Date:          date,
		WorkHours:     decimal.Zero,
		OvertimeHours: decimal.Zero,
		IsHoliday:     timecalc.IsHoliday(date),
		Status:        attendance.StatusVacation,
		Notes:         &label,
	}

	if _, err := s.AttendanceRepository.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to stamp vacation day: %w", err)
	}
	return nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return record.ToResponse(), nil
}

// ListMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, employeeID string, yearMonth string) ([]attendance.AttendanceResponse, error) {
	period, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, validator.ValidationErrors{
			{Field: "month", Message: "month must be in YYYY-MM format"},
		}
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, employeeID, period.Year(), period.Month())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}
	return responses, nil
}

// MonthlySummary implements attendance.AttendanceService. Pure read; the
// sums come from the stored derived fields.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID string, yearMonth string) (attendance.MonthlySummaryResponse, error) {
	period, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "month must be in YYYY-MM format"},
		}
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, employeeID, period.Year(), period.Month())
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	summary := attendance.MonthlySummary{
		EmployeeID:         employeeID,
		YearMonth:          yearMonth,
		DaysByStatus:       make(map[attendance.Status]int),
		TotalWorkHours:     decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
	}

	for _, record := range records {
		summary.DaysByStatus[record.Status]++
		summary.TotalWorkHours = summary.TotalWorkHours.Add(record.WorkHours)
		summary.TotalOvertimeHours = summary.TotalOvertimeHours.Add(record.OvertimeHours)
		summary.TotalNightHours += record.NightHours
		if record.IsHoliday && record.Status == attendance.StatusPresent {
			summary.HolidayDaysWorked++
		}
	}

	return summary.ToResponse(), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// appendNotes joins the check-in and check-out notes comma-separated.
func appendNotes(existing, extra *string) *string {
	if extra == nil || *extra == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return extra
	}
	joined := strings.Join([]string{*existing, *extra}, ", ")
	return &joined
}
