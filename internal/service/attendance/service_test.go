package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/loomhr/workforce-backend-go/internal/pkg/validator"
	"github.com/loomhr/workforce-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceTestService(t *testing.T, clk clock.Clock) (attendance.AttendanceService, string) {
	t.Helper()
	ctx := context.Background()

	empRepo := memory.NewEmployeeRepository()
	emp, err := empRepo.Create(ctx, employee.Employee{
		EmployeeCode: "100001",
		FullName:     "Aiko Tanaka",
		Email:        "aiko@example.com",
		HireDate:     time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	svc := NewAttendanceService(clk, memory.NewAttendanceRepository(), empRepo)
	return svc, emp.ID
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)} // Monday
	svc, empID := newAttendanceTestService(t, clk)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: empID,
		Date:       "2025-03-03",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.NotNil(t, resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.False(t, resp.IsHoliday)
	assert.Equal(t, "0.00", resp.WorkHours)
}

func TestAttendanceService_CheckIn_Duplicate(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, _ := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "b4fbe2a1-0000-0000-0000-000000000000",
		Date:       "2025-03-03",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_CheckOut_DerivesHours(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	clk := &stepClock{times: []time.Time{
		checkIn,
		time.Date(2025, 3, 3, 19, 30, 0, 0, time.UTC),
	}}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	assert.Equal(t, "10.50", resp.WorkHours)
	assert.Equal(t, "2.50", resp.OvertimeHours)
	assert.Equal(t, 0, resp.NightHours)
	assert.NotNil(t, resp.CheckOutTime)
}

func TestAttendanceService_CheckOut_NightShift(t *testing.T) {
	ctx := context.Background()
	clk := &stepClock{times: []time.Time{
		time.Date(2025, 3, 3, 21, 30, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 23, 30, 0, 0, time.UTC),
	}}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	assert.Equal(t, "2.00", resp.WorkHours)
	assert.Equal(t, "0.00", resp.OvertimeHours)
	assert.Equal(t, 1, resp.NightHours)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	ctx := context.Background()
	clk := &stepClock{times: []time.Time{
		time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC),
	}}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckOut_AppendsNotes(t *testing.T) {
	ctx := context.Background()
	clk := &stepClock{times: []time.Time{
		time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC),
	}}
	svc, empID := newAttendanceTestService(t, clk)

	morning := "client visit"
	evening := "wrapped up early"
	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03", Notes: &morning})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03", Notes: &evening})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "client visit, wrapped up early", *resp.Notes)
}

func TestAttendanceService_CheckIn_HolidayFlag(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)} // Saturday
	svc, empID := newAttendanceTestService(t, clk)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-08"})
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
}

func TestAttendanceService_StampVacationDay_Idempotent(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.StampVacationDay(ctx, empID, day, "annual leave"))
	require.NoError(t, svc.StampVacationDay(ctx, empID, day, "annual leave"))

	resp, err := svc.GetTodayStatus(ctx, empID, day)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusVacation), resp.Status)

	summary, err := svc.MonthlySummary(ctx, empID, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DaysByStatus[string(attendance.StatusVacation)])
}

func TestAttendanceService_MonthlySummary(t *testing.T) {
	ctx := context.Background()
	clk := &stepClock{times: []time.Time{
		time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 19, 0, 0, 0, time.UTC), // 10h, 2h overtime
		time.Date(2025, 3, 8, 22, 0, 0, 0, time.UTC), // Saturday night
		time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC),  // 4h, 4 night buckets
	}}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-08"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: empID, Date: "2025-03-08"})
	require.NoError(t, err)

	require.NoError(t, svc.StampVacationDay(ctx, empID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "annual leave"))

	summary, err := svc.MonthlySummary(ctx, empID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.DaysByStatus[string(attendance.StatusPresent)])
	assert.Equal(t, 1, summary.DaysByStatus[string(attendance.StatusVacation)])
	assert.Equal(t, "14.00", summary.TotalWorkHours)
	assert.Equal(t, "2.00", summary.TotalOvertimeHours)
	assert.Equal(t, 4, summary.TotalNightHours)
	assert.Equal(t, 1, summary.HolidayDaysWorked)
}

func TestAttendanceService_MonthlySummary_Empty(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	summary, err := svc.MonthlySummary(ctx, empID, "2025-02")
	require.NoError(t, err)
	assert.Empty(t, summary.DaysByStatus)
	assert.Equal(t, "0.00", summary.TotalWorkHours)
}

func TestAttendanceService_CheckIn_OverwritesVacationStamp(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	require.NoError(t, svc.StampVacationDay(ctx, empID, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), "annual leave"))

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.NotNil(t, resp.CheckInTime)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_ListMonth(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: empID, Date: "2025-03-03"})
	require.NoError(t, err)
	require.NoError(t, svc.StampVacationDay(ctx, empID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "annual leave"))

	records, err := svc.ListMonth(ctx, empID, "2025-03")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-03-03", records[0].Date)
	assert.Equal(t, string(attendance.StatusVacation), records[1].Status)

	records, err = svc.ListMonth(ctx, empID, "2025-04")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAttendanceService_ListMonth_BadPeriod(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed{T: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	svc, empID := newAttendanceTestService(t, clk)

	_, err := svc.ListMonth(ctx, empID, "March 2025")
	require.Error(t, err)
	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

// stepClock returns the queued timestamps in order, then keeps returning
// the last one.
type stepClock struct {
	times []time.Time
	i     int
}

func (c *stepClock) Now() time.Time {
	if c.i >= len(c.times) {
		return c.times[len(c.times)-1]
	}
	t := c.times[c.i]
	c.i++
	return t
}
