package leave

import (
	"context"
	"testing"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/loomhr/workforce-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveTestEnv struct {
	balanceSvc leave.BalanceService
	requestSvc leave.RequestService

	employees  employee.EmployeeRepository
	balances   leave.BalanceRepository
	leaveTypes leave.LeaveTypeRepository

	annualTypeID string
	unpaidTypeID string
}

func newLeaveTestEnv(t *testing.T, allowNegative bool) *leaveTestEnv {
	t.Helper()
	ctx := context.Background()

	leaveTypes := memory.NewLeaveTypeRepository()
	annual, err := leaveTypes.Create(ctx, leave.LeaveType{Code: leave.TypeAnnual, Name: "Annual Leave", HasQuota: true})
	require.NoError(t, err)
	unpaid, err := leaveTypes.Create(ctx, leave.LeaveType{Code: leave.TypeUnpaid, Name: "Unpaid Leave", HasQuota: false})
	require.NoError(t, err)

	balances := memory.NewBalanceRepository()
	employees := memory.NewEmployeeRepository()
	clk := clock.Fixed{T: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	return &leaveTestEnv{
		balanceSvc:   NewBalanceService(balances, leaveTypes, employees, allowNegative),
		requestSvc:   NewRequestService(clk, memory.NewLeaveRequestRepository(), leaveTypes, balances, employees),
		employees:    employees,
		balances:     balances,
		leaveTypes:   leaveTypes,
		annualTypeID: annual.ID,
		unpaidTypeID: unpaid.ID,
	}
}

func (e *leaveTestEnv) createEmployee(t *testing.T, code string, hireDate time.Time) string {
	t.Helper()
	emp, err := e.employees.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Test Employee " + code,
		Email:        code + "@example.com",
		HireDate:     hireDate,
	})
	require.NoError(t, err)
	return emp.ID
}

func TestAnnualAccrual(t *testing.T) {
	tests := []struct {
		name     string
		hireDate time.Time
		year     int
		want     float64
	}{
		{"six months before year-end", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 2025, 6},
		{"eleven months capped", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 2025, 11},
		{"exactly one year", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 2025, 15},
		{"three years of service", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), 2025, 16},
		{"five years of service", time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 2025, 17},
		{"twenty-one years hits the cap", time.Date(2004, 12, 31, 0, 0, 0, 0, time.UTC), 2025, 25},
		{"forty years stays at the cap", time.Date(1985, 12, 31, 0, 0, 0, 0, time.UTC), 2025, 25},
		{"hired after year-end", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 2025, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, annualAccrual(tt.hireDate, tt.year))
		})
	}
}

func TestBalanceService_GrantAnnual(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC))

	resp, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, 16.0, resp.Total)
	assert.Equal(t, 0.0, resp.Used)
	assert.Equal(t, 16.0, resp.Remaining)
}

func TestBalanceService_GrantAnnual_PreservesUsedDays(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)
	require.NoError(t, env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, -3))

	resp, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, 16.0, resp.Total)
	assert.Equal(t, 3.0, resp.Used)
	assert.Equal(t, 13.0, resp.Remaining)
}

func TestBalanceService_GrantAnnual_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{
		EmployeeID: "0d9a1c00-0000-0000-0000-000000000000",
		Year:       2025,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBalanceService_AdjustBalance_ConsumeAndRestore(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	require.NoError(t, env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, -3))

	balances, err := env.balanceSvc.GetBalances(ctx, empID, 2025)
	require.NoError(t, err)
	annual := balances[string(leave.TypeAnnual)]
	assert.Equal(t, 3.0, annual.Used)
	assert.Equal(t, annual.Total-3, annual.Remaining)

	require.NoError(t, env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, 3))
	balances, err = env.balanceSvc.GetBalances(ctx, empID, 2025)
	require.NoError(t, err)
	annual = balances[string(leave.TypeAnnual)]
	assert.Equal(t, 0.0, annual.Used)
	assert.Equal(t, annual.Total, annual.Remaining)
}

func TestBalanceService_AdjustBalance_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025}) // 6 days
	require.NoError(t, err)

	err = env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, -7)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// Entry must be untouched after the rejected decrement.
	balances, err := env.balanceSvc.GetBalances(ctx, empID, 2025)
	require.NoError(t, err)
	annual := balances[string(leave.TypeAnnual)]
	assert.Equal(t, 0.0, annual.Used)
	assert.Equal(t, 6.0, annual.Remaining)
}

func TestBalanceService_AdjustBalance_NegativeAllowedByPolicy(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, true)
	empID := env.createEmployee(t, "100001", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025}) // 6 days
	require.NoError(t, err)

	require.NoError(t, env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, -7))

	balances, err := env.balanceSvc.GetBalances(ctx, empID, 2025)
	require.NoError(t, err)
	assert.Equal(t, -1.0, balances[string(leave.TypeAnnual)].Remaining)
}

func TestBalanceService_AdjustBalance_MissingEntry(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	err := env.balanceSvc.AdjustBalance(ctx, empID, env.annualTypeID, 2025, -1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	resp, err := env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    empID,
		LeaveTypeCode: string(leave.TypeAnnual),
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-03",
		Reason:        "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-07-01", resp.StartDate)
	assert.Equal(t, "2025-07-03", resp.EndDate)
}

func TestRequestService_Submit_SingleDay(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	resp, err := env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    empID,
		LeaveTypeCode: string(leave.TypeAnnual),
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-01",
		Reason:        "errand",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalDays)
}

func TestRequestService_Submit_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025}) // 6 days
	require.NoError(t, err)

	_, err = env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    empID,
		LeaveTypeCode: string(leave.TypeAnnual),
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-08",
		Reason:        "long trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestRequestService_Submit_UnpaidSkipsQuota(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	// No balance granted at all; unpaid leave has no quota to check.
	resp, err := env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    empID,
		LeaveTypeCode: string(leave.TypeUnpaid),
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-10",
		Reason:        "sabbatical",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.TotalDays)
}

func TestRequestService_Submit_UnknownType(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    empID,
		LeaveTypeCode: "MATERNITY",
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-03",
		Reason:        "n/a",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestRequestService_ListRequests(t *testing.T) {
	ctx := context.Background()
	env := newLeaveTestEnv(t, false)
	empID := env.createEmployee(t, "100001", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.balanceSvc.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: empID, Year: 2025})
	require.NoError(t, err)

	for _, dates := range [][2]string{{"2025-07-01", "2025-07-02"}, {"2025-08-04", "2025-08-04"}} {
		_, err := env.requestSvc.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    empID,
			LeaveTypeCode: string(leave.TypeAnnual),
			StartDate:     dates[0],
			EndDate:       dates[1],
			Reason:        "time off",
		})
		require.NoError(t, err)
	}

	requests, err := env.requestSvc.ListRequests(ctx, empID)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}
