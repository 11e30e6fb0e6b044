package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/loomhr/workforce-backend-go/internal/config"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/domain/user"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/loomhr/workforce-backend-go/internal/pkg/jwt"
	"github.com/loomhr/workforce-backend-go/internal/repository/memory"
	approvalService "github.com/loomhr/workforce-backend-go/internal/service/approval"
	attendanceService "github.com/loomhr/workforce-backend-go/internal/service/attendance"
	authService "github.com/loomhr/workforce-backend-go/internal/service/auth"
	leaveService "github.com/loomhr/workforce-backend-go/internal/service/leave"
	payrollService "github.com/loomhr/workforce-backend-go/internal/service/payroll"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

const routerTestSecret = "test-secret-key-for-jwt"

type routerTestEnv struct {
	router http.Handler

	staffID   string
	managerID string
	ownerID   string

	staffToken   string
	managerToken string
	ownerToken   string
}

func newRouterTestEnv(t *testing.T) *routerTestEnv {
	t.Helper()
	ctx := context.Background()

	clk := clock.Fixed{T: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)} // Monday

	users := memory.NewUserRepository()
	employees := memory.NewEmployeeRepository()
	attendances := memory.NewAttendanceRepository()
	leaveTypes := memory.NewLeaveTypeRepository()
	balances := memory.NewBalanceRepository()
	leaveRequests := memory.NewLeaveRequestRepository()
	purchases := memory.NewPurchaseRequestRepository()
	payrolls := memory.NewPayrollRepository()

	_, err := leaveTypes.Create(ctx, leave.LeaveType{
		Code: leave.TypeAnnual, Name: "Annual Leave", HasQuota: true,
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(routerTestSecret, "1h")

	authSvc := authService.NewAuthService(users, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(clk, attendances, employees)
	balanceSvc := leaveService.NewBalanceService(balances, leaveTypes, employees, false)
	requestSvc := leaveService.NewRequestService(clk, leaveRequests, leaveTypes, balances, employees)
	payrollSvc := payrollService.NewPayrollService(payrolls, employees)
	workflowSvc := approvalService.NewWorkflowService(
		clk, purchases, leaveRequests, payrolls, leaveTypes, employees, balanceSvc, attendanceSvc,
	)
	facade := workforce.NewFacade(clk, attendanceSvc, balanceSvc, requestSvc, workflowSvc)

	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	env := &routerTestEnv{
		router: NewRouter(
			cfg,
			jwtService,
			NewAuthHandler(authSvc),
			NewAttendanceHandler(facade, attendanceSvc),
			NewLeaveHandler(facade, workflowSvc),
			NewPurchaseHandler(facade),
			NewPayrollHandler(payrollSvc, workflowSvc),
		),
	}

	hireDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		code, name, email string
		role              user.Role
		employeeID        *string
		token             *string
	}{
		{"100001", "Staff Member", "staff@example.com", user.RoleStaff, &env.staffID, &env.staffToken},
		{"100002", "Team Manager", "manager@example.com", user.RoleManager, &env.managerID, &env.managerToken},
		{"100003", "Company Owner", "owner@example.com", user.RoleOwner, &env.ownerID, &env.ownerToken},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	for _, s := range seed {
		emp, err := employees.Create(ctx, employee.Employee{
			EmployeeCode: s.code,
			FullName:     s.name,
			Email:        s.email,
			HireDate:     hireDate,
		})
		require.NoError(t, err)
		*s.employeeID = emp.ID

		u, err := users.Create(ctx, user.User{
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
			EmployeeID:   &emp.ID,
		})
		require.NoError(t, err)

		token, _, err := jwtService.GenerateAccessToken(u.ID, u.Email, emp.ID, s.role)
		require.NoError(t, err)
		*s.token = token
	}

	return env
}

func (e *routerTestEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestRouter_Login(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
}

func TestRouter_Login_WrongPassword(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestRouter_CheckIn_RequiresToken(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/attendances/check-in", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestRouter_AttendanceFlow(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/attendances/check-in", env.staffToken, map[string]string{})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/attendances/check-in", env.staffToken, map[string]string{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp = env.do(t, http.MethodPost, "/api/v1/attendances/check-out", env.staffToken, map[string]string{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/attendances/today", env.staffToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "present", data["status"])
}

func TestRouter_LeaveDecision_RequiresManager(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/leaves/some-id/decision", env.staffToken, map[string]string{
		"decision": "approve",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, resp.Success)
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, _ := env.do(t, http.MethodPost,
		"/api/v1/leaves/balances/"+env.staffID+"/grant?year=2025", env.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/leaves", env.staffToken, map[string]string{
		"leave_type_code": "ANNUAL",
		"start_date":      "2025-06-09",
		"end_date":        "2025-06-11",
		"reason":          "family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	requestID, _ := data["id"].(string)
	require.NotEmpty(t, requestID)

	rec, resp = env.do(t, http.MethodPost, "/api/v1/leaves/"+requestID+"/decision", env.managerToken, map[string]string{
		"decision": "approve",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "approved", data["status"])

	rec, resp = env.do(t, http.MethodGet, "/api/v1/leaves/balances?year=2025", env.staffToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	balances, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	annual, ok := balances["ANNUAL"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3.0, annual["used"])
}

func TestRouter_Payroll_OwnerOnly(t *testing.T) {
	env := newRouterTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/payrolls", env.managerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/payrolls", env.ownerToken, map[string]interface{}{
		"employee_id":  env.staffID,
		"period_month": 6,
		"period_year":  2025,
		"base_salary":  "5000.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	recordID, _ := data["id"].(string)
	require.NotEmpty(t, recordID)
	assert.Equal(t, "draft", data["status"])

	rec, resp = env.do(t, http.MethodPost, "/api/v1/payrolls/"+recordID+"/approve", env.ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "approved", data["status"])
}
