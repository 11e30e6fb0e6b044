// Package workforce is the operations facade: the single boundary the
// HTTP layer calls. It resolves the verified caller from the session
// token, applies the caller's identity to each command, and delegates to
// the ledgers and the approval workflow.
package workforce

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
	"github.com/loomhr/workforce-backend-go/internal/domain/auth"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/domain/user"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
)

// Identity is the verified caller extracted from the session token.
type Identity struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

// IdentityFromContext reads the caller's claims placed in the context by
// the token verifier. Fails with auth.ErrUnauthorized when the claims are
// absent or malformed.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, auth.ErrUnauthorized
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)

	role := user.Role(roleStr)
	if !role.Valid() {
		return Identity{}, auth.ErrUnauthorized
	}

	return Identity{UserID: userID, EmployeeID: employeeID, Role: role}, nil
}

// CheckInCommand carries the optional fields of a check-in; the employee
// and date come from the caller's identity and the clock.
type CheckInCommand struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type CheckOutCommand struct {
	Notes *string `json:"notes,omitempty"`
}

type SubmitLeaveCommand struct {
	LeaveTypeCode string `json:"leave_type_code"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
}

type SubmitPurchaseCommand struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type DecideCommand struct {
	Decision string  `json:"decision"`
	Reason   *string `json:"reason,omitempty"`
}

// Facade is the exposed operation set, each mapping 1:1 to an HTTP
// command.
type Facade interface {
	CheckIn(ctx context.Context, cmd CheckInCommand) (attendance.AttendanceResponse, error)
	CheckOut(ctx context.Context, cmd CheckOutCommand) (attendance.AttendanceResponse, error)
	GetTodayStatus(ctx context.Context) (attendance.AttendanceResponse, error)
	ListAttendance(ctx context.Context, yearMonth string) ([]attendance.AttendanceResponse, error)
	GetMonthlySummary(ctx context.Context, yearMonth string) (attendance.MonthlySummaryResponse, error)

	SubmitLeaveRequest(ctx context.Context, cmd SubmitLeaveCommand) (leave.RequestResponse, error)
	ListLeaveRequests(ctx context.Context) ([]leave.RequestResponse, error)
	DecideLeaveRequest(ctx context.Context, requestID string, cmd DecideCommand) (leave.RequestResponse, error)
	GetLeaveBalances(ctx context.Context, year int) (map[string]leave.BalanceResponse, error)
	GrantAnnualLeave(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error)

	SubmitApprovableRequest(ctx context.Context, cmd SubmitPurchaseCommand) (approval.PurchaseRequestResponse, error)
	ListApprovableRequests(ctx context.Context) ([]approval.PurchaseRequestResponse, error)
	DecideApprovableRequest(ctx context.Context, requestID string, cmd DecideCommand) (approval.PurchaseRequestResponse, error)
}

type FacadeImpl struct {
	clock clock.Clock

	attendanceService attendance.AttendanceService
	balanceService    leave.BalanceService
	requestService    leave.RequestService
	workflowService   approval.WorkflowService
}

func NewFacade(
	clk clock.Clock,
	attendanceService attendance.AttendanceService,
	balanceService leave.BalanceService,
	requestService leave.RequestService,
	workflowService approval.WorkflowService,
) Facade {
	return &FacadeImpl{
		clock:             clk,
		attendanceService: attendanceService,
		balanceService:    balanceService,
		requestService:    requestService,
		workflowService:   workflowService,
	}
}

// CheckIn implements Facade.
func (f *FacadeImpl) CheckIn(ctx context.Context, cmd CheckInCommand) (attendance.AttendanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return f.attendanceService.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: identity.EmployeeID,
		Date:       f.clock.Now().Format("2006-01-02"),
		Location:   cmd.Location,
		Notes:      cmd.Notes,
	})
}

// CheckOut implements Facade.
func (f *FacadeImpl) CheckOut(ctx context.Context, cmd CheckOutCommand) (attendance.AttendanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return f.attendanceService.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeID: identity.EmployeeID,
		Date:       f.clock.Now().Format("2006-01-02"),
		Notes:      cmd.Notes,
	})
}

// GetTodayStatus implements Facade.
func (f *FacadeImpl) GetTodayStatus(ctx context.Context) (attendance.AttendanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return f.attendanceService.GetTodayStatus(ctx, identity.EmployeeID, f.clock.Now())
}

// ListAttendance implements Facade.
func (f *FacadeImpl) ListAttendance(ctx context.Context, yearMonth string) ([]attendance.AttendanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return f.attendanceService.ListMonth(ctx, identity.EmployeeID, yearMonth)
}

// GetMonthlySummary implements Facade.
func (f *FacadeImpl) GetMonthlySummary(ctx context.Context, yearMonth string) (attendance.MonthlySummaryResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	return f.attendanceService.MonthlySummary(ctx, identity.EmployeeID, yearMonth)
}

// SubmitLeaveRequest implements Facade.
func (f *FacadeImpl) SubmitLeaveRequest(ctx context.Context, cmd SubmitLeaveCommand) (leave.RequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return f.requestService.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID:    identity.EmployeeID,
		LeaveTypeCode: cmd.LeaveTypeCode,
		StartDate:     cmd.StartDate,
		EndDate:       cmd.EndDate,
		Reason:        cmd.Reason,
	})
}

// ListLeaveRequests implements Facade.
func (f *FacadeImpl) ListLeaveRequests(ctx context.Context) ([]leave.RequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return f.requestService.ListRequests(ctx, identity.EmployeeID)
}

// DecideLeaveRequest implements Facade. On a partial approval the decided
// request is returned together with the *PartialApprovalError so the
// caller sees the committed status alongside the pending effect.
func (f *FacadeImpl) DecideLeaveRequest(ctx context.Context, requestID string, cmd DecideCommand) (leave.RequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	decideErr := f.workflowService.Decide(ctx, approval.KindLeave, requestID,
		identity.EmployeeID, identity.Role, approval.Decision(cmd.Decision), cmd.Reason)
	if decideErr != nil && !approval.IsPartial(decideErr) {
		return leave.RequestResponse{}, decideErr
	}

	request, err := f.requestService.GetRequest(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return request, decideErr
}

// GetLeaveBalances implements Facade.
func (f *FacadeImpl) GetLeaveBalances(ctx context.Context, year int) (map[string]leave.BalanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = f.clock.Now().Year()
	}
	return f.balanceService.GetBalances(ctx, identity.EmployeeID, year)
}

// GrantAnnualLeave implements Facade. Granting quota to an employee is a
// manager operation.
func (f *FacadeImpl) GrantAnnualLeave(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	if !identity.Role.AtLeast(user.RoleManager) {
		return leave.BalanceResponse{}, user.ErrManagerAccessRequired
	}

	if year == 0 {
		year = f.clock.Now().Year()
	}
	return f.balanceService.GrantAnnual(ctx, leave.GrantAnnualRequest{EmployeeID: employeeID, Year: year})
}

// SubmitApprovableRequest implements Facade.
func (f *FacadeImpl) SubmitApprovableRequest(ctx context.Context, cmd SubmitPurchaseCommand) (approval.PurchaseRequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return approval.PurchaseRequestResponse{}, err
	}

	return f.workflowService.SubmitPurchase(ctx, approval.SubmitPurchaseRequest{
		EmployeeID:  identity.EmployeeID,
		Description: cmd.Description,
		Amount:      cmd.Amount,
	})
}

// ListApprovableRequests implements Facade.
func (f *FacadeImpl) ListApprovableRequests(ctx context.Context) ([]approval.PurchaseRequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return f.workflowService.ListPurchases(ctx, identity.EmployeeID)
}

// DecideApprovableRequest implements Facade.
func (f *FacadeImpl) DecideApprovableRequest(ctx context.Context, requestID string, cmd DecideCommand) (approval.PurchaseRequestResponse, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return approval.PurchaseRequestResponse{}, err
	}

	err = f.workflowService.Decide(ctx, approval.KindPurchase, requestID,
		identity.EmployeeID, identity.Role, approval.Decision(cmd.Decision), cmd.Reason)
	if err != nil {
		return approval.PurchaseRequestResponse{}, err
	}

	return f.workflowService.GetPurchase(ctx, requestID)
}
