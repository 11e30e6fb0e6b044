package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/domain/user"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

type WorkflowServiceImpl struct {
	clock  clock.Clock
	stores map[approval.Kind]approval.RequestStore

	purchaseRepo  approval.PurchaseRequestRepository
	leaveRepo     leave.RequestRepository
	leaveTypeRepo leave.LeaveTypeRepository
	employeeRepo  employee.EmployeeRepository

	balanceService    leave.BalanceService
	attendanceService attendance.AttendanceService
}

// NewWorkflowService wires one store per request kind. The leave and
// payroll repositories double as their kind's store; purchase requests
// live in this package's own repository.
func NewWorkflowService(
	clk clock.Clock,
	purchaseRepo approval.PurchaseRequestRepository,
	leaveRepo leave.RequestRepository,
	payrollStore approval.RequestStore,
	leaveTypeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	balanceService leave.BalanceService,
	attendanceService attendance.AttendanceService,
) approval.WorkflowService {
	return &WorkflowServiceImpl{
		clock: clk,
		stores: map[approval.Kind]approval.RequestStore{
			approval.KindLeave:    leaveRepo,
			approval.KindPurchase: purchaseRepo,
			approval.KindPayroll:  payrollStore,
		},
		purchaseRepo:      purchaseRepo,
		leaveRepo:         leaveRepo,
		leaveTypeRepo:     leaveTypeRepo,
		employeeRepo:      employeeRepo,
		balanceService:    balanceService,
		attendanceService: attendanceService,
	}
}

// SubmitPurchase implements approval.WorkflowService.
func (s *WorkflowServiceImpl) SubmitPurchase(ctx context.Context, req approval.SubmitPurchaseRequest) (approval.PurchaseRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.PurchaseRequestResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return approval.PurchaseRequestResponse{}, err
	}

	amount, _ := decimal.NewFromString(req.Amount)
	request := approval.PurchaseRequest{
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Amount:      amount,
		Status:      approval.StatusPending,
		SubmittedAt: s.clock.Now(),
	}

	created, err := s.purchaseRepo.Create(ctx, request)
	if err != nil {
		return approval.PurchaseRequestResponse{}, fmt.Errorf("failed to create purchase request: %w", err)
	}
	return created.ToResponse(), nil
}

// GetPurchase implements approval.WorkflowService.
func (s *WorkflowServiceImpl) GetPurchase(ctx context.Context, id string) (approval.PurchaseRequestResponse, error) {
	request, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return approval.PurchaseRequestResponse{}, err
	}
	return request.ToResponse(), nil
}

// ListPurchases implements approval.WorkflowService.
func (s *WorkflowServiceImpl) ListPurchases(ctx context.Context, employeeID string) ([]approval.PurchaseRequestResponse, error) {
	requests, err := s.purchaseRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}

	responses := make([]approval.PurchaseRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}
	return responses, nil
}

// Decide implements approval.WorkflowService. The checks run in a fixed
// order so callers get stable errors: existence, state, privilege,
// self-approval, then the decision itself.
func (s *WorkflowServiceImpl) Decide(ctx context.Context, kind approval.Kind, requestID, actorEmployeeID string, actorRole user.Role, decision approval.Decision, reason *string) error {
	policy, err := approval.PolicyFor(kind)
	if err != nil {
		return err
	}
	store, ok := s.stores[kind]
	if !ok {
		return approval.ErrUnknownKind
	}

	request, err := store.GetApprovable(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != policy.DecidableFrom {
		return approval.ErrInvalidState
	}
	if !actorRole.AtLeast(policy.RequiredRole) {
		return approval.ErrRoleNotPermitted
	}
	if actorEmployeeID == request.SubjectEmployeeID {
		return approval.ErrSelfApproval
	}

	var target approval.Status
	switch decision {
	case approval.DecisionApprove:
		target = approval.StatusApproved
	case approval.DecisionReject:
		if !policy.AllowReject {
			return approval.ErrInvalidDecision
		}
		target = approval.StatusRejected
	default:
		return approval.ErrInvalidDecision
	}

	// Conditional transition: the storage layer only moves rows still in
	// the decidable status, so a concurrent second decision loses here.
	if err := store.Transition(ctx, requestID, policy.DecidableFrom, target, actorEmployeeID, reason, s.clock.Now()); err != nil {
		return err
	}

	if kind == approval.KindLeave && target == approval.StatusApproved {
		return s.applyLeaveEffects(ctx, requestID)
	}
	return nil
}

// applyLeaveEffects runs the post-approval ledger effects for one leave
// request: consume the balance, then stamp each day of the range as
// vacation. The approved status is never rolled back; a sub-step failure
// surfaces as *PartialApprovalError and is retried by reconciliation.
func (s *WorkflowServiceImpl) applyLeaveEffects(ctx context.Context, requestID string) error {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "load_request", Err: err}
	}
	if request.EffectsApplied {
		return nil
	}

	if !request.BalanceApplied {
		leaveType, err := s.leaveTypeRepo.GetByID(ctx, request.LeaveTypeID)
		if err != nil {
			return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "load_leave_type", Err: err}
		}

		if leaveType.HasQuota {
			err := s.balanceService.AdjustBalance(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), -float64(request.TotalDays))
			if err != nil {
				return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "adjust_balance", Err: err}
			}
		}

		if err := s.leaveRepo.SetEffectFlags(ctx, requestID, true, false); err != nil {
			return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "record_balance_applied", Err: err}
		}
	}

	// Stamping is idempotent per day, so a retry after a mid-range failure
	// re-stamps already-written days harmlessly.
	for day := request.StartDate; !day.After(request.EndDate); day = day.AddDate(0, 0, 1) {
		if err := s.attendanceService.StampVacationDay(ctx, request.EmployeeID, day, request.Reason); err != nil {
			return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "stamp_vacation", Err: err}
		}
	}

	if err := s.leaveRepo.SetEffectFlags(ctx, requestID, true, true); err != nil {
		return &approval.PartialApprovalError{RequestID: requestID, Kind: approval.KindLeave, Step: "record_effects_applied", Err: err}
	}
	return nil
}

// ReconcileLeaveEffects implements approval.WorkflowService.
func (s *WorkflowServiceImpl) ReconcileLeaveEffects(ctx context.Context) (int, error) {
	pending, err := s.leaveRepo.ListApprovedPendingEffects(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list requests pending effects: %w", err)
	}

	completed := 0
	var errs []error
	for _, request := range pending {
		if err := s.applyLeaveEffects(ctx, request.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		completed++
	}
	return completed, errors.Join(errs...)
}
