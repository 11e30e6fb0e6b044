package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
)

type RequestServiceImpl struct {
	clock clock.Clock
	leave.RequestRepository
	leave.LeaveTypeRepository
	leave.BalanceRepository
	employee.EmployeeRepository
}

func NewRequestService(
	clk clock.Clock,
	requestRepo leave.RequestRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.EmployeeRepository,
) leave.RequestService {
	return &RequestServiceImpl{
		clock:               clk,
		RequestRepository:   requestRepo,
		LeaveTypeRepository: leaveTypeRepo,
		BalanceRepository:   balanceRepo,
		EmployeeRepository:  employeeRepo,
	}
}

// Submit implements leave.RequestService. Quota-bearing types require an
// existing balance entry with enough remaining days; types without a quota
// skip the check entirely.
func (s *RequestServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.RequestResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByCode(ctx, leave.TypeCode(req.LeaveTypeCode))
	if err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	totalDays := leave.DayCountInclusive(startDate, endDate)

	if leaveType.HasQuota {
		balance, err := s.BalanceRepository.GetByEmployeeTypeYear(ctx, req.EmployeeID, leaveType.ID, startDate.Year())
		if err != nil {
			return leave.RequestResponse{}, err
		}
		if balance.RemainingDays < float64(totalDays) {
			return leave.RequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      approval.StatusPending,
		SubmittedAt: s.clock.Now(),
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	code := string(leaveType.Code)
	created.LeaveTypeCode = &code
	return created.ToResponse(), nil
}

// GetRequest implements leave.RequestService.
func (s *RequestServiceImpl) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return request.ToResponse(), nil
}

// ListRequests implements leave.RequestService.
func (s *RequestServiceImpl) ListRequests(ctx context.Context, employeeID string) ([]leave.RequestResponse, error) {
	requests, err := s.RequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}
	return responses, nil
}
