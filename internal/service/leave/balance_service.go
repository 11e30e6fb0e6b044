package leave

import (
	"context"
	"fmt"

	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
)

type BalanceServiceImpl struct {
	leave.BalanceRepository
	leave.LeaveTypeRepository
	employee.EmployeeRepository

	// allowNegative relaxes the ledger's floor: decrements may drive
	// remaining days below zero instead of failing.
	allowNegative bool
}

func NewBalanceService(
	balanceRepo leave.BalanceRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	allowNegative bool,
) leave.BalanceService {
	return &BalanceServiceImpl{
		BalanceRepository:   balanceRepo,
		LeaveTypeRepository: leaveTypeRepo,
		EmployeeRepository:  employeeRepo,
		allowNegative:       allowNegative,
	}
}

// GrantAnnual implements leave.BalanceService.
func (s *BalanceServiceImpl) GrantAnnual(ctx context.Context, req leave.GrantAnnualRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByCode(ctx, leave.TypeAnnual)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to resolve annual leave type: %w", err)
	}

	rule, ok := AccrualRuleFor(leaveType.Code)
	if !ok {
		return leave.BalanceResponse{}, fmt.Errorf("no accrual rule configured for leave type %s", leaveType.Code)
	}
	totalDays := rule(emp.HireDate, req.Year)

	entry := leave.Balance{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: leaveType.ID,
		Year:        req.Year,
		TotalDays:   totalDays,
	}

	// Re-granting must not erase consumption already recorded for the year.
	if existing, err := s.BalanceRepository.GetByEmployeeTypeYear(ctx, req.EmployeeID, leaveType.ID, req.Year); err == nil {
		entry.UsedDays = existing.UsedDays
		entry.CarriedOverDays = existing.CarriedOverDays
	}
	entry.RemainingDays = entry.Remaining()

	saved, err := s.BalanceRepository.Upsert(ctx, entry)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return leave.BalanceResponse{
		Total:       saved.TotalDays,
		Used:        saved.UsedDays,
		Remaining:   saved.RemainingDays,
		CarriedOver: saved.CarriedOverDays,
	}, nil
}

// AdjustBalance implements leave.BalanceService. A negative delta consumes
// days, a positive delta restores them.
func (s *BalanceServiceImpl) AdjustBalance(ctx context.Context, employeeID, leaveTypeID string, year int, deltaDays float64) error {
	entry, err := s.BalanceRepository.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}

	entry.UsedDays -= deltaDays
	entry.RemainingDays = entry.Remaining()

	if deltaDays < 0 && entry.RemainingDays < 0 && !s.allowNegative {
		return leave.ErrInsufficientBalance
	}

	if err := s.BalanceRepository.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	return nil
}

// GetBalances implements leave.BalanceService. The map is keyed by leave
// type code.
func (s *BalanceServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) (map[string]leave.BalanceResponse, error) {
	entries, err := s.BalanceRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	codeByID := make(map[string]leave.TypeCode, len(types))
	for _, leaveType := range types {
		codeByID[leaveType.ID] = leaveType.Code
	}

	balances := make(map[string]leave.BalanceResponse, len(entries))
	for _, entry := range entries {
		code, ok := codeByID[entry.LeaveTypeID]
		if !ok {
			continue
		}
		balances[string(code)] = leave.BalanceResponse{
			Total:       entry.TotalDays,
			Used:        entry.UsedDays,
			Remaining:   entry.RemainingDays,
			CarriedOver: entry.CarriedOverDays,
		}
	}
	return balances, nil
}
