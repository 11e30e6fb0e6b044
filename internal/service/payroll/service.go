package payroll

import (
	"context"
	"fmt"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
	"github.com/loomhr/workforce-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.RecordRepository
	employee.EmployeeRepository
}

func NewPayrollService(
	recordRepo payroll.RecordRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
	}
}

// CreateDraft implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateDraft(ctx context.Context, req payroll.CreateDraftRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.RecordResponse{}, err
	}

	record := payroll.Record{
		EmployeeID:      req.EmployeeID,
		PeriodMonth:     req.PeriodMonth,
		PeriodYear:      req.PeriodYear,
		BaseSalary:      parseAmount(req.BaseSalary),
		TotalAllowances: parseAmount(req.TotalAllowances),
		TotalDeductions: parseAmount(req.TotalDeductions),
		Status:          approval.StatusDraft,
		Notes:           req.Notes,
	}
	record.NetSalary = record.Net()

	created, err := s.RecordRepository.Create(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return created.ToResponse(), nil
}

// GetRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.RecordRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return record.ToResponse(), nil
}

// ListRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context) ([]payroll.RecordResponse, error) {
	records, err := s.RecordRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}
	return responses, nil
}

// parseAmount converts a validated amount string, treating empty as zero.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
