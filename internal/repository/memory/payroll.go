package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/payroll"
)

type payrollRepository struct {
	mu       sync.RWMutex
	byID     map[string]payroll.Record
	byPeriod map[periodKey]string
}

type periodKey struct {
	EmployeeID string
	Month      int
	Year       int
}

func NewPayrollRepository() payroll.RecordRepository {
	return &payrollRepository{
		byID:     make(map[string]payroll.Record),
		byPeriod: make(map[periodKey]string),
	}
}

func (r *payrollRepository) Create(_ context.Context, record payroll.Record) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := periodKey{EmployeeID: record.EmployeeID, Month: record.PeriodMonth, Year: record.PeriodYear}
	if _, exists := r.byPeriod[k]; exists {
		return payroll.Record{}, payroll.ErrRecordAlreadyExists
	}

	record.ID = newID()
	record.CreatedAt = now()
	record.UpdatedAt = record.CreatedAt
	r.byID[record.ID] = record
	r.byPeriod[k] = record.ID
	return record, nil
}

func (r *payrollRepository) GetByID(_ context.Context, id string) (payroll.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

func (r *payrollRepository) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPeriod[periodKey{EmployeeID: employeeID, Month: month, Year: year}]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return r.byID[id], nil
}

func (r *payrollRepository) List(_ context.Context) ([]payroll.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]payroll.Record, 0, len(r.byID))
	for _, record := range r.byID {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].PeriodYear != records[j].PeriodYear {
			return records[i].PeriodYear < records[j].PeriodYear
		}
		if records[i].PeriodMonth != records[j].PeriodMonth {
			return records[i].PeriodMonth < records[j].PeriodMonth
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
	return records, nil
}

func (r *payrollRepository) GetApprovable(_ context.Context, id string) (approval.Approvable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return approval.Approvable{}, approval.ErrRequestNotFound
	}
	return approval.Approvable{
		ID:                record.ID,
		Kind:              approval.KindPayroll,
		SubjectEmployeeID: record.EmployeeID,
		Status:            record.Status,
	}, nil
}

func (r *payrollRepository) Transition(_ context.Context, id string, from, to approval.Status, approverID string, _ *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return approval.ErrRequestNotFound
	}
	if record.Status != from {
		return approval.ErrInvalidState
	}

	record.Status = to
	record.ApprovedBy = &approverID
	record.ApprovedAt = &at
	record.UpdatedAt = now()
	r.byID[id] = record
	return nil
}
