package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/loomhr/workforce-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	mu     sync.RWMutex
	byID   map[string]employee.Employee
	byCode map[string]string
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{
		byID:   make(map[string]employee.Employee),
		byCode: make(map[string]string),
	}
}

func (r *employeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[emp.EmployeeCode]; exists {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	for _, existing := range r.byID {
		if existing.Email == emp.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	emp.ID = newID()
	emp.CreatedAt = now()
	emp.UpdatedAt = emp.CreatedAt
	r.byID[emp.ID] = emp
	r.byCode[emp.EmployeeCode] = emp.ID
	return emp, nil
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.byID {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emps := make([]employee.Employee, 0, len(r.byID))
	for _, emp := range r.byID {
		emps = append(emps, emp)
	}
	sort.Slice(emps, func(i, j int) bool {
		return emps[i].EmployeeCode < emps[j].EmployeeCode
	})
	return emps, nil
}
