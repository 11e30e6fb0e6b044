package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	byID    map[string]attendance.Attendance
	byEmpDy map[attKey]string // (employee, date) -> id
}

type attKey struct {
	EmployeeID string
	Day        string
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		byID:    make(map[string]attendance.Attendance),
		byEmpDy: make(map[attKey]string),
	}
}

// Create implements attendance.AttendanceRepository. The map key check is
// the in-memory analogue of the unique (employee_id, date) constraint.
func (r *attendanceRepository) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := attKey{EmployeeID: att.EmployeeID, Day: dayKey(att.Date)}
	if _, exists := r.byEmpDy[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}

	att.ID = newID()
	att.CreatedAt = now()
	att.UpdatedAt = att.CreatedAt
	r.byID[att.ID] = att
	r.byEmpDy[k] = att.ID
	return att, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmpDy[attKey{EmployeeID: employeeID, Day: dayKey(date)}]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.byID[id], nil
}

func (r *attendanceRepository) Update(_ context.Context, att attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.CreatedAt = existing.CreatedAt
	att.UpdatedAt = now()
	r.byID[att.ID] = att
	return nil
}

func (r *attendanceRepository) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := attKey{EmployeeID: att.EmployeeID, Day: dayKey(att.Date)}
	if id, exists := r.byEmpDy[k]; exists {
		existing := r.byID[id]
		att.ID = id
		att.CreatedAt = existing.CreatedAt
		att.UpdatedAt = now()
		r.byID[id] = att
		return att, nil
	}

	att.ID = newID()
	att.CreatedAt = now()
	att.UpdatedAt = att.CreatedAt
	r.byID[att.ID] = att
	r.byEmpDy[k] = att.ID
	return att, nil
}

func (r *attendanceRepository) ListByMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, att := range r.byID {
		if att.EmployeeID == employeeID && att.Date.Year() == year && att.Date.Month() == month {
			records = append(records, att)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (r *attendanceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.byID[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.byID, id)
	delete(r.byEmpDy, attKey{EmployeeID: att.EmployeeID, Day: dayKey(att.Date)})
	return nil
}
