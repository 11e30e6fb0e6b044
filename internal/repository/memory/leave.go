package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
)

// ----- leave types -----

type leaveTypeRepository struct {
	mu     sync.RWMutex
	byID   map[string]leave.LeaveType
	byCode map[leave.TypeCode]string
}

func NewLeaveTypeRepository() leave.LeaveTypeRepository {
	return &leaveTypeRepository{
		byID:   make(map[string]leave.LeaveType),
		byCode: make(map[leave.TypeCode]string),
	}
}

func (r *leaveTypeRepository) Create(_ context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	leaveType.ID = newID()
	leaveType.CreatedAt = now()
	leaveType.UpdatedAt = leaveType.CreatedAt
	r.byID[leaveType.ID] = leaveType
	r.byCode[leaveType.Code] = leaveType.ID
	return leaveType, nil
}

func (r *leaveTypeRepository) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leaveType, ok := r.byID[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return leaveType, nil
}

func (r *leaveTypeRepository) GetByCode(_ context.Context, code leave.TypeCode) (leave.LeaveType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return r.byID[id], nil
}

func (r *leaveTypeRepository) List(_ context.Context) ([]leave.LeaveType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]leave.LeaveType, 0, len(r.byID))
	for _, leaveType := range r.byID {
		types = append(types, leaveType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Code < types[j].Code })
	return types, nil
}

// ----- balances -----

type balanceRepository struct {
	mu    sync.RWMutex
	byID  map[string]leave.Balance
	byKey map[balanceKey]string
}

type balanceKey struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
}

func NewBalanceRepository() leave.BalanceRepository {
	return &balanceRepository{
		byID:  make(map[string]leave.Balance),
		byKey: make(map[balanceKey]string),
	}
}

func (r *balanceRepository) Upsert(_ context.Context, balance leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := balanceKey{EmployeeID: balance.EmployeeID, LeaveTypeID: balance.LeaveTypeID, Year: balance.Year}
	if id, exists := r.byKey[k]; exists {
		existing := r.byID[id]
		balance.ID = id
		balance.CreatedAt = existing.CreatedAt
		balance.UpdatedAt = now()
		r.byID[id] = balance
		return balance, nil
	}

	balance.ID = newID()
	balance.CreatedAt = now()
	balance.UpdatedAt = balance.CreatedAt
	r.byID[balance.ID] = balance
	r.byKey[k] = balance.ID
	return balance, nil
}

func (r *balanceRepository) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[balanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID, Year: year}]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return r.byID[id], nil
}

func (r *balanceRepository) GetByEmployeeAndYear(_ context.Context, employeeID string, year int) ([]leave.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balances := make([]leave.Balance, 0)
	for _, balance := range r.byID {
		if balance.EmployeeID == employeeID && balance.Year == year {
			balances = append(balances, balance)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LeaveTypeID < balances[j].LeaveTypeID })
	return balances, nil
}

func (r *balanceRepository) Update(_ context.Context, balance leave.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[balance.ID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	balance.CreatedAt = existing.CreatedAt
	balance.UpdatedAt = now()
	r.byID[balance.ID] = balance
	return nil
}

// ----- leave requests -----

type leaveRequestRepository struct {
	mu   sync.RWMutex
	byID map[string]leave.Request
}

func NewLeaveRequestRepository() leave.RequestRepository {
	return &leaveRequestRepository{byID: make(map[string]leave.Request)}
}

func (r *leaveRequestRepository) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = newID()
	request.CreatedAt = now()
	request.UpdatedAt = request.CreatedAt
	if request.SubmittedAt.IsZero() {
		request.SubmittedAt = request.CreatedAt
	}
	r.byID[request.ID] = request
	return request, nil
}

func (r *leaveRequestRepository) GetByID(_ context.Context, id string) (leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.byID[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *leaveRequestRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]leave.Request, 0)
	for _, request := range r.byID {
		if request.EmployeeID == employeeID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].SubmittedAt.Before(requests[j].SubmittedAt) })
	return requests, nil
}

func (r *leaveRequestRepository) GetApprovable(_ context.Context, id string) (approval.Approvable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.byID[id]
	if !ok {
		return approval.Approvable{}, approval.ErrRequestNotFound
	}
	return approval.Approvable{
		ID:                request.ID,
		Kind:              approval.KindLeave,
		SubjectEmployeeID: request.EmployeeID,
		Status:            request.Status,
	}, nil
}

// Transition implements the conditional update guard: only rows still in
// `from` transition, mirroring UPDATE ... WHERE status = $from.
func (r *leaveRequestRepository) Transition(_ context.Context, id string, from, to approval.Status, approverID string, reason *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.byID[id]
	if !ok {
		return approval.ErrRequestNotFound
	}
	if request.Status != from {
		return approval.ErrInvalidState
	}

	request.Status = to
	request.ApproverID = &approverID
	request.ApprovedAt = &at
	request.RejectionReason = reason
	request.UpdatedAt = now()
	r.byID[id] = request
	return nil
}

func (r *leaveRequestRepository) SetEffectFlags(_ context.Context, id string, balanceApplied, effectsApplied bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.byID[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	request.BalanceApplied = balanceApplied
	request.EffectsApplied = effectsApplied
	request.UpdatedAt = now()
	r.byID[id] = request
	return nil
}

func (r *leaveRequestRepository) ListApprovedPendingEffects(_ context.Context) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]leave.Request, 0)
	for _, request := range r.byID {
		if request.Status == approval.StatusApproved && !request.EffectsApplied {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].SubmittedAt.Before(requests[j].SubmittedAt) })
	return requests, nil
}
