package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
)

type purchaseRequestRepository struct {
	mu   sync.RWMutex
	byID map[string]approval.PurchaseRequest
}

func NewPurchaseRequestRepository() approval.PurchaseRequestRepository {
	return &purchaseRequestRepository{byID: make(map[string]approval.PurchaseRequest)}
}

func (r *purchaseRequestRepository) Create(_ context.Context, req approval.PurchaseRequest) (approval.PurchaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = newID()
	req.CreatedAt = now()
	req.UpdatedAt = req.CreatedAt
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = req.CreatedAt
	}
	r.byID[req.ID] = req
	return req, nil
}

func (r *purchaseRequestRepository) GetByID(_ context.Context, id string) (approval.PurchaseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return approval.PurchaseRequest{}, approval.ErrRequestNotFound
	}
	return req, nil
}

func (r *purchaseRequestRepository) ListByEmployee(_ context.Context, employeeID string) ([]approval.PurchaseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]approval.PurchaseRequest, 0)
	for _, req := range r.byID {
		if req.EmployeeID == employeeID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].SubmittedAt.Before(requests[j].SubmittedAt) })
	return requests, nil
}

func (r *purchaseRequestRepository) List(_ context.Context) ([]approval.PurchaseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]approval.PurchaseRequest, 0, len(r.byID))
	for _, req := range r.byID {
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].SubmittedAt.Before(requests[j].SubmittedAt) })
	return requests, nil
}

func (r *purchaseRequestRepository) GetApprovable(_ context.Context, id string) (approval.Approvable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return approval.Approvable{}, approval.ErrRequestNotFound
	}
	return approval.Approvable{
		ID:                req.ID,
		Kind:              approval.KindPurchase,
		SubjectEmployeeID: req.EmployeeID,
		Status:            req.Status,
	}, nil
}

func (r *purchaseRequestRepository) Transition(_ context.Context, id string, from, to approval.Status, approverID string, reason *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return approval.ErrRequestNotFound
	}
	if req.Status != from {
		return approval.ErrInvalidState
	}

	req.Status = to
	req.ApproverID = &approverID
	req.ApprovedAt = &at
	req.RejectionReason = reason
	req.UpdatedAt = now()
	r.byID[id] = req
	return nil
}
