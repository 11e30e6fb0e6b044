package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
)

type purchaseRequestRepository struct {
	db *database.DB
}

func NewPurchaseRequestRepository(db *database.DB) approval.PurchaseRequestRepository {
	return &purchaseRequestRepository{db: db}
}

const purchaseRequestColumns = `
	id, employee_id, description, amount,
	status, approver_id, approved_at, rejection_reason,
	submitted_at, created_at, updated_at
`

func scanPurchaseRequest(row pgx.Row) (approval.PurchaseRequest, error) {
	var request approval.PurchaseRequest
	err := row.Scan(
		&request.ID, &request.EmployeeID, &request.Description, &request.Amount,
		&request.Status, &request.ApproverID, &request.ApprovedAt, &request.RejectionReason,
		&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt,
	)
	return request, err
}

// Create implements approval.PurchaseRequestRepository.
func (r *purchaseRequestRepository) Create(ctx context.Context, request approval.PurchaseRequest) (approval.PurchaseRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO purchase_requests (employee_id, description, amount, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Description, request.Amount, request.Status, request.SubmittedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return approval.PurchaseRequest{}, fmt.Errorf("failed to create purchase request: %w", err)
	}

	return request, nil
}

// GetByID implements approval.PurchaseRequestRepository.
func (r *purchaseRequestRepository) GetByID(ctx context.Context, id string) (approval.PurchaseRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + purchaseRequestColumns + `
		FROM purchase_requests
		WHERE id = $1
	`

	request, err := scanPurchaseRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.PurchaseRequest{}, approval.ErrRequestNotFound
		}
		return approval.PurchaseRequest{}, fmt.Errorf("failed to get purchase request: %w", err)
	}

	return request, nil
}

// ListByEmployee implements approval.PurchaseRequestRepository.
func (r *purchaseRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]approval.PurchaseRequest, error) {
	return r.list(ctx, `WHERE employee_id = $1`, employeeID)
}

// List implements approval.PurchaseRequestRepository.
func (r *purchaseRequestRepository) List(ctx context.Context) ([]approval.PurchaseRequest, error) {
	return r.list(ctx, ``)
}

func (r *purchaseRequestRepository) list(ctx context.Context, where string, args ...interface{}) ([]approval.PurchaseRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + purchaseRequestColumns + `
		FROM purchase_requests
		` + where + `
		ORDER BY submitted_at
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}
	defer rows.Close()

	var requests []approval.PurchaseRequest
	for rows.Next() {
		request, err := scanPurchaseRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// GetApprovable implements approval.RequestStore.
func (r *purchaseRequestRepository) GetApprovable(ctx context.Context, id string) (approval.Approvable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, status
		FROM purchase_requests
		WHERE id = $1
	`

	appr := approval.Approvable{Kind: approval.KindPurchase}
	err := q.QueryRow(ctx, query, id).Scan(&appr.ID, &appr.SubjectEmployeeID, &appr.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Approvable{}, approval.ErrRequestNotFound
		}
		return approval.Approvable{}, fmt.Errorf("failed to get purchase request: %w", err)
	}

	return appr, nil
}

// Transition implements approval.RequestStore.
func (r *purchaseRequestRepository) Transition(ctx context.Context, id string, from, to approval.Status, approverID string, reason *string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE purchase_requests
		SET status = $3, approver_id = $4, approved_at = $5, rejection_reason = $6,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, id, from, to, approverID, at, reason)
	if err != nil {
		return fmt.Errorf("failed to transition purchase request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetApprovable(ctx, id); getErr != nil {
			return getErr
		}
		return approval.ErrInvalidState
	}

	return nil
}
