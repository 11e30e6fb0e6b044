package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type_id, start_date, end_date, total_days, reason,
	status, approver_id, approved_at, rejection_reason,
	balance_applied, effects_applied, submitted_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var request leave.Request
	err := row.Scan(
		&request.ID, &request.EmployeeID, &request.LeaveTypeID,
		&request.StartDate, &request.EndDate, &request.TotalDays, &request.Reason,
		&request.Status, &request.ApproverID, &request.ApprovedAt, &request.RejectionReason,
		&request.BalanceApplied, &request.EffectsApplied,
		&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt,
	)
	return request, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date, total_days, reason,
			status, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.TotalDays, request.Reason, request.Status, request.SubmittedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY submitted_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// GetApprovable implements approval.RequestStore.
func (r *leaveRequestRepository) GetApprovable(ctx context.Context, id string) (approval.Approvable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, status
		FROM leave_requests
		WHERE id = $1
	`

	appr := approval.Approvable{Kind: approval.KindLeave}
	err := q.QueryRow(ctx, query, id).Scan(&appr.ID, &appr.SubjectEmployeeID, &appr.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Approvable{}, approval.ErrRequestNotFound
		}
		return approval.Approvable{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return appr, nil
}

// Transition implements approval.RequestStore. The WHERE status clause is
// the concurrency guard: only a request still in `from` moves.
func (r *leaveRequestRepository) Transition(ctx context.Context, id string, from, to approval.Status, approverID string, reason *string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $3, approver_id = $4, approved_at = $5, rejection_reason = $6,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, id, from, to, approverID, at, reason)
	if err != nil {
		return fmt.Errorf("failed to transition leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetApprovable(ctx, id); getErr != nil {
			return getErr
		}
		return approval.ErrInvalidState
	}

	return nil
}

// SetEffectFlags implements leave.RequestRepository.
func (r *leaveRequestRepository) SetEffectFlags(ctx context.Context, id string, balanceApplied, effectsApplied bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET balance_applied = $2, effects_applied = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, balanceApplied, effectsApplied)
	if err != nil {
		return fmt.Errorf("failed to set effect flags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// ListApprovedPendingEffects implements leave.RequestRepository.
func (r *leaveRequestRepository) ListApprovedPendingEffects(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE status = $1 AND effects_applied = FALSE
		ORDER BY submitted_at
	`

	rows, err := q.Query(ctx, query, approval.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests pending effects: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}
