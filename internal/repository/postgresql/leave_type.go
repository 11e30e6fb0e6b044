package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (code, name, description, has_quota)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
			has_quota = EXCLUDED.has_quota, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Code, leaveType.Name, leaveType.Description, leaveType.HasQuota,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, description, has_quota, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&leaveType.ID, &leaveType.Code, &leaveType.Name, &leaveType.Description,
		&leaveType.HasQuota, &leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by id: %w", err)
	}

	return leaveType, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByCode(ctx context.Context, code leave.TypeCode) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, description, has_quota, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, code).Scan(
		&leaveType.ID, &leaveType.Code, &leaveType.Name, &leaveType.Description,
		&leaveType.HasQuota, &leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by code: %w", err)
	}

	return leaveType, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, description, has_quota, created_at, updated_at
		FROM leave_types
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var leaveType leave.LeaveType
		if err := rows.Scan(
			&leaveType.ID, &leaveType.Code, &leaveType.Name, &leaveType.Description,
			&leaveType.HasQuota, &leaveType.CreatedAt, &leaveType.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, leaveType)
	}

	return types, rows.Err()
}
