package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
)

type balanceRepository struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepository{db: db}
}

// Upsert implements leave.BalanceRepository.
func (r *balanceRepository) Upsert(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, leave_type_id, year,
			total_days, used_days, carried_over_days, remaining_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
		SET total_days = EXCLUDED.total_days, used_days = EXCLUDED.used_days,
			carried_over_days = EXCLUDED.carried_over_days,
			remaining_days = EXCLUDED.remaining_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.TotalDays, balance.UsedDays, balance.CarriedOverDays, balance.RemainingDays,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return balance, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *balanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   total_days, used_days, carried_over_days, remaining_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.TotalDays, &balance.UsedDays, &balance.CarriedOverDays, &balance.RemainingDays,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// GetByEmployeeAndYear implements leave.BalanceRepository.
func (r *balanceRepository) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.employee_id, b.leave_type_id, b.year,
			   b.total_days, b.used_days, b.carried_over_days, b.remaining_days,
			   b.created_at, b.updated_at,
			   t.code, t.name
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2
		ORDER BY t.code
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var balance leave.Balance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
			&balance.TotalDays, &balance.UsedDays, &balance.CarriedOverDays, &balance.RemainingDays,
			&balance.CreatedAt, &balance.UpdatedAt,
			&balance.LeaveTypeCode, &balance.LeaveTypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

// Update implements leave.BalanceRepository.
func (r *balanceRepository) Update(ctx context.Context, balance leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET total_days = $2, used_days = $3, carried_over_days = $4, remaining_days = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		balance.ID, balance.TotalDays, balance.UsedDays, balance.CarriedOverDays, balance.RemainingDays,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
