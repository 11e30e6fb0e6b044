package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/payroll"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.RecordRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_id, period_month, period_year,
	base_salary, total_allowances, total_deductions, net_salary,
	status, approved_by, approved_at, notes, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var record payroll.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodMonth, &record.PeriodYear,
		&record.BaseSalary, &record.TotalAllowances, &record.TotalDeductions, &record.NetSalary,
		&record.Status, &record.ApprovedBy, &record.ApprovedAt, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

// Create implements payroll.RecordRepository. The unique
// (employee_id, period_month, period_year) index rejects a second draft
// for the same period.
func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_month, period_year,
			base_salary, total_allowances, total_deductions, net_salary,
			status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BaseSalary, record.TotalAllowances, record.TotalDeductions, record.NetSalary,
		record.Status, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.RecordRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE id = $1
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetByEmployeePeriod implements payroll.RecordRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// List implements payroll.RecordRepository.
func (r *payrollRepository) List(ctx context.Context) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		ORDER BY period_year, period_month, employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetApprovable implements approval.RequestStore.
func (r *payrollRepository) GetApprovable(ctx context.Context, id string) (approval.Approvable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, status
		FROM payroll_records
		WHERE id = $1
	`

	appr := approval.Approvable{Kind: approval.KindPayroll}
	err := q.QueryRow(ctx, query, id).Scan(&appr.ID, &appr.SubjectEmployeeID, &appr.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Approvable{}, approval.ErrRequestNotFound
		}
		return approval.Approvable{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return appr, nil
}

// Transition implements approval.RequestStore.
func (r *payrollRepository) Transition(ctx context.Context, id string, from, to approval.Status, approverID string, _ *string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $3, approved_by = $4, approved_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, id, from, to, approverID, at)
	if err != nil {
		return fmt.Errorf("failed to transition payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetApprovable(ctx, id); getErr != nil {
			return getErr
		}
		return approval.ErrInvalidState
	}

	return nil
}
