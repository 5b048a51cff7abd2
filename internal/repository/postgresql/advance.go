package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	a.id, a.tenant_id, a.employee_id, a.amount, a.remaining_balance,
	a.for_month, a.for_year, a.advance_date, a.status, a.notes, a.created_at, a.updated_at,
	CONCAT(e.first_name, ' ', COALESCE(e.last_name, '')) AS employee_name,
	e.employee_code
`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(
		&a.ID, &a.TenantID, &a.EmployeeID, &a.Amount, &a.RemainingBalance,
		&a.ForMonth, &a.ForYear, &a.AdvanceDate, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.EmployeeCode,
	)
	return a, err
}

func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO advances (tenant_id, employee_id, amount, remaining_balance, for_month, for_year, advance_date, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + advanceColumns + `
		FROM inserted a
		JOIN employees e ON e.id = a.employee_id
	`

	created, err := scanAdvance(q.QueryRow(ctx, query,
		a.TenantID, a.EmployeeID, a.Amount, a.RemainingBalance,
		a.ForMonth, a.ForYear, a.AdvanceDate, a.Status, a.Notes,
	))
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return created, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string, tenantID string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.tenant_id = $2
	`

	a, err := scanAdvance(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) List(ctx context.Context, tenantID string, filter advance.Filter) ([]advance.Advance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.tenant_id = $1
	`
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count advances: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY a.advance_date DESC, a.created_at DESC LIMIT $%d OFFSET $%d`,
		advanceColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, totalCount, nil
}

func (r *advanceRepository) Update(ctx context.Context, tenantID string, req advance.UpdateAdvanceRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, tenantID}
	argIdx := 3

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Amount != nil {
		addSet("amount", *req.Amount)
	}
	if req.RemainingBalance != nil {
		addSet("remaining_balance", *req.RemainingBalance)
	}
	if req.ForMonth != nil {
		addSet("for_month", strings.ToUpper(*req.ForMonth))
	}
	if req.ForYear != nil {
		addSet("for_year", *req.ForYear)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}

	query := fmt.Sprintf(`
		UPDATE advances
		SET %s
		WHERE id = $1 AND tenant_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to update advance: %w", err)
	}

	return nil
}

func (r *advanceRepository) Delete(ctx context.Context, id string, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM advances WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}

	return nil
}

func (r *advanceRepository) GetOutstandingByEmployee(ctx context.Context, employeeID string, tenantID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.tenant_id = $1 AND a.employee_id = $2 AND a.status IN ('PENDING', 'PARTIALLY_PAID')
		ORDER BY a.advance_date, a.created_at
	`

	rows, err := q.Query(ctx, query, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outstanding advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, nil
}

func (r *advanceRepository) GetOutstandingTotals(ctx context.Context, tenantID string, year, month int) (map[string]advance.OutstandingTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			employee_id,
			COALESCE(SUM(remaining_balance), 0) AS total,
			COALESCE(SUM(remaining_balance) FILTER (WHERE for_month = $2 AND for_year = $3), 0) AS for_month
		FROM advances
		WHERE tenant_id = $1 AND status IN ('PENDING', 'PARTIALLY_PAID')
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, tenantID, validator.MonthName(month), year)
	if err != nil {
		return nil, fmt.Errorf("failed to get outstanding totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]advance.OutstandingTotal)
	for rows.Next() {
		var employeeID string
		var t advance.OutstandingTotal
		if err := rows.Scan(&employeeID, &t.Total, &t.ForMonth); err != nil {
			return nil, fmt.Errorf("failed to scan outstanding total: %w", err)
		}
		totals[employeeID] = t
	}

	return totals, nil
}

func (r *advanceRepository) ApplyBalanceUpdates(ctx context.Context, tenantID string, updates []advance.BalanceUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET remaining_balance = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
	`

	for _, u := range updates {
		tag, err := q.Exec(ctx, query, u.ID, tenantID, u.RemainingBalance, u.Status)
		if err != nil {
			return fmt.Errorf("failed to apply balance update for advance %s: %w", u.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return advance.ErrAdvanceNotFound
		}
	}

	return nil
}
