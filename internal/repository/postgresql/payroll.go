package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

const periodColumns = `id, tenant_id, year, month, data_source, is_locked, working_days_in_month, tds_rate, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.Period, error) {
	var p payroll.Period
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Year, &p.Month, &p.DataSource, &p.IsLocked,
		&p.WorkingDaysInMonth, &p.TDSRate, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, p payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (tenant_id, year, month, data_source, is_locked, working_days_in_month, tds_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query,
		p.TenantID, p.Year, p.Month, p.DataSource, p.IsLocked, p.WorkingDaysInMonth, p.TDSRate,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_period") {
			return payroll.Period{}, payroll.ErrPeriodExists
		}
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetOrCreatePeriod(ctx context.Context, tenantID string, year, month int, source payroll.DataSource) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op update makes ON CONFLICT return the existing row.
	query := `
		INSERT INTO payroll_periods (tenant_id, year, month, data_source, working_days_in_month, tds_rate)
		VALUES ($1, $2, $3, $4, 25, 5.0)
		ON CONFLICT (tenant_id, year, month) DO UPDATE SET updated_at = payroll_periods.updated_at
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query, tenantID, year, month, source))
	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to get or create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string, tenantID string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1 AND tenant_id = $2`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByMonth(ctx context.Context, tenantID string, year, month int) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE tenant_id = $1 AND year = $2 AND month = $3`

	p, err := scanPeriod(q.QueryRow(ctx, query, tenantID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period by month: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, tenantID string) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE tenant_id = $1 ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

func (r *payrollRepository) SetPeriodLocked(ctx context.Context, id string, tenantID string, locked bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET is_locked = $3, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, tenantID, locked).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPeriodNotFound
		}
		return fmt.Errorf("failed to set period lock: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeletePeriod(ctx context.Context, id string, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_periods WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// ========== CALCULATED SALARIES ==========

const salaryColumns = `
	id, tenant_id, period_id, employee_id, employee_name, employee_code,
	working_days, present_days, ot_hours, late_minutes,
	basic_salary, salary_for_present_days, ot_charges, late_deduction,
	gross_salary, tds_amount, advance_deduction, net_payable,
	is_paid, payment_date, created_at, updated_at
`

func scanSalary(row pgx.Row) (payroll.CalculatedSalary, error) {
	var s payroll.CalculatedSalary
	err := row.Scan(
		&s.ID, &s.TenantID, &s.PeriodID, &s.EmployeeID, &s.EmployeeName, &s.EmployeeCode,
		&s.WorkingDays, &s.PresentDays, &s.OTHours, &s.LateMinutes,
		&s.BasicSalary, &s.SalaryForPresentDays, &s.OTCharges, &s.LateDeduction,
		&s.GrossSalary, &s.TDSAmount, &s.AdvanceDeduction, &s.NetPayable,
		&s.IsPaid, &s.PaymentDate, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func collectSalaries(rows pgx.Rows) ([]payroll.CalculatedSalary, error) {
	var salaries []payroll.CalculatedSalary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculated salary: %w", err)
		}
		salaries = append(salaries, s)
	}
	return salaries, nil
}

func (r *payrollRepository) GetSalariesByPeriod(ctx context.Context, periodID string, tenantID string) ([]payroll.CalculatedSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM calculated_salaries WHERE period_id = $1 AND tenant_id = $2 ORDER BY employee_name`

	rows, err := q.Query(ctx, query, periodID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salaries by period: %w", err)
	}
	defer rows.Close()

	return collectSalaries(rows)
}

func (r *payrollRepository) GetSalariesByIDs(ctx context.Context, ids []string, tenantID string) ([]payroll.CalculatedSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM calculated_salaries WHERE id = ANY($1) AND tenant_id = $2`

	rows, err := q.Query(ctx, query, ids, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salaries by ids: %w", err)
	}
	defer rows.Close()

	return collectSalaries(rows)
}

// UpsertSalaries writes one row per employee per period. Paid rows are left
// untouched so a recalculation never silently rewrites settled salaries.
func (r *payrollRepository) UpsertSalaries(ctx context.Context, tenantID string, salaries []payroll.CalculatedSalary) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calculated_salaries (
			tenant_id, period_id, employee_id, employee_name, employee_code,
			working_days, present_days, ot_hours, late_minutes,
			basic_salary, salary_for_present_days, ot_charges, late_deduction,
			gross_salary, tds_amount, advance_deduction, net_payable
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (period_id, employee_id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			employee_code = EXCLUDED.employee_code,
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			ot_hours = EXCLUDED.ot_hours,
			late_minutes = EXCLUDED.late_minutes,
			basic_salary = EXCLUDED.basic_salary,
			salary_for_present_days = EXCLUDED.salary_for_present_days,
			ot_charges = EXCLUDED.ot_charges,
			late_deduction = EXCLUDED.late_deduction,
			gross_salary = EXCLUDED.gross_salary,
			tds_amount = EXCLUDED.tds_amount,
			advance_deduction = EXCLUDED.advance_deduction,
			net_payable = EXCLUDED.net_payable,
			updated_at = NOW()
		WHERE calculated_salaries.is_paid = false
	`

	count := 0
	for _, s := range salaries {
		tag, err := q.Exec(ctx, query,
			tenantID, s.PeriodID, s.EmployeeID, s.EmployeeName, s.EmployeeCode,
			s.WorkingDays, s.PresentDays, s.OTHours, s.LateMinutes,
			s.BasicSalary, s.SalaryForPresentDays, s.OTCharges, s.LateDeduction,
			s.GrossSalary, s.TDSAmount, s.AdvanceDeduction, s.NetPayable,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert salary for employee %s: %w", s.EmployeeID, err)
		}
		count += int(tag.RowsAffected())
	}

	return count, nil
}

func (r *payrollRepository) DeleteSalariesNotIn(ctx context.Context, periodID string, tenantID string, keepEmployeeIDs []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM calculated_salaries
		WHERE period_id = $1 AND tenant_id = $2 AND is_paid = false AND NOT (employee_id = ANY($3))
	`

	tag, err := q.Exec(ctx, query, periodID, tenantID, keepEmployeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale salaries: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *payrollRepository) DeleteSalariesByPeriod(ctx context.Context, periodID string, tenantID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM calculated_salaries WHERE period_id = $1 AND tenant_id = $2`, periodID, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete salaries by period: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *payrollRepository) HasPaidSalaries(ctx context.Context, periodID string, tenantID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM calculated_salaries WHERE period_id = $1 AND tenant_id = $2 AND is_paid = true)`,
		periodID, tenantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check paid salaries: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) SetPaidStatus(ctx context.Context, tenantID string, ids []string, paid bool, paymentDate *time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE calculated_salaries
		SET is_paid = $3, payment_date = $4, updated_at = NOW()
		WHERE id = ANY($1) AND tenant_id = $2 AND is_paid <> $3
	`

	tag, err := q.Exec(ctx, query, ids, tenantID, paid, paymentDate)
	if err != nil {
		return 0, fmt.Errorf("failed to set paid status: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *payrollRepository) UpdateAdvanceDeduction(ctx context.Context, tenantID string, salaryID string, req payroll.AdvanceDeductionUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE calculated_salaries
		SET advance_deduction = $3, net_payable = $4, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_paid = false
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, salaryID, tenantID, req.AdvanceDeduction, req.NetPayable).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to update advance deduction: %w", err)
	}

	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetOverview(ctx context.Context, tenantID string) ([]payroll.PeriodOverview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			p.id, p.year, p.month, p.is_locked,
			COUNT(s.id) AS total_employees,
			COALESCE(SUM(s.gross_salary), 0) AS total_gross,
			COALESCE(SUM(s.net_payable), 0) AS total_net,
			COALESCE(SUM(s.advance_deduction), 0) AS total_advance,
			COUNT(s.id) FILTER (WHERE s.is_paid) AS paid_count,
			COUNT(s.id) FILTER (WHERE NOT s.is_paid) AS unpaid_count
		FROM payroll_periods p
		LEFT JOIN calculated_salaries s ON s.period_id = p.id
		WHERE p.tenant_id = $1
		GROUP BY p.id, p.year, p.month, p.is_locked
		ORDER BY p.year DESC, p.month DESC
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll overview: %w", err)
	}
	defer rows.Close()

	var overview []payroll.PeriodOverview
	for rows.Next() {
		var o payroll.PeriodOverview
		if err := rows.Scan(
			&o.PeriodID, &o.Year, &o.Month, &o.IsLocked,
			&o.TotalEmployees, &o.TotalGross, &o.TotalNet, &o.TotalAdvance,
			&o.PaidCount, &o.UnpaidCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overview row: %w", err)
		}
		overview = append(overview, o)
	}

	return overview, nil
}

// GetBatchInputs assembles employee master data, the period's attendance
// aggregate and the open advance sums in one round trip.
func (r *payrollRepository) GetBatchInputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			CONCAT(e.first_name, ' ', COALESCE(e.last_name, '')) AS employee_name,
			e.employee_code, e.department, e.date_of_joining,
			e.shift_start_time, e.shift_end_time,
			e.basic_salary, e.tds_percentage, e.ot_rate_per_hour,
			e.off_monday, e.off_tuesday, e.off_wednesday, e.off_thursday,
			e.off_friday, e.off_saturday, e.off_sunday,
			a.present_days, a.absent_days, a.ot_hours, a.late_minutes, a.working_days,
			COALESCE(adv.for_month, 0) AS advance_for_month,
			COALESCE(adv.total, 0) AS advance_total
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN (
			SELECT
				employee_id,
				SUM(remaining_balance) AS total,
				SUM(remaining_balance) FILTER (WHERE for_month = $4 AND for_year = $2) AS for_month
			FROM advances
			WHERE tenant_id = $1 AND status IN ('PENDING', 'PARTIALLY_PAID')
			GROUP BY employee_id
		) adv ON adv.employee_id = e.id
		WHERE a.tenant_id = $1 AND a.year = $2 AND a.month = $3 AND e.is_active = true
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query, tenantID, year, month, validator.MonthName(month))
	if err != nil {
		return nil, fmt.Errorf("failed to get batch calculation inputs: %w", err)
	}
	defer rows.Close()

	var inputs []payroll.CalculationInput
	for rows.Next() {
		var in payroll.CalculationInput
		if err := rows.Scan(
			&in.EmployeeID, &in.EmployeeName, &in.EmployeeCode, &in.Department, &in.DateOfJoining,
			&in.ShiftStartTime, &in.ShiftEndTime,
			&in.BasicSalary, &in.TDSPercentage, &in.OTRatePerHour,
			&in.OffMonday, &in.OffTuesday, &in.OffWednesday, &in.OffThursday,
			&in.OffFriday, &in.OffSaturday, &in.OffSunday,
			&in.PresentDays, &in.AbsentDays, &in.OTHours, &in.LateMinutes, &in.UploadedWorkingDays,
			&in.AdvanceForMonth, &in.AdvanceTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation input: %w", err)
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}
