package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) UpsertRecords(ctx context.Context, tenantID string, records []attendance.Record) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			tenant_id, employee_id, year, month, present_days, absent_days,
			ot_hours, late_minutes, working_days, data_source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id, employee_id, year, month) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			ot_hours = EXCLUDED.ot_hours,
			late_minutes = EXCLUDED.late_minutes,
			working_days = EXCLUDED.working_days,
			data_source = EXCLUDED.data_source,
			updated_at = NOW()
	`

	count := 0
	for _, rec := range records {
		_, err := q.Exec(ctx, query,
			tenantID, rec.EmployeeID, rec.Year, rec.Month, rec.PresentDays, rec.AbsentDays,
			rec.OTHours, rec.LateMinutes, rec.WorkingDays, rec.DataSource,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert attendance record for employee %s: %w", rec.EmployeeID, err)
		}
		count++
	}

	return count, nil
}

func (r *attendanceRepository) GetByPeriod(ctx context.Context, tenantID string, year, month int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.id, a.tenant_id, a.employee_id, a.year, a.month, a.present_days, a.absent_days,
			a.ot_hours, a.late_minutes, a.working_days, a.data_source, a.created_at, a.updated_at,
			CONCAT(e.first_name, ' ', COALESCE(e.last_name, '')) AS employee_name,
			e.employee_code
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.tenant_id = $1 AND a.year = $2 AND a.month = $3
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.EmployeeID, &rec.Year, &rec.Month, &rec.PresentDays, &rec.AbsentDays,
			&rec.OTHours, &rec.LateMinutes, &rec.WorkingDays, &rec.DataSource, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *attendanceRepository) GetMonthsWithData(ctx context.Context, tenantID string) ([]attendance.MonthWithData, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT year, month
		FROM attendance_records
		WHERE tenant_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get months with attendance: %w", err)
	}
	defer rows.Close()

	var months []attendance.MonthWithData
	for rows.Next() {
		var m attendance.MonthWithData
		if err := rows.Scan(&m.Year, &m.Month); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, m)
	}

	return months, nil
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h attendance.Holiday) (attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (tenant_id, date, name, department)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, date, name) DO NOTHING
		RETURNING id, tenant_id, date, name, department, created_at
	`

	var created attendance.Holiday
	err := q.QueryRow(ctx, query, h.TenantID, h.Date, h.Name, h.Department).Scan(
		&created.ID, &created.TenantID, &created.Date, &created.Name, &created.Department, &created.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Holiday{}, attendance.ErrHolidayExists
		}
		return attendance.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return created, nil
}

func (r *holidayRepository) List(ctx context.Context, tenantID string) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, date, name, department, created_at
		FROM holidays
		WHERE tenant_id = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func (r *holidayRepository) GetByRange(ctx context.Context, tenantID string, from, to time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, date, name, department, created_at
		FROM holidays
		WHERE tenant_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays by range: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]attendance.Holiday, error) {
	var holidays []attendance.Holiday
	for rows.Next() {
		var h attendance.Holiday
		if err := rows.Scan(&h.ID, &h.TenantID, &h.Date, &h.Name, &h.Department, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id string, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrHolidayNotFound
	}

	return nil
}
