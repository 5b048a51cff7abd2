package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, tenant_id, employee_code, first_name, last_name, email, mobile_number,
	department, designation, date_of_joining, shift_start_time, shift_end_time,
	basic_salary, tds_percentage, ot_rate_per_hour,
	off_monday, off_tuesday, off_wednesday, off_thursday, off_friday, off_saturday, off_sunday,
	is_active, inactive_marked_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.TenantID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.MobileNumber,
		&e.Department, &e.Designation, &e.DateOfJoining, &e.ShiftStartTime, &e.ShiftEndTime,
		&e.BasicSalary, &e.TDSPercentage, &e.OTRatePerHour,
		&e.OffMonday, &e.OffTuesday, &e.OffWednesday, &e.OffThursday, &e.OffFriday, &e.OffSaturday, &e.OffSunday,
		&e.IsActive, &e.InactiveMarkedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			tenant_id, employee_code, first_name, last_name, email, mobile_number,
			department, designation, date_of_joining, shift_start_time, shift_end_time,
			basic_salary, tds_percentage, ot_rate_per_hour,
			off_monday, off_tuesday, off_wednesday, off_thursday, off_friday, off_saturday, off_sunday,
			is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		e.TenantID, e.EmployeeCode, e.FirstName, e.LastName, e.Email, e.MobileNumber,
		e.Department, e.Designation, e.DateOfJoining, e.ShiftStartTime, e.ShiftEndTime,
		e.BasicSalary, e.TDSPercentage, e.OTRatePerHour,
		e.OffMonday, e.OffTuesday, e.OffWednesday, e.OffThursday, e.OffFriday, e.OffSaturday, e.OffSunday,
		e.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, tenantID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND tenant_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByTenantID(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE tenant_id = $1 AND is_active = true ORDER BY first_name, last_name`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string, tenantID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) AND tenant_id = $2`

	rows, err := q.Query(ctx, query, ids, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by ids: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *employeeRepository) List(ctx context.Context, tenantID string, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM employees WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.ActiveOnly {
		baseQuery += " AND is_active = true"
	}
	if filter.Department != nil {
		baseQuery += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR employee_code ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*)" + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY first_name, last_name LIMIT $%d OFFSET $%d`,
		employeeColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}

	return employees, totalCount, nil
}

func (r *employeeRepository) Update(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, tenantID}
	argIdx := 3

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.MobileNumber != nil {
		addSet("mobile_number", *req.MobileNumber)
	}
	if req.Department != nil {
		addSet("department", *req.Department)
	}
	if req.Designation != nil {
		addSet("designation", *req.Designation)
	}
	if req.DateOfJoining != nil {
		if doj, err := time.Parse("2006-01-02", *req.DateOfJoining); err == nil {
			addSet("date_of_joining", doj)
		}
	}
	if req.ShiftStartTime != nil {
		addSet("shift_start_time", *req.ShiftStartTime)
	}
	if req.ShiftEndTime != nil {
		addSet("shift_end_time", *req.ShiftEndTime)
	}
	if req.BasicSalary != nil {
		addSet("basic_salary", *req.BasicSalary)
	}
	if req.TDSPercentage != nil {
		addSet("tds_percentage", *req.TDSPercentage)
	}
	if req.OTRatePerHour != nil {
		addSet("ot_rate_per_hour", *req.OTRatePerHour)
	}
	if req.OffDays != nil {
		offSet := make(map[string]bool, len(req.OffDays))
		for _, d := range req.OffDays {
			offSet[strings.ToLower(d)] = true
		}
		addSet("off_monday", offSet["monday"])
		addSet("off_tuesday", offSet["tuesday"])
		addSet("off_wednesday", offSet["wednesday"])
		addSet("off_thursday", offSet["thursday"])
		addSet("off_friday", offSet["friday"])
		addSet("off_saturday", offSet["saturday"])
		addSet("off_sunday", offSet["sunday"])
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
		if !*req.IsActive {
			setParts = append(setParts, "inactive_marked_at = CURRENT_DATE")
		} else {
			setParts = append(setParts, "inactive_marked_at = NULL")
		}
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1 AND tenant_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = false, inactive_marked_at = CURRENT_DATE, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, tenantID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) CountActive(ctx context.Context, tenantID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE tenant_id = $1 AND is_active = true`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}
