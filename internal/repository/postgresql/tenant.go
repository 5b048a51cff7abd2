package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
)

type tenantRepository struct {
	db *database.DB
}

func NewTenantRepository(db *database.DB) tenant.TenantRepository {
	return &tenantRepository{db: db}
}

// ========== TENANTS ==========

func (r *tenantRepository) CreateTenant(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tenants (name, subdomain, credits, max_employees, auto_calculate_payroll, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, subdomain, credits, max_employees, auto_calculate_payroll, is_active, created_at, updated_at
	`

	var created tenant.Tenant
	err := q.QueryRow(ctx, query,
		t.Name, t.Subdomain, t.Credits, t.MaxEmployees, t.AutoCalculatePayroll, t.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.Subdomain, &created.Credits, &created.MaxEmployees,
		&created.AutoCalculatePayroll, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_tenant_subdomain") {
			return tenant.Tenant{}, tenant.ErrSubdomainExists
		}
		return tenant.Tenant{}, fmt.Errorf("failed to create tenant: %w", err)
	}

	return created, nil
}

func (r *tenantRepository) GetTenantByID(ctx context.Context, id string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subdomain, credits, max_employees, auto_calculate_payroll, is_active, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Subdomain, &t.Credits, &t.MaxEmployees,
		&t.AutoCalculatePayroll, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func (r *tenantRepository) GetTenantBySubdomain(ctx context.Context, subdomain string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subdomain, credits, max_employees, auto_calculate_payroll, is_active, created_at, updated_at
		FROM tenants
		WHERE subdomain = $1
	`

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, subdomain).Scan(
		&t.ID, &t.Name, &t.Subdomain, &t.Credits, &t.MaxEmployees,
		&t.AutoCalculatePayroll, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, fmt.Errorf("failed to get tenant by subdomain: %w", err)
	}

	return t, nil
}

func (r *tenantRepository) UpdateTenantSettings(ctx context.Context, tenantID string, req tenant.UpdateSettingsRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{tenantID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.AutoCalculatePayroll != nil {
		setParts = append(setParts, fmt.Sprintf("auto_calculate_payroll = $%d", argIdx))
		args = append(args, *req.AutoCalculatePayroll)
		argIdx++
	}
	if req.MaxEmployees != nil {
		setParts = append(setParts, fmt.Sprintf("max_employees = $%d", argIdx))
		args = append(args, *req.MaxEmployees)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE tenants
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.ErrTenantNotFound
		}
		return fmt.Errorf("failed to update tenant settings: %w", err)
	}

	return nil
}

func (r *tenantRepository) ListAutoPayrollTenants(ctx context.Context) ([]tenant.Tenant, error) {
	return r.listTenants(ctx, `WHERE is_active = true AND auto_calculate_payroll = true`)
}

func (r *tenantRepository) ListActiveTenants(ctx context.Context) ([]tenant.Tenant, error) {
	return r.listTenants(ctx, `WHERE is_active = true`)
}

func (r *tenantRepository) listTenants(ctx context.Context, where string) ([]tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subdomain, credits, max_employees, auto_calculate_payroll, is_active, created_at, updated_at
		FROM tenants
	` + where + ` ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Subdomain, &t.Credits, &t.MaxEmployees,
			&t.AutoCalculatePayroll, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	return tenants, nil
}

// DeductDailyCredit decrements the credit counter under a row lock so that
// concurrent cron runs cannot double-spend, and deactivates the tenant when
// the balance hits zero.
func (r *tenantRepository) DeductDailyCredit(ctx context.Context, tenantID string) (int, error) {
	var remaining int

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var credits int
		var isActive bool
		err := tx.QueryRow(ctx, `SELECT credits, is_active FROM tenants WHERE id = $1 FOR UPDATE`, tenantID).Scan(&credits, &isActive)
		if err != nil {
			if err == pgx.ErrNoRows {
				return tenant.ErrTenantNotFound
			}
			return fmt.Errorf("failed to lock tenant row: %w", err)
		}

		if !isActive {
			return tenant.ErrTenantInactive
		}
		if credits <= 0 {
			return tenant.ErrNoCreditsLeft
		}

		remaining = credits - 1
		active := remaining > 0
		_, err = tx.Exec(ctx, `UPDATE tenants SET credits = $2, is_active = $3, updated_at = NOW() WHERE id = $1`, tenantID, remaining, active)
		if err != nil {
			return fmt.Errorf("failed to deduct credit: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

func (r *tenantRepository) AddCredits(ctx context.Context, tenantID string, amount int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tenants
		SET credits = credits + $2, is_active = true, updated_at = NOW()
		WHERE id = $1
		RETURNING credits
	`

	var credits int
	err := q.QueryRow(ctx, query, tenantID, amount).Scan(&credits)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, tenant.ErrTenantNotFound
		}
		return 0, fmt.Errorf("failed to add credits: %w", err)
	}

	return credits, nil
}

// ========== USERS ==========

func (r *tenantRepository) CreateUser(ctx context.Context, u tenant.User) (tenant.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (tenant_id, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, email, password_hash, role, is_active, created_at, updated_at
	`

	var created tenant.User
	err := q.QueryRow(ctx, query,
		u.TenantID, u.Email, u.PasswordHash, u.Role, u.IsActive,
	).Scan(
		&created.ID, &created.TenantID, &created.Email, &created.PasswordHash,
		&created.Role, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_user_email") {
			return tenant.User{}, tenant.ErrEmailExists
		}
		return tenant.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *tenantRepository) GetUserByEmail(ctx context.Context, email string) (tenant.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u tenant.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.User{}, tenant.ErrUserNotFound
		}
		return tenant.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *tenantRepository) GetUserByID(ctx context.Context, id string) (tenant.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u tenant.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.User{}, tenant.ErrUserNotFound
		}
		return tenant.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
