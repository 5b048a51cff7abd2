package tenant

import "context"

// TenantRepository defines data access for tenants and their users.
type TenantRepository interface {
	CreateTenant(ctx context.Context, t Tenant) (Tenant, error)
	GetTenantByID(ctx context.Context, id string) (Tenant, error)
	GetTenantBySubdomain(ctx context.Context, subdomain string) (Tenant, error)
	UpdateTenantSettings(ctx context.Context, tenantID string, req UpdateSettingsRequest) error
	ListAutoPayrollTenants(ctx context.Context) ([]Tenant, error)
	ListActiveTenants(ctx context.Context) ([]Tenant, error)

	// DeductDailyCredit decrements the tenant's credit counter under a row
	// lock and deactivates the tenant when it reaches zero. Returns the
	// remaining balance.
	DeductDailyCredit(ctx context.Context, tenantID string) (int, error)
	AddCredits(ctx context.Context, tenantID string, amount int) (int, error)

	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
}
