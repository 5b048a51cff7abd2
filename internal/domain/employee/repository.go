package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// All methods include tenantID to prevent cross-tenant data access.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, tenantID string) (Employee, error)
	GetActiveByTenantID(ctx context.Context, tenantID string) ([]Employee, error)
	GetByIDs(ctx context.Context, ids []string, tenantID string) ([]Employee, error)
	List(ctx context.Context, tenantID string, filter Filter) ([]Employee, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, id string, tenantID string) error
	CountActive(ctx context.Context, tenantID string) (int64, error)
}
