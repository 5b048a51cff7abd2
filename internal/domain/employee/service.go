package employee

import (
	"context"
)

// EmployeeService defines business logic for employee master data.
type EmployeeService interface {
	// CreateEmployee creates an employee, deriving the OT rate from the basic
	// salary and shift length when none is supplied
	CreateEmployee(ctx context.Context, tenantID string, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, tenantID string, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters and pagination
	ListEmployees(ctx context.Context, tenantID string, filter Filter) (ListEmployeeResponse, error)

	// UpdateEmployee applies partial updates; the OT rate is re-derived on a
	// salary or shift change only while no rate is stored yet
	UpdateEmployee(ctx context.Context, tenantID string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeactivateEmployee soft-deletes an employee
	DeactivateEmployee(ctx context.Context, tenantID string, id string) error
}
