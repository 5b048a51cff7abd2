package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll periods and calculated
// salaries. All methods include tenantID to prevent cross-tenant data access.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, p Period) (Period, error)
	GetOrCreatePeriod(ctx context.Context, tenantID string, year, month int, source DataSource) (Period, error)
	GetPeriodByID(ctx context.Context, id string, tenantID string) (Period, error)
	GetPeriodByMonth(ctx context.Context, tenantID string, year, month int) (Period, error)
	ListPeriods(ctx context.Context, tenantID string) ([]Period, error)
	SetPeriodLocked(ctx context.Context, id string, tenantID string, locked bool) error
	DeletePeriod(ctx context.Context, id string, tenantID string) error

	// Calculated salaries
	GetSalariesByPeriod(ctx context.Context, periodID string, tenantID string) ([]CalculatedSalary, error)
	GetSalariesByIDs(ctx context.Context, ids []string, tenantID string) ([]CalculatedSalary, error)
	UpsertSalaries(ctx context.Context, tenantID string, salaries []CalculatedSalary) (int, error)
	DeleteSalariesNotIn(ctx context.Context, periodID string, tenantID string, keepEmployeeIDs []string) (int, error)
	DeleteSalariesByPeriod(ctx context.Context, periodID string, tenantID string) (int, error)
	HasPaidSalaries(ctx context.Context, periodID string, tenantID string) (bool, error)
	SetPaidStatus(ctx context.Context, tenantID string, ids []string, paid bool, paymentDate *time.Time) (int, error)
	UpdateAdvanceDeduction(ctx context.Context, tenantID string, salaryID string, req AdvanceDeductionUpdate) error

	// Aggregations
	GetOverview(ctx context.Context, tenantID string) ([]PeriodOverview, error)

	// GetBatchInputs builds the calculation inputs for every employee with
	// attendance in the period using a single aggregate query (the batch
	// execution strategy).
	GetBatchInputs(ctx context.Context, tenantID string, year, month int) ([]CalculationInput, error)
}
