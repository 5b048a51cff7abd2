package advance

import "context"

// AdvanceRepository defines data access for the advance ledger.
// All methods include tenantID to prevent cross-tenant data access.
type AdvanceRepository interface {
	Create(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string, tenantID string) (Advance, error)
	List(ctx context.Context, tenantID string, filter Filter) ([]Advance, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateAdvanceRequest) error
	Delete(ctx context.Context, id string, tenantID string) error

	// GetOutstandingByEmployee returns PENDING/PARTIALLY_PAID entries for one
	// employee ordered by advance_date (oldest first).
	GetOutstandingByEmployee(ctx context.Context, employeeID string, tenantID string) ([]Advance, error)

	// GetOutstandingTotals returns, per employee, the sum of remaining
	// balances across all PENDING/PARTIALLY_PAID entries of the tenant,
	// split into the portion tagged for the given period and the overall
	// outstanding total.
	GetOutstandingTotals(ctx context.Context, tenantID string, year, month int) (map[string]OutstandingTotal, error)

	ApplyBalanceUpdates(ctx context.Context, tenantID string, updates []BalanceUpdate) error
}
