package advance

import (
	"context"
)

// AdvanceService defines business logic for the advance ledger.
type AdvanceService interface {
	// CreateAdvance records a new advance with remaining_balance = amount
	CreateAdvance(ctx context.Context, tenantID string, req CreateAdvanceRequest) (AdvanceResponse, error)

	// GetAdvance retrieves one advance by ID
	GetAdvance(ctx context.Context, tenantID string, id string) (AdvanceResponse, error)

	// ListAdvances lists advances with filters and pagination
	ListAdvances(ctx context.Context, tenantID string, filter Filter) (ListAdvanceResponse, error)

	// UpdateAdvance applies partial updates; the employee an advance belongs
	// to can never change
	UpdateAdvance(ctx context.Context, tenantID string, req UpdateAdvanceRequest) (AdvanceResponse, error)

	// DeleteAdvance removes an advance unless repayments were already applied
	DeleteAdvance(ctx context.Context, tenantID string, id string) error
}
