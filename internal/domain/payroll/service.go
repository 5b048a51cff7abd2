package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll calculation, periods and
// payment state.
type PayrollService interface {
	// Calculate runs the salary engine for one month in tentative, calculate
	// or save mode
	Calculate(ctx context.Context, tenantID string, req CalculateRequest) (CalculateResponse, error)

	// SaveDirect persists caller-supplied salary lines verbatim and removes
	// unpaid rows not present in the submission
	SaveDirect(ctx context.Context, tenantID string, req SaveDirectRequest) (SaveDirectResponse, error)

	// SetPaidStatus marks salaries paid or unpaid; marking paid walks the
	// advance ledger oldest-first
	SetPaidStatus(ctx context.Context, tenantID string, req MarkPaidRequest) (MarkPaidResponse, error)

	// UpdateAdvanceDeduction overrides one salary row's advance deduction and
	// recomputes its net payable
	UpdateAdvanceDeduction(ctx context.Context, tenantID string, req UpdateAdvanceDeductionRequest) (SalaryLineResponse, error)

	// CreatePeriod creates a payroll period, defaulting to the current month
	CreatePeriod(ctx context.Context, tenantID string, req CreatePeriodRequest) (PeriodResponse, error)

	// ListPeriods returns the tenant's periods newest first
	ListPeriods(ctx context.Context, tenantID string) ([]PeriodResponse, error)

	// GetPeriodDetail returns a period together with its salary lines
	GetPeriodDetail(ctx context.Context, tenantID string, periodID string) (PeriodDetailResponse, error)

	// SetPeriodLocked locks or unlocks a period
	SetPeriodLocked(ctx context.Context, tenantID string, periodID string, locked bool) error

	// DeletePeriod removes an unlocked period without paid salaries
	DeletePeriod(ctx context.Context, tenantID string, periodID string) error

	// GetOverview returns per-period payroll totals, cached per tenant
	GetOverview(ctx context.Context, tenantID string, forceRefresh bool) ([]PeriodOverview, error)
}
