package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
)

// PlanRepayment walks an employee's outstanding advances oldest-first and
// allocates the deducted amount across them. Fully covered advances become
// REPAID, a partially covered one becomes PARTIALLY_PAID. Any amount beyond
// the outstanding total is absorbed; the walk never produces a negative
// balance.
func PlanRepayment(outstanding []advance.Advance, amount decimal.Decimal) []advance.BalanceUpdate {
	if !amount.IsPositive() {
		return nil
	}

	var updates []advance.BalanceUpdate
	remaining := amount

	for _, a := range outstanding {
		if !remaining.IsPositive() {
			break
		}
		if !a.RemainingBalance.IsPositive() {
			continue
		}

		take := a.RemainingBalance
		if take.GreaterThan(remaining) {
			take = remaining
		}

		newBalance := a.RemainingBalance.Sub(take)
		status := advance.StatusPartiallyPaid
		if newBalance.IsZero() {
			status = advance.StatusRepaid
		}

		updates = append(updates, advance.BalanceUpdate{
			ID:               a.ID,
			RemainingBalance: newBalance,
			Status:           status,
		})
		remaining = remaining.Sub(take)
	}

	return updates
}
