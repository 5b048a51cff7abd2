package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outstandingAdvance(id, balance string, daysAgo int) advance.Advance {
	return advance.Advance{
		ID:               id,
		Amount:           dec(balance),
		RemainingBalance: dec(balance),
		Status:           advance.StatusPending,
		AdvanceDate:      time.Now().UTC().AddDate(0, 0, -daysAgo),
	}
}

func TestPlanRepayment_FIFO(t *testing.T) {
	t.Parallel()

	outstanding := []advance.Advance{
		outstandingAdvance("adv-1", "100", 30),
		outstandingAdvance("adv-2", "50", 10),
	}

	updates := PlanRepayment(outstanding, dec("120"))
	require.Len(t, updates, 2)

	assert.Equal(t, "adv-1", updates[0].ID)
	assert.True(t, updates[0].RemainingBalance.IsZero())
	assert.Equal(t, advance.StatusRepaid, updates[0].Status)

	assert.Equal(t, "adv-2", updates[1].ID)
	assert.True(t, updates[1].RemainingBalance.Equal(dec("30")), "balance %s", updates[1].RemainingBalance)
	assert.Equal(t, advance.StatusPartiallyPaid, updates[1].Status)
}

func TestPlanRepayment_PartialFirstAdvance(t *testing.T) {
	t.Parallel()

	outstanding := []advance.Advance{
		outstandingAdvance("adv-1", "100", 30),
		outstandingAdvance("adv-2", "50", 10),
	}

	updates := PlanRepayment(outstanding, dec("40"))
	require.Len(t, updates, 1)

	assert.Equal(t, "adv-1", updates[0].ID)
	assert.True(t, updates[0].RemainingBalance.Equal(dec("60")))
	assert.Equal(t, advance.StatusPartiallyPaid, updates[0].Status)
}

func TestPlanRepayment_ExcessAbsorbed(t *testing.T) {
	t.Parallel()

	outstanding := []advance.Advance{
		outstandingAdvance("adv-1", "100", 30),
	}

	updates := PlanRepayment(outstanding, dec("500"))
	require.Len(t, updates, 1)
	assert.True(t, updates[0].RemainingBalance.IsZero())
	assert.Equal(t, advance.StatusRepaid, updates[0].Status)
}

func TestPlanRepayment_SkipsDrainedAdvances(t *testing.T) {
	t.Parallel()

	drained := outstandingAdvance("adv-1", "100", 30)
	drained.RemainingBalance = decimal.Zero

	outstanding := []advance.Advance{
		drained,
		outstandingAdvance("adv-2", "50", 10),
	}

	updates := PlanRepayment(outstanding, dec("50"))
	require.Len(t, updates, 1)
	assert.Equal(t, "adv-2", updates[0].ID)
	assert.Equal(t, advance.StatusRepaid, updates[0].Status)
}

func TestPlanRepayment_NonPositiveAmount(t *testing.T) {
	t.Parallel()

	outstanding := []advance.Advance{
		outstandingAdvance("adv-1", "100", 30),
	}

	assert.Nil(t, PlanRepayment(outstanding, decimal.Zero))
	assert.Nil(t, PlanRepayment(outstanding, dec("-10")))
	assert.Nil(t, PlanRepayment(nil, dec("10")))
}
