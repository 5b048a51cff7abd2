package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending       Status = "PENDING"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusRepaid        Status = "REPAID"
)

// Advance is a cash advance given to an employee, repaid through payroll
// deductions. RemainingBalance only decreases, via payroll-paid events or
// explicit edits; status moves PENDING -> PARTIALLY_PAID -> REPAID.
type Advance struct {
	ID               string
	TenantID         string
	EmployeeID       string
	Amount           decimal.Decimal
	RemainingBalance decimal.Decimal
	ForMonth         string // "JAN".."DEC", empty when untargeted
	ForYear          int
	AdvanceDate      time.Time
	Status           Status
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// OutstandingTotal aggregates an employee's open advance balances.
type OutstandingTotal struct {
	Total    decimal.Decimal // all PENDING/PARTIALLY_PAID balances
	ForMonth decimal.Decimal // the subset tagged for the requested period
}
