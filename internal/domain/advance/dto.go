package advance

import (
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type CreateAdvanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	ForMonth    string          `json:"for_month,omitempty"`
	ForYear     int             `json:"for_year,omitempty"`
	AdvanceDate string          `json:"advance_date"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.AdvanceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "advance_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.ForMonth != "" {
		if _, ok := validator.ParseMonth(r.ForMonth); !ok {
			errs = append(errs, validator.ValidationError{Field: "for_month", Message: "must be a month number or name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAdvanceRequest intentionally has no employee or advance-date fields:
// an advance stays with the employee it was issued to.
type UpdateAdvanceRequest struct {
	ID               string           `json:"-"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance,omitempty"`
	ForMonth         *string          `json:"for_month,omitempty"`
	ForYear          *int             `json:"for_year,omitempty"`
	Status           *string          `json:"status,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

func (r *UpdateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.RemainingBalance != nil && r.RemainingBalance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "remaining_balance", Message: "must be non-negative"})
	}
	if r.Status != nil {
		switch Status(*r.Status) {
		case StatusPending, StatusPartiallyPaid, StatusRepaid:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be PENDING, PARTIALLY_PAID or REPAID"})
		}
	}
	if r.ForMonth != nil && *r.ForMonth != "" {
		if _, ok := validator.ParseMonth(*r.ForMonth); !ok {
			errs = append(errs, validator.ValidationError{Field: "for_month", Message: "must be a month number or name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	ForMonth         string          `json:"for_month,omitempty"`
	ForYear          int             `json:"for_year,omitempty"`
	AdvanceDate      string          `json:"advance_date"`
	Status           string          `json:"status"`
	Notes            *string         `json:"notes,omitempty"`
}

type Filter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type ListAdvanceResponse struct {
	Data       []AdvanceResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// BalanceUpdate carries one ledger mutation produced by a repayment walk.
type BalanceUpdate struct {
	ID               string
	RemainingBalance decimal.Decimal
	Status           Status
}
