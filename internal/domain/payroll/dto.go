package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

// Calculation modes for POST /payroll/calculate.
const (
	ModeTentative = "tentative" // compute and return, no persistence
	ModeCalculate = "calculate" // persist when the period is empty or forced
	ModeSave      = "save"      // always upsert (paid rows untouched)
)

type CalculateRequest struct {
	Year             int    `json:"year"`
	Month            string `json:"month"` // number or name ("JAN".."DEC")
	Mode             string `json:"mode"`
	ForceRecalculate bool   `json:"force_recalculate"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if _, ok := validator.ParseMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month number or name"})
	}
	if r.Mode != "" && !validator.IsInSlice(r.Mode, []string{ModeTentative, ModeCalculate, ModeSave}) {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be tentative, calculate or save"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryLineResponse struct {
	ID                   string          `json:"id,omitempty"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	EmployeeCode         string          `json:"employee_code"`
	WorkingDays          int             `json:"working_days"`
	PresentDays          int             `json:"present_days"`
	OTHours              decimal.Decimal `json:"ot_hours"`
	LateMinutes          int             `json:"late_minutes"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	SalaryForPresentDays decimal.Decimal `json:"salary_for_present_days"`
	OTCharges            decimal.Decimal `json:"ot_charges"`
	LateDeduction        decimal.Decimal `json:"late_deduction"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	TDSAmount            decimal.Decimal `json:"tds_amount"`
	AdvanceDeduction     decimal.Decimal `json:"advance_deduction"`
	NetPayable           decimal.Decimal `json:"net_payable"`
	IsPaid               bool            `json:"is_paid"`
	PaymentDate          *string         `json:"payment_date,omitempty"`
}

type CalculateResponse struct {
	Year              int                  `json:"year"`
	Month             int                  `json:"month"`
	Mode              string               `json:"mode"`
	Message           string               `json:"message,omitempty"`
	Results           []SalaryLineResponse `json:"results"`
	Persisted         bool                 `json:"persisted"`
	CacheInvalidation bool                 `json:"cache_invalidation"`
}

type SaveDirectEntry struct {
	EmployeeID           string          `json:"employee_id"`
	WorkingDays          int             `json:"working_days"`
	PresentDays          int             `json:"present_days"`
	OTHours              decimal.Decimal `json:"ot_hours"`
	LateMinutes          int             `json:"late_minutes"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	SalaryForPresentDays decimal.Decimal `json:"salary_for_present_days"`
	OTCharges            decimal.Decimal `json:"ot_charges"`
	LateDeduction        decimal.Decimal `json:"late_deduction"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	TDSAmount            decimal.Decimal `json:"tds_amount"`
	AdvanceDeduction     decimal.Decimal `json:"advance_deduction"`
	NetPayable           decimal.Decimal `json:"net_payable"`
}

type SaveDirectRequest struct {
	Year           int               `json:"year"`
	Month          string            `json:"month"`
	PayrollEntries []SaveDirectEntry `json:"payroll_entries"`
}

func (r *SaveDirectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if _, ok := validator.ParseMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month number or name"})
	}
	if len(r.PayrollEntries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payroll_entries", Message: "at least one entry is required"})
	}
	for _, e := range r.PayrollEntries {
		if e.EmployeeID == "" {
			errs = append(errs, validator.ValidationError{Field: "payroll_entries", Message: "every entry needs an employee_id"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaveDirectResponse struct {
	PeriodID     string `json:"period_id"`
	SavedEntries int    `json:"saved_entries"`
	DeletedRows  int    `json:"deleted_rows"`
}

type MarkPaidRequest struct {
	SalaryIDs   []string `json:"salary_ids"`
	PaymentDate *string  `json:"payment_date,omitempty"`
	MarkAsPaid  bool     `json:"mark_as_paid"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.SalaryIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "salary_ids", Message: "at least one salary is required"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidResponse struct {
	UpdatedCount int `json:"updated_count"`
}

type CreatePeriodRequest struct {
	Year        int              `json:"year,omitempty"`  // defaults to current
	Month       string           `json:"month,omitempty"` // defaults to current
	WorkingDays *int             `json:"working_days,omitempty"`
	TDSRate     *decimal.Decimal `json:"tds_rate,omitempty"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year != 0 && (r.Year < 2000 || r.Year > 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if r.Month != "" {
		if _, ok := validator.ParseMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month number or name"})
		}
	}
	if r.WorkingDays != nil && (*r.WorkingDays < 1 || *r.WorkingDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be between 1 and 31"})
	}
	if r.TDSRate != nil && (r.TDSRate.IsNegative() || r.TDSRate.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "tds_rate", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID                 string          `json:"id"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	DataSource         string          `json:"data_source"`
	IsLocked           bool            `json:"is_locked"`
	WorkingDaysInMonth int             `json:"working_days_in_month"`
	TDSRate            decimal.Decimal `json:"tds_rate"`
}

type PeriodDetailResponse struct {
	Period   PeriodResponse       `json:"period"`
	Salaries []SalaryLineResponse `json:"salaries"`
}

// AdvanceDeductionUpdate carries the recomputed fields written when an
// advance deduction is overridden on a salary row.
type AdvanceDeductionUpdate struct {
	AdvanceDeduction decimal.Decimal
	NetPayable       decimal.Decimal
}

type UpdateAdvanceDeductionRequest struct {
	SalaryID         string          `json:"-"`
	AdvanceDeduction decimal.Decimal `json:"advance_deduction"`
}

func (r *UpdateAdvanceDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AdvanceDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
