package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type DataSource string

const (
	DataSourceUploaded DataSource = "UPLOADED"
	DataSourceFrontend DataSource = "FRONTEND"
)

// Period is one (tenant, year, month) payroll unit. Once locked it rejects
// recalculation and entry edits and is never auto-unlocked.
type Period struct {
	ID                 string
	TenantID           string
	Year               int
	Month              int
	DataSource         DataSource
	IsLocked           bool
	WorkingDaysInMonth int
	TDSRate            decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CalculatedSalary is one employee's salary line within a period. Paid rows
// are frozen by application policy; recalculation overwrites unpaid rows
// wholesale.
type CalculatedSalary struct {
	ID                   string
	TenantID             string
	PeriodID             string
	EmployeeID           string
	EmployeeName         string
	EmployeeCode         string
	WorkingDays          int
	PresentDays          int
	OTHours              decimal.Decimal
	LateMinutes          int
	BasicSalary          decimal.Decimal
	SalaryForPresentDays decimal.Decimal
	OTCharges            decimal.Decimal
	LateDeduction        decimal.Decimal
	GrossSalary          decimal.Decimal
	TDSAmount            decimal.Decimal
	AdvanceDeduction     decimal.Decimal
	NetPayable           decimal.Decimal
	IsPaid               bool
	PaymentDate          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CalculationInput is the flattened per-employee input row the calculation
// strategies produce: employee master data, the period's attendance
// aggregate, and the open advance balances.
type CalculationInput struct {
	EmployeeID    string
	EmployeeName  string
	EmployeeCode  string
	Department    *string
	DateOfJoining *time.Time

	ShiftStartTime string
	ShiftEndTime   string
	BasicSalary    decimal.Decimal
	TDSPercentage  decimal.Decimal
	OTRatePerHour  *decimal.Decimal

	OffMonday    bool
	OffTuesday   bool
	OffWednesday bool
	OffThursday  bool
	OffFriday    bool
	OffSaturday  bool
	OffSunday    bool

	PresentDays         int
	AbsentDays          int
	OTHours             decimal.Decimal
	LateMinutes         int
	UploadedWorkingDays int

	AdvanceForMonth decimal.Decimal
	AdvanceTotal    decimal.Decimal
}

// IsOffDay reports whether the given weekday is flagged off.
func (in CalculationInput) IsOffDay(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return in.OffMonday
	case time.Tuesday:
		return in.OffTuesday
	case time.Wednesday:
		return in.OffWednesday
	case time.Thursday:
		return in.OffThursday
	case time.Friday:
		return in.OffFriday
	case time.Saturday:
		return in.OffSaturday
	case time.Sunday:
		return in.OffSunday
	}
	return false
}

// PeriodOverview is one row of the cached payroll overview.
type PeriodOverview struct {
	PeriodID       string          `json:"period_id"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	IsLocked       bool            `json:"is_locked"`
	TotalEmployees int             `json:"total_employees"`
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalNet       decimal.Decimal `json:"total_net"`
	TotalAdvance   decimal.Decimal `json:"total_advance_deduction"`
	PaidCount      int             `json:"paid_count"`
	UnpaidCount    int             `json:"unpaid_count"`
	Status         string          `json:"status"` // green | yellow | red by paid ratio
}
