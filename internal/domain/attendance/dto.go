package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type UpsertRecordEntry struct {
	EmployeeID  string          `json:"employee_id"`
	PresentDays int             `json:"present_days"`
	AbsentDays  int             `json:"absent_days"`
	OTHours     decimal.Decimal `json:"ot_hours"`
	LateMinutes int             `json:"late_minutes"`
	WorkingDays int             `json:"working_days,omitempty"`
}

type UpsertRecordsRequest struct {
	Year       int                 `json:"year"`
	Month      string              `json:"month"` // number or name ("JAN".."DEC")
	DataSource string              `json:"data_source,omitempty"`
	Records    []UpsertRecordEntry `json:"records"`
}

func (r *UpsertRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if _, ok := validator.ParseMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month number or name"})
	}
	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{Field: "records", Message: "at least one record is required"})
	}
	for _, rec := range r.Records {
		if rec.EmployeeID == "" {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "every record needs an employee_id"})
			break
		}
		if rec.PresentDays < 0 || rec.AbsentDays < 0 || rec.LateMinutes < 0 || rec.WorkingDays < 0 || rec.OTHours.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "counts must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	PresentDays  int             `json:"present_days"`
	AbsentDays   int             `json:"absent_days"`
	OTHours      decimal.Decimal `json:"ot_hours"`
	LateMinutes  int             `json:"late_minutes"`
	WorkingDays  int             `json:"working_days"`
	DataSource   string          `json:"data_source"`
}

// MonthWithData identifies a (year, month) that has attendance rows.
type MonthWithData struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type CreateHolidayRequest struct {
	Date       string  `json:"date"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
}
