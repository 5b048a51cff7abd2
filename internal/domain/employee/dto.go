package employee

import (
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string           `json:"employee_code"`
	FirstName      string           `json:"first_name"`
	LastName       *string          `json:"last_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	MobileNumber   *string          `json:"mobile_number,omitempty"`
	Department     *string          `json:"department,omitempty"`
	Designation    *string          `json:"designation,omitempty"`
	DateOfJoining  *string          `json:"date_of_joining,omitempty"`
	ShiftStartTime string           `json:"shift_start_time"`
	ShiftEndTime   string           `json:"shift_end_time"`
	BasicSalary    decimal.Decimal  `json:"basic_salary"`
	TDSPercentage  *decimal.Decimal `json:"tds_percentage,omitempty"`
	OTRatePerHour  *decimal.Decimal `json:"ot_rate_per_hour,omitempty"`
	OffDays        []string         `json:"off_days,omitempty"` // weekday names; defaults to ["sunday"]
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.MobileNumber != nil && *r.MobileNumber != "" && !validator.IsNumeric(*r.MobileNumber) {
		errs = append(errs, validator.ValidationError{Field: "mobile_number", Message: "must contain digits only"})
	}
	if !validator.IsValidTimeOfDay(r.ShiftStartTime) {
		errs = append(errs, validator.ValidationError{Field: "shift_start_time", Message: "must be in HH:MM format"})
	}
	if !validator.IsValidTimeOfDay(r.ShiftEndTime) {
		errs = append(errs, validator.ValidationError{Field: "shift_end_time", Message: "must be in HH:MM format"})
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.TDSPercentage != nil && (r.TDSPercentage.IsNegative() || r.TDSPercentage.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "tds_percentage", Message: "must be between 0 and 100"})
	}
	for _, day := range r.OffDays {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{Field: "off_days", Message: "contains an invalid weekday name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string           `json:"-"`
	FirstName      *string          `json:"first_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	MobileNumber   *string          `json:"mobile_number,omitempty"`
	Department     *string          `json:"department,omitempty"`
	Designation    *string          `json:"designation,omitempty"`
	DateOfJoining  *string          `json:"date_of_joining,omitempty"`
	ShiftStartTime *string          `json:"shift_start_time,omitempty"`
	ShiftEndTime   *string          `json:"shift_end_time,omitempty"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"`
	TDSPercentage  *decimal.Decimal `json:"tds_percentage,omitempty"`
	OTRatePerHour  *decimal.Decimal `json:"ot_rate_per_hour,omitempty"`
	OffDays        []string         `json:"off_days,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	}
	if r.MobileNumber != nil && *r.MobileNumber != "" && !validator.IsNumeric(*r.MobileNumber) {
		errs = append(errs, validator.ValidationError{Field: "mobile_number", Message: "must contain digits only"})
	}
	if r.ShiftStartTime != nil && !validator.IsValidTimeOfDay(*r.ShiftStartTime) {
		errs = append(errs, validator.ValidationError{Field: "shift_start_time", Message: "must be in HH:MM format"})
	}
	if r.ShiftEndTime != nil && !validator.IsValidTimeOfDay(*r.ShiftEndTime) {
		errs = append(errs, validator.ValidationError{Field: "shift_end_time", Message: "must be in HH:MM format"})
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	for _, day := range r.OffDays {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{Field: "off_days", Message: "contains an invalid weekday name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Department *string
	ActiveOnly bool
	Search     *string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID             string           `json:"id"`
	EmployeeCode   string           `json:"employee_code"`
	FirstName      string           `json:"first_name"`
	LastName       *string          `json:"last_name,omitempty"`
	FullName       string           `json:"full_name"`
	Email          *string          `json:"email,omitempty"`
	MobileNumber   *string          `json:"mobile_number,omitempty"`
	Department     *string          `json:"department,omitempty"`
	Designation    *string          `json:"designation,omitempty"`
	DateOfJoining  *string          `json:"date_of_joining,omitempty"`
	ShiftStartTime string           `json:"shift_start_time"`
	ShiftEndTime   string           `json:"shift_end_time"`
	BasicSalary    decimal.Decimal  `json:"basic_salary"`
	TDSPercentage  decimal.Decimal  `json:"tds_percentage"`
	OTRatePerHour  *decimal.Decimal `json:"ot_rate_per_hour,omitempty"`
	OffDays        []string         `json:"off_days"`
	IsActive       bool             `json:"is_active"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
