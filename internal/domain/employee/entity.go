package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	TenantID         string
	EmployeeCode     string
	FirstName        string
	LastName         *string
	Email            *string
	MobileNumber     *string
	Department       *string
	Designation      *string
	DateOfJoining    *time.Time
	ShiftStartTime   string // "HH:MM" wall clock
	ShiftEndTime     string
	BasicSalary      decimal.Decimal
	TDSPercentage    decimal.Decimal
	OTRatePerHour    *decimal.Decimal
	OffMonday        bool
	OffTuesday       bool
	OffWednesday     bool
	OffThursday      bool
	OffFriday        bool
	OffSaturday      bool
	OffSunday        bool
	IsActive         bool
	InactiveMarkedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName joins first and last name, skipping a missing last name.
func (e Employee) FullName() string {
	if e.LastName == nil || *e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + *e.LastName
}

// IsOffDay reports whether the given weekday is flagged off for the employee.
func (e Employee) IsOffDay(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return e.OffMonday
	case time.Tuesday:
		return e.OffTuesday
	case time.Wednesday:
		return e.OffWednesday
	case time.Thursday:
		return e.OffThursday
	case time.Friday:
		return e.OffFriday
	case time.Saturday:
		return e.OffSaturday
	case time.Sunday:
		return e.OffSunday
	}
	return false
}
