package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataSource tells where a monthly attendance aggregate came from.
type DataSource string

const (
	DataSourceUploaded DataSource = "UPLOADED"
	DataSourceFrontend DataSource = "FRONTEND"
)

// Record is a per-employee monthly attendance aggregate.
type Record struct {
	ID          string
	TenantID    string
	EmployeeID  string
	Year        int
	Month       int
	PresentDays int
	AbsentDays  int
	OTHours     decimal.Decimal
	LateMinutes int
	// WorkingDays is the uploaded working-day count. Zero means no override
	// was supplied and the calendar-derived count applies.
	WorkingDays int
	DataSource  DataSource
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Holiday is a tenant-declared paid holiday. A nil Department means the
// holiday applies to every department.
type Holiday struct {
	ID         string
	TenantID   string
	Date       time.Time
	Name       string
	Department *string
	CreatedAt  time.Time
}
