package attendance

import (
	"context"
)

// AttendanceService defines business logic for monthly attendance and
// tenant holidays.
type AttendanceService interface {
	// UpsertRecords bulk-inserts or replaces monthly aggregates and returns
	// the number of rows written
	UpsertRecords(ctx context.Context, tenantID string, req UpsertRecordsRequest) (int, error)

	// GetByPeriod returns the tenant's attendance rows for one month
	GetByPeriod(ctx context.Context, tenantID string, year int, month string) ([]RecordResponse, error)

	// GetMonthsWithData returns the distinct months that have attendance,
	// newest first, cached per tenant
	GetMonthsWithData(ctx context.Context, tenantID string) ([]MonthWithData, error)

	// CreateHoliday declares a paid holiday
	CreateHoliday(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error)

	// ListHolidays returns all declared holidays ordered by date
	ListHolidays(ctx context.Context, tenantID string) ([]HolidayResponse, error)

	// DeleteHoliday removes a holiday
	DeleteHoliday(ctx context.Context, tenantID string, id string) error
}
