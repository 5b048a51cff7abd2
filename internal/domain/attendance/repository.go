package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for monthly attendance records.
// All methods include tenantID to prevent cross-tenant data access.
type AttendanceRepository interface {
	UpsertRecords(ctx context.Context, tenantID string, records []Record) (int, error)
	GetByPeriod(ctx context.Context, tenantID string, year, month int) ([]Record, error)
	GetMonthsWithData(ctx context.Context, tenantID string) ([]MonthWithData, error)
}

// HolidayRepository defines data access for tenant holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context, tenantID string) ([]Holiday, error)
	GetByRange(ctx context.Context, tenantID string, from, to time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id string, tenantID string) error
}
