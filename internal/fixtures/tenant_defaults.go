package fixtures

import (
	"time"

	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
)

// holidaySeed is a fixed-date holiday granted to every new tenant. Movable
// festivals are left for the tenant to declare.
type holidaySeed struct {
	Month time.Month
	Day   int
	Name  string
}

var defaultHolidaySeeds = []holidaySeed{
	{time.January, 1, "New Year's Day"},
	{time.January, 26, "Republic Day"},
	{time.May, 1, "Labour Day"},
	{time.August, 15, "Independence Day"},
	{time.October, 2, "Gandhi Jayanti"},
	{time.December, 25, "Christmas Day"},
}

// DefaultHolidays returns the tenant-wide holiday set for one year, used to
// seed a freshly signed-up tenant.
func DefaultHolidays(tenantID string, year int) []attendance.Holiday {
	holidays := make([]attendance.Holiday, 0, len(defaultHolidaySeeds))
	for _, seed := range defaultHolidaySeeds {
		holidays = append(holidays, attendance.Holiday{
			TenantID: tenantID,
			Date:     time.Date(year, seed.Month, seed.Day, 0, 0, 0, 0, time.UTC),
			Name:     seed.Name,
		})
	}
	return holidays
}
