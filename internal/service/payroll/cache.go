package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/sniperthink/hrms-backend-go/internal/pkg/cache"
)

const overviewTTL = 15 * time.Minute

// invalidatePayrollViews drops the tenant's cached overview, chart and
// months-with-attendance keys. Failures are logged and swallowed: a stale
// cache entry expires on its own, a failed payroll write would not.
func invalidatePayrollViews(ctx context.Context, c *cache.Client, tenantID string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.PayrollOverviewKey(tenantID)); err != nil {
		slog.Warn("Failed to invalidate payroll overview cache", "tenant_id", tenantID, "error", err)
	}
	if err := c.Delete(ctx, cache.MonthsWithAttendanceKey(tenantID)); err != nil {
		slog.Warn("Failed to invalidate months cache", "tenant_id", tenantID, "error", err)
	}
	if err := c.DeletePattern(ctx, cache.FrontendChartsPattern(tenantID)); err != nil {
		slog.Warn("Failed to invalidate chart caches", "tenant_id", tenantID, "error", err)
	}
}
