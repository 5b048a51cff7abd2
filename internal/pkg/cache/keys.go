package cache

// Cache key builders. Every derived view is keyed per tenant so invalidation
// never crosses tenants.

func PayrollOverviewKey(tenantID string) string {
	return "payroll_overview_" + tenantID
}

func MonthsWithAttendanceKey(tenantID string) string {
	return "months_with_attendance_" + tenantID
}

// FrontendChartsPattern matches chart keys written by the out-of-process
// dashboard producer; this service only invalidates them.
func FrontendChartsPattern(tenantID string) string {
	return "frontend_charts_" + tenantID + "_*"
}
