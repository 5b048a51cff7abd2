package cron

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
)

// RegisterPayrollJobs wires the recurring payroll housekeeping:
// the daily credit burn and the automatic monthly calculation for tenants
// that opted in.
func RegisterPayrollJobs(s *Scheduler, tenantRepo tenant.TenantRepository, payrollService payroll.PayrollService) {
	s.AddJob("daily_credit_deduction", 24*time.Hour, func(ctx context.Context) error {
		tenants, err := tenantRepo.ListActiveTenants(ctx)
		if err != nil {
			return err
		}

		for _, t := range tenants {
			remaining, err := tenantRepo.DeductDailyCredit(ctx, t.ID)
			if err != nil {
				if errors.Is(err, tenant.ErrNoCreditsLeft) || errors.Is(err, tenant.ErrTenantInactive) {
					slog.Warn("Tenant out of credits", "tenant_id", t.ID, "subdomain", t.Subdomain)
					continue
				}
				slog.Error("Failed to deduct daily credit", "tenant_id", t.ID, "error", err)
				continue
			}
			if remaining <= 5 {
				slog.Warn("Tenant credits running low", "tenant_id", t.ID, "remaining", remaining)
			}
		}
		return nil
	})

	s.AddJob("auto_calculate_payroll", 6*time.Hour, func(ctx context.Context) error {
		tenants, err := tenantRepo.ListAutoPayrollTenants(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, t := range tenants {
			_, err := payrollService.Calculate(ctx, t.ID, payroll.CalculateRequest{
				Year:  now.Year(),
				Month: strconv.Itoa(int(now.Month())),
				Mode:  payroll.ModeCalculate,
			})
			if err != nil {
				if errors.Is(err, payroll.ErrPeriodLocked) {
					continue
				}
				slog.Error("Auto payroll calculation failed", "tenant_id", t.ID, "error", err)
				continue
			}

			if _, err := payrollService.GetOverview(ctx, t.ID, true); err != nil {
				slog.Warn("Failed to warm payroll overview", "tenant_id", t.ID, "error", err)
			}
		}
		return nil
	})
}
