package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/cache"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
	"github.com/sniperthink/hrms-backend-go/internal/repository/postgresql"
)

const (
	defaultWorkingDays = 25
	defaultTDSRate     = 5.0
)

type PayrollServiceImpl struct {
	db           database.TxBeginner
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	advanceRepo  advance.AdvanceRepository
	holidayRepo  attendance.HolidayRepository
	batch        InputStrategy
	row          InputStrategy
	cache        *cache.Client
	tasks        *task.Runner
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	advanceRepo advance.AdvanceRepository,
	holidayRepo attendance.HolidayRepository,
	cacheClient *cache.Client,
	tasks *task.Runner,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		advanceRepo:  advanceRepo,
		holidayRepo:  holidayRepo,
		batch:        NewBatchInputStrategy(payrollRepo),
		row:          NewRowInputStrategy(employeeRepo, attendanceRepo, advanceRepo),
		cache:        cacheClient,
		tasks:        tasks,
	}
}

// gatherInputs prefers the batch strategy and falls back to per-repository
// reads when the aggregate query fails.
func (s *PayrollServiceImpl) gatherInputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error) {
	inputs, err := s.batch.Inputs(ctx, tenantID, year, month)
	if err == nil {
		return inputs, nil
	}
	slog.Warn("Batch input strategy failed, falling back to row strategy", "tenant_id", tenantID, "error", err)
	return s.row.Inputs(ctx, tenantID, year, month)
}

func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func (s *PayrollServiceImpl) Calculate(ctx context.Context, tenantID string, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResponse{}, err
	}
	month, _ := validator.ParseMonth(req.Month)
	mode := req.Mode
	if mode == "" {
		mode = payroll.ModeTentative
	}

	from, to := monthRange(req.Year, month)
	holidays, err := s.holidayRepo.GetByRange(ctx, tenantID, from, to)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	inputs, err := s.gatherInputs(ctx, tenantID, req.Year, month)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	salaries := make([]payroll.CalculatedSalary, 0, len(inputs))
	for _, in := range inputs {
		salaries = append(salaries, ComputeSalary(in, req.Year, month, holidays))
	}

	resp := payroll.CalculateResponse{
		Year:    req.Year,
		Month:   month,
		Mode:    mode,
		Results: toSalaryLines(salaries),
	}
	if len(inputs) == 0 {
		resp.Message = "no attendance records found for this period"
		return resp, nil
	}

	if mode == payroll.ModeTentative {
		return resp, nil
	}

	period, err := s.payrollRepo.GetOrCreatePeriod(ctx, tenantID, req.Year, month, payroll.DataSourceFrontend)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}
	if period.IsLocked {
		return payroll.CalculateResponse{}, payroll.ErrPeriodLocked
	}

	if mode == payroll.ModeCalculate && !req.ForceRecalculate {
		existing, err := s.payrollRepo.GetSalariesByPeriod(ctx, period.ID, tenantID)
		if err != nil {
			return payroll.CalculateResponse{}, err
		}
		if len(existing) > 0 {
			resp.Results = toSalaryLines(existing)
			resp.Message = "period already calculated, pass force_recalculate to overwrite"
			return resp, nil
		}
	}

	keepIDs := make([]string, 0, len(salaries))
	for i := range salaries {
		salaries[i].TenantID = tenantID
		salaries[i].PeriodID = period.ID
		keepIDs = append(keepIDs, salaries[i].EmployeeID)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if _, err := s.payrollRepo.UpsertSalaries(txCtx, tenantID, salaries); err != nil {
			return err
		}
		if mode == payroll.ModeCalculate && len(keepIDs) > 0 {
			if _, err := s.payrollRepo.DeleteSalariesNotIn(txCtx, period.ID, tenantID, keepIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	s.tasks.Go("invalidate_payroll_cache", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		return nil
	})

	resp.Persisted = true
	resp.CacheInvalidation = true
	return resp, nil
}

func (s *PayrollServiceImpl) SaveDirect(ctx context.Context, tenantID string, req payroll.SaveDirectRequest) (payroll.SaveDirectResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SaveDirectResponse{}, err
	}
	month, _ := validator.ParseMonth(req.Month)

	period, err := s.payrollRepo.GetOrCreatePeriod(ctx, tenantID, req.Year, month, payroll.DataSourceUploaded)
	if err != nil {
		return payroll.SaveDirectResponse{}, err
	}
	if period.IsLocked {
		return payroll.SaveDirectResponse{}, payroll.ErrPeriodLocked
	}

	employeeIDs := make([]string, 0, len(req.PayrollEntries))
	for _, e := range req.PayrollEntries {
		employeeIDs = append(employeeIDs, e.EmployeeID)
	}
	employees, err := s.employeeRepo.GetByIDs(ctx, employeeIDs, tenantID)
	if err != nil {
		return payroll.SaveDirectResponse{}, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	salaries := make([]payroll.CalculatedSalary, 0, len(req.PayrollEntries))
	for _, entry := range req.PayrollEntries {
		emp, ok := byID[entry.EmployeeID]
		if !ok {
			return payroll.SaveDirectResponse{}, fmt.Errorf("entry for unknown employee %s: %w", entry.EmployeeID, employee.ErrEmployeeNotFound)
		}
		salaries = append(salaries, payroll.CalculatedSalary{
			TenantID:             tenantID,
			PeriodID:             period.ID,
			EmployeeID:           emp.ID,
			EmployeeName:         emp.FullName(),
			EmployeeCode:         emp.EmployeeCode,
			WorkingDays:          entry.WorkingDays,
			PresentDays:          entry.PresentDays,
			OTHours:              entry.OTHours,
			LateMinutes:          entry.LateMinutes,
			BasicSalary:          entry.BasicSalary,
			SalaryForPresentDays: entry.SalaryForPresentDays,
			OTCharges:            entry.OTCharges,
			LateDeduction:        entry.LateDeduction,
			GrossSalary:          entry.GrossSalary,
			TDSAmount:            entry.TDSAmount,
			AdvanceDeduction:     entry.AdvanceDeduction,
			NetPayable:           entry.NetPayable,
		})
	}

	var saved, deleted int
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		if saved, err = s.payrollRepo.UpsertSalaries(txCtx, tenantID, salaries); err != nil {
			return err
		}
		if deleted, err = s.payrollRepo.DeleteSalariesNotIn(txCtx, period.ID, tenantID, employeeIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return payroll.SaveDirectResponse{}, err
	}

	s.tasks.Go("refresh_payroll_overview", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		_, err := s.GetOverview(taskCtx, tenantID, true)
		return err
	})

	return payroll.SaveDirectResponse{
		PeriodID:     period.ID,
		SavedEntries: saved,
		DeletedRows:  deleted,
	}, nil
}

func (s *PayrollServiceImpl) SetPaidStatus(ctx context.Context, tenantID string, req payroll.MarkPaidRequest) (payroll.MarkPaidResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.MarkPaidResponse{}, err
	}

	salaries, err := s.payrollRepo.GetSalariesByIDs(ctx, req.SalaryIDs, tenantID)
	if err != nil {
		return payroll.MarkPaidResponse{}, err
	}
	if len(salaries) != len(req.SalaryIDs) {
		return payroll.MarkPaidResponse{}, payroll.ErrSalaryNotFound
	}

	var paymentDate *time.Time
	if req.MarkAsPaid {
		d := time.Now().UTC().Truncate(24 * time.Hour)
		if req.PaymentDate != nil {
			if parsed, ok := validator.IsValidDate(*req.PaymentDate); ok {
				d = parsed
			}
		}
		paymentDate = &d
	}

	var updated int
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		updated, err = s.payrollRepo.SetPaidStatus(txCtx, tenantID, req.SalaryIDs, req.MarkAsPaid, paymentDate)
		if err != nil {
			return err
		}

		if !req.MarkAsPaid {
			// Unmarking does not reverse ledger repayments; those are
			// corrected manually through advance edits.
			return nil
		}

		for _, sal := range salaries {
			if sal.IsPaid || !sal.AdvanceDeduction.IsPositive() {
				continue
			}
			outstanding, err := s.advanceRepo.GetOutstandingByEmployee(txCtx, sal.EmployeeID, tenantID)
			if err != nil {
				return err
			}
			updates := PlanRepayment(outstanding, sal.AdvanceDeduction)
			if len(updates) == 0 {
				continue
			}
			if err := s.advanceRepo.ApplyBalanceUpdates(txCtx, tenantID, updates); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.MarkPaidResponse{}, err
	}

	s.tasks.Go("invalidate_payroll_cache", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		return nil
	})

	return payroll.MarkPaidResponse{UpdatedCount: updated}, nil
}

func (s *PayrollServiceImpl) UpdateAdvanceDeduction(ctx context.Context, tenantID string, req payroll.UpdateAdvanceDeductionRequest) (payroll.SalaryLineResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryLineResponse{}, err
	}

	salaries, err := s.payrollRepo.GetSalariesByIDs(ctx, []string{req.SalaryID}, tenantID)
	if err != nil {
		return payroll.SalaryLineResponse{}, err
	}
	if len(salaries) == 0 {
		return payroll.SalaryLineResponse{}, payroll.ErrSalaryNotFound
	}
	sal := salaries[0]
	if sal.IsPaid {
		return payroll.SalaryLineResponse{}, payroll.ErrSalaryAlreadyPaid
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, sal.PeriodID, tenantID)
	if err != nil {
		return payroll.SalaryLineResponse{}, err
	}
	if period.IsLocked {
		return payroll.SalaryLineResponse{}, payroll.ErrPeriodLocked
	}

	afterTDS := sal.GrossSalary.Sub(sal.TDSAmount)
	if afterTDS.IsNegative() {
		afterTDS = decimal.Zero
	}
	deduction := req.AdvanceDeduction
	if deduction.GreaterThan(afterTDS) {
		deduction = afterTDS
	}
	net := afterTDS.Sub(deduction).Round(2)

	err = s.payrollRepo.UpdateAdvanceDeduction(ctx, tenantID, sal.ID, payroll.AdvanceDeductionUpdate{
		AdvanceDeduction: deduction,
		NetPayable:       net,
	})
	if err != nil {
		return payroll.SalaryLineResponse{}, err
	}

	s.tasks.Go("invalidate_payroll_cache", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		return nil
	})

	sal.AdvanceDeduction = deduction
	sal.NetPayable = net
	return toSalaryLine(sal), nil
}

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, tenantID string, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	now := time.Now().UTC()
	year := req.Year
	if year == 0 {
		year = now.Year()
	}
	month := int(now.Month())
	if req.Month != "" {
		month, _ = validator.ParseMonth(req.Month)
	}

	workingDays := defaultWorkingDays
	if req.WorkingDays != nil {
		workingDays = *req.WorkingDays
	}
	tdsRate := decimal.NewFromFloat(defaultTDSRate)
	if req.TDSRate != nil {
		tdsRate = *req.TDSRate
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, payroll.Period{
		TenantID:           tenantID,
		Year:               year,
		Month:              month,
		DataSource:         payroll.DataSourceFrontend,
		WorkingDaysInMonth: workingDays,
		TDSRate:            tdsRate,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(created), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, tenantID string) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, toPeriodResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPeriodDetail(ctx context.Context, tenantID string, periodID string) (payroll.PeriodDetailResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, tenantID)
	if err != nil {
		return payroll.PeriodDetailResponse{}, err
	}

	salaries, err := s.payrollRepo.GetSalariesByPeriod(ctx, periodID, tenantID)
	if err != nil {
		return payroll.PeriodDetailResponse{}, err
	}

	return payroll.PeriodDetailResponse{
		Period:   toPeriodResponse(period),
		Salaries: toSalaryLines(salaries),
	}, nil
}

func (s *PayrollServiceImpl) SetPeriodLocked(ctx context.Context, tenantID string, periodID string, locked bool) error {
	if err := s.payrollRepo.SetPeriodLocked(ctx, periodID, tenantID, locked); err != nil {
		return err
	}

	s.tasks.Go("invalidate_payroll_cache", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		return nil
	})
	return nil
}

func (s *PayrollServiceImpl) DeletePeriod(ctx context.Context, tenantID string, periodID string) error {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, tenantID)
	if err != nil {
		return err
	}
	if period.IsLocked {
		return payroll.ErrPeriodLocked
	}

	hasPaid, err := s.payrollRepo.HasPaidSalaries(ctx, periodID, tenantID)
	if err != nil {
		return err
	}
	if hasPaid {
		return payroll.ErrPeriodHasPaidSalaries
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if _, err := s.payrollRepo.DeleteSalariesByPeriod(txCtx, periodID, tenantID); err != nil {
			return err
		}
		return s.payrollRepo.DeletePeriod(txCtx, periodID, tenantID)
	})
	if err != nil {
		return err
	}

	s.tasks.Go("invalidate_payroll_cache", func(taskCtx context.Context) error {
		invalidatePayrollViews(taskCtx, s.cache, tenantID)
		return nil
	})
	return nil
}

func (s *PayrollServiceImpl) GetOverview(ctx context.Context, tenantID string, forceRefresh bool) ([]payroll.PeriodOverview, error) {
	key := cache.PayrollOverviewKey(tenantID)

	if !forceRefresh && s.cache != nil {
		var cached []payroll.PeriodOverview
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if err != cache.ErrCacheMiss {
			slog.Warn("Failed to read payroll overview cache", "tenant_id", tenantID, "error", err)
		}
	}

	rows, err := s.payrollRepo.GetOverview(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Status = overviewStatus(rows[i])
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, rows, overviewTTL); err != nil {
			slog.Warn("Failed to write payroll overview cache", "tenant_id", tenantID, "error", err)
		}
	}

	return rows, nil
}

// overviewStatus colors a period by payment progress: green when every
// salary is paid, yellow when some are, red otherwise.
func overviewStatus(o payroll.PeriodOverview) string {
	switch {
	case o.TotalEmployees > 0 && o.PaidCount == o.TotalEmployees:
		return "green"
	case o.PaidCount > 0:
		return "yellow"
	default:
		return "red"
	}
}

func toPeriodResponse(p payroll.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:                 p.ID,
		Year:               p.Year,
		Month:              p.Month,
		DataSource:         string(p.DataSource),
		IsLocked:           p.IsLocked,
		WorkingDaysInMonth: p.WorkingDaysInMonth,
		TDSRate:            p.TDSRate,
	}
}

func toSalaryLine(s payroll.CalculatedSalary) payroll.SalaryLineResponse {
	var paymentDate *string
	if s.PaymentDate != nil {
		d := s.PaymentDate.Format("2006-01-02")
		paymentDate = &d
	}

	return payroll.SalaryLineResponse{
		ID:                   s.ID,
		EmployeeID:           s.EmployeeID,
		EmployeeName:         s.EmployeeName,
		EmployeeCode:         s.EmployeeCode,
		WorkingDays:          s.WorkingDays,
		PresentDays:          s.PresentDays,
		OTHours:              s.OTHours,
		LateMinutes:          s.LateMinutes,
		BasicSalary:          s.BasicSalary,
		SalaryForPresentDays: s.SalaryForPresentDays,
		OTCharges:            s.OTCharges,
		LateDeduction:        s.LateDeduction,
		GrossSalary:          s.GrossSalary,
		TDSAmount:            s.TDSAmount,
		AdvanceDeduction:     s.AdvanceDeduction,
		NetPayable:           s.NetPayable,
		IsPaid:               s.IsPaid,
		PaymentDate:          paymentDate,
	}
}

func toSalaryLines(salaries []payroll.CalculatedSalary) []payroll.SalaryLineResponse {
	lines := make([]payroll.SalaryLineResponse, 0, len(salaries))
	for _, s := range salaries {
		lines = append(lines, toSalaryLine(s))
	}
	return lines
}
