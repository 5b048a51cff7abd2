package advance

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/cache"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
	cache        *cache.Client
	tasks        *task.Runner
}

func NewAdvanceService(
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
	cacheClient *cache.Client,
	tasks *task.Runner,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		cache:        cacheClient,
		tasks:        tasks,
	}
}

func (s *AdvanceServiceImpl) CreateAdvance(ctx context.Context, tenantID string, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, tenantID); err != nil {
		return advance.AdvanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.AdvanceDate)

	a := advance.Advance{
		TenantID:         tenantID,
		EmployeeID:       req.EmployeeID,
		Amount:           req.Amount,
		RemainingBalance: req.Amount,
		AdvanceDate:      date,
		Status:           advance.StatusPending,
		Notes:            req.Notes,
	}
	if req.ForMonth != "" {
		m, _ := validator.ParseMonth(req.ForMonth)
		a.ForMonth = validator.MonthName(m)
		a.ForYear = req.ForYear
		if a.ForYear == 0 {
			a.ForYear = date.Year()
		}
	}

	created, err := s.advanceRepo.Create(ctx, a)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	s.invalidateInBackground(tenantID)
	return toAdvanceResponse(created), nil
}

func (s *AdvanceServiceImpl) GetAdvance(ctx context.Context, tenantID string, id string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return toAdvanceResponse(a), nil
}

func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, tenantID string, filter advance.Filter) (advance.ListAdvanceResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	advances, total, err := s.advanceRepo.List(ctx, tenantID, filter)
	if err != nil {
		return advance.ListAdvanceResponse{}, err
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, toAdvanceResponse(a))
	}

	return advance.ListAdvanceResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *AdvanceServiceImpl) UpdateAdvance(ctx context.Context, tenantID string, req advance.UpdateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	current, err := s.advanceRepo.GetByID(ctx, req.ID, tenantID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	// The principal can only change while the advance is untouched.
	if req.Amount != nil && current.RemainingBalance.LessThan(current.Amount) {
		return advance.AdvanceResponse{}, advance.ErrAdvanceAlreadyDeducted
	}
	if req.Amount != nil && req.RemainingBalance == nil && current.Status == advance.StatusPending {
		req.RemainingBalance = req.Amount
	}

	// Keep the status consistent with an edited balance.
	if req.RemainingBalance != nil && req.Status == nil {
		amount := current.Amount
		if req.Amount != nil {
			amount = *req.Amount
		}
		status := string(advance.StatusPartiallyPaid)
		if req.RemainingBalance.IsZero() {
			status = string(advance.StatusRepaid)
		} else if req.RemainingBalance.Equal(amount) {
			status = string(advance.StatusPending)
		}
		req.Status = &status
	}

	if err := s.advanceRepo.Update(ctx, tenantID, req); err != nil {
		return advance.AdvanceResponse{}, err
	}

	updated, err := s.advanceRepo.GetByID(ctx, req.ID, tenantID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	s.invalidateInBackground(tenantID)
	return toAdvanceResponse(updated), nil
}

func (s *AdvanceServiceImpl) DeleteAdvance(ctx context.Context, tenantID string, id string) error {
	current, err := s.advanceRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if current.Status != advance.StatusPending || current.RemainingBalance.LessThan(current.Amount) {
		return advance.ErrAdvanceAlreadyDeducted
	}

	if err := s.advanceRepo.Delete(ctx, id, tenantID); err != nil {
		return err
	}

	s.invalidateInBackground(tenantID)
	return nil
}

func (s *AdvanceServiceImpl) invalidateInBackground(tenantID string) {
	s.tasks.Go("invalidate_advance_cache", func(ctx context.Context) error {
		if s.cache == nil {
			return nil
		}
		if err := s.cache.Delete(ctx, cache.PayrollOverviewKey(tenantID)); err != nil {
			slog.Warn("Failed to invalidate payroll overview cache", "tenant_id", tenantID, "error", err)
		}
		if err := s.cache.Delete(ctx, cache.MonthsWithAttendanceKey(tenantID)); err != nil {
			slog.Warn("Failed to invalidate months cache", "tenant_id", tenantID, "error", err)
		}
		if err := s.cache.DeletePattern(ctx, cache.FrontendChartsPattern(tenantID)); err != nil {
			slog.Warn("Failed to invalidate chart caches", "tenant_id", tenantID, "error", err)
		}
		return nil
	})
}

func toAdvanceResponse(a advance.Advance) advance.AdvanceResponse {
	resp := advance.AdvanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		Amount:           a.Amount,
		RemainingBalance: a.RemainingBalance,
		ForMonth:         strings.ToUpper(a.ForMonth),
		ForYear:          a.ForYear,
		AdvanceDate:      a.AdvanceDate.Format("2006-01-02"),
		Status:           string(a.Status),
		Notes:            a.Notes,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	if a.EmployeeCode != nil {
		resp.EmployeeCode = *a.EmployeeCode
	}
	return resp
}
