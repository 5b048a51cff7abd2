package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/cache"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

const monthsTTL = 30 * time.Minute

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    attendance.HolidayRepository
	cache          *cache.Client
	tasks          *task.Runner
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo attendance.HolidayRepository,
	cacheClient *cache.Client,
	tasks *task.Runner,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		cache:          cacheClient,
		tasks:          tasks,
	}
}

func (s *AttendanceServiceImpl) UpsertRecords(ctx context.Context, tenantID string, req attendance.UpsertRecordsRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	month, _ := validator.ParseMonth(req.Month)

	source := attendance.DataSourceFrontend
	if req.DataSource != "" {
		source = attendance.DataSource(req.DataSource)
	}

	records := make([]attendance.Record, 0, len(req.Records))
	for _, entry := range req.Records {
		records = append(records, attendance.Record{
			TenantID:    tenantID,
			EmployeeID:  entry.EmployeeID,
			Year:        req.Year,
			Month:       month,
			PresentDays: entry.PresentDays,
			AbsentDays:  entry.AbsentDays,
			OTHours:     entry.OTHours,
			LateMinutes: entry.LateMinutes,
			WorkingDays: entry.WorkingDays,
			DataSource:  source,
		})
	}

	count, err := s.attendanceRepo.UpsertRecords(ctx, tenantID, records)
	if err != nil {
		return count, err
	}

	s.tasks.Go("invalidate_attendance_cache", func(taskCtx context.Context) error {
		s.invalidateViews(taskCtx, tenantID)
		return nil
	})

	return count, nil
}

func (s *AttendanceServiceImpl) GetByPeriod(ctx context.Context, tenantID string, year int, month string) ([]attendance.RecordResponse, error) {
	m, ok := validator.ParseMonth(month)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be a month number or name"}}
	}

	records, err := s.attendanceRepo.GetByPeriod(ctx, tenantID, year, m)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) GetMonthsWithData(ctx context.Context, tenantID string) ([]attendance.MonthWithData, error) {
	key := cache.MonthsWithAttendanceKey(tenantID)

	if s.cache != nil {
		var cached []attendance.MonthWithData
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if err != cache.ErrCacheMiss {
			slog.Warn("Failed to read months cache", "tenant_id", tenantID, "error", err)
		}
	}

	months, err := s.attendanceRepo.GetMonthsWithData(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, months, monthsTTL); err != nil {
			slog.Warn("Failed to write months cache", "tenant_id", tenantID, "error", err)
		}
	}

	return months, nil
}

func (s *AttendanceServiceImpl) CreateHoliday(ctx context.Context, tenantID string, req attendance.CreateHolidayRequest) (attendance.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	created, err := s.holidayRepo.Create(ctx, attendance.Holiday{
		TenantID:   tenantID,
		Date:       date,
		Name:       req.Name,
		Department: req.Department,
	})
	if err != nil {
		return attendance.HolidayResponse{}, err
	}

	s.tasks.Go("invalidate_attendance_cache", func(taskCtx context.Context) error {
		s.invalidateViews(taskCtx, tenantID)
		return nil
	})

	return toHolidayResponse(created), nil
}

func (s *AttendanceServiceImpl) ListHolidays(ctx context.Context, tenantID string) ([]attendance.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toHolidayResponse(h))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) DeleteHoliday(ctx context.Context, tenantID string, id string) error {
	if err := s.holidayRepo.Delete(ctx, id, tenantID); err != nil {
		return err
	}

	s.tasks.Go("invalidate_attendance_cache", func(taskCtx context.Context) error {
		s.invalidateViews(taskCtx, tenantID)
		return nil
	})
	return nil
}

// invalidateViews drops the months list plus the derived payroll views,
// since attendance and holidays both feed the salary numbers. Best-effort.
func (s *AttendanceServiceImpl) invalidateViews(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	keys := []string{
		cache.MonthsWithAttendanceKey(tenantID),
		cache.PayrollOverviewKey(tenantID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		slog.Warn("Failed to invalidate attendance caches", "tenant_id", tenantID, "error", err)
	}
	if err := s.cache.DeletePattern(ctx, cache.FrontendChartsPattern(tenantID)); err != nil {
		slog.Warn("Failed to invalidate chart caches", "tenant_id", tenantID, "error", err)
	}
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		Year:        rec.Year,
		Month:       rec.Month,
		PresentDays: rec.PresentDays,
		AbsentDays:  rec.AbsentDays,
		OTHours:     rec.OTHours,
		LateMinutes: rec.LateMinutes,
		WorkingDays: rec.WorkingDays,
		DataSource:  string(rec.DataSource),
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	return resp
}

func toHolidayResponse(h attendance.Holiday) attendance.HolidayResponse {
	return attendance.HolidayResponse{
		ID:         h.ID,
		Date:       h.Date.Format("2006-01-02"),
		Name:       h.Name,
		Department: h.Department,
	}
}
