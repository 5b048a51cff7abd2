package employee

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
	payrollservice "github.com/sniperthink/hrms-backend-go/internal/service/payroll"
)

// defaultTDSPercentage applies when an employee is created without one.
var defaultTDSPercentage = decimal.NewFromFloat(5.0)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	tenantRepo   tenant.TenantRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	tenantRepo tenant.TenantRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		tenantRepo:   tenantRepo,
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, tenantID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	t, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	activeCount, err := s.employeeRepo.CountActive(ctx, tenantID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if activeCount >= int64(t.MaxEmployees) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeLimitReached
	}

	e := employee.Employee{
		TenantID:       tenantID,
		EmployeeCode:   strings.TrimSpace(req.EmployeeCode),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       req.LastName,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		Department:     req.Department,
		Designation:    req.Designation,
		ShiftStartTime: req.ShiftStartTime,
		ShiftEndTime:   req.ShiftEndTime,
		BasicSalary:    req.BasicSalary,
		TDSPercentage:  defaultTDSPercentage,
		IsActive:       true,
	}
	if req.TDSPercentage != nil {
		e.TDSPercentage = *req.TDSPercentage
	}
	if req.DateOfJoining != nil {
		if doj, err := time.Parse("2006-01-02", *req.DateOfJoining); err == nil {
			e.DateOfJoining = &doj
		}
	}

	// The OT rate is derived once at creation and then sticks; later salary
	// edits refresh it only while the stored rate is still blank.
	if req.OTRatePerHour != nil && req.OTRatePerHour.IsPositive() {
		e.OTRatePerHour = req.OTRatePerHour
	} else {
		derived := payrollservice.DeriveOTRate(req.BasicSalary, req.ShiftStartTime, req.ShiftEndTime)
		e.OTRatePerHour = &derived
	}

	applyOffDays(&e, req.OffDays)

	created, err := s.employeeRepo.Create(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, tenantID string, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, tenantID string, filter employee.Filter) (employee.ListEmployeeResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	employees, total, err := s.employeeRepo.List(ctx, tenantID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, tenantID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// The stored OT rate sticks once set. Pay or shift edits re-derive it
	// only when the employee has no rate yet; an explicit rate in the
	// request always wins.
	hasStoredRate := current.OTRatePerHour != nil && current.OTRatePerHour.IsPositive()
	if req.OTRatePerHour == nil && !hasStoredRate && (req.BasicSalary != nil || req.ShiftStartTime != nil || req.ShiftEndTime != nil) {
		basic := current.BasicSalary
		if req.BasicSalary != nil {
			basic = *req.BasicSalary
		}
		start := current.ShiftStartTime
		if req.ShiftStartTime != nil {
			start = *req.ShiftStartTime
		}
		end := current.ShiftEndTime
		if req.ShiftEndTime != nil {
			end = *req.ShiftEndTime
		}
		derived := payrollservice.DeriveOTRate(basic, start, end)
		req.OTRatePerHour = &derived
	}

	if err := s.employeeRepo.Update(ctx, tenantID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID, tenantID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, tenantID string, id string) error {
	return s.employeeRepo.Deactivate(ctx, id, tenantID)
}

// applyOffDays sets the weekly off flags; an empty list means Sunday off.
func applyOffDays(e *employee.Employee, offDays []string) {
	if len(offDays) == 0 {
		offDays = []string{"sunday"}
	}
	for _, day := range offDays {
		d, ok := validator.ParseWeekday(day)
		if !ok {
			continue
		}
		switch d {
		case time.Monday:
			e.OffMonday = true
		case time.Tuesday:
			e.OffTuesday = true
		case time.Wednesday:
			e.OffWednesday = true
		case time.Thursday:
			e.OffThursday = true
		case time.Friday:
			e.OffFriday = true
		case time.Saturday:
			e.OffSaturday = true
		case time.Sunday:
			e.OffSunday = true
		}
	}
}

func offDayNames(e employee.Employee) []string {
	days := []string{}
	if e.OffMonday {
		days = append(days, "monday")
	}
	if e.OffTuesday {
		days = append(days, "tuesday")
	}
	if e.OffWednesday {
		days = append(days, "wednesday")
	}
	if e.OffThursday {
		days = append(days, "thursday")
	}
	if e.OffFriday {
		days = append(days, "friday")
	}
	if e.OffSaturday {
		days = append(days, "saturday")
	}
	if e.OffSunday {
		days = append(days, "sunday")
	}
	return days
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	var doj *string
	if e.DateOfJoining != nil {
		s := e.DateOfJoining.Format("2006-01-02")
		doj = &s
	}

	return employee.EmployeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		MobileNumber:   e.MobileNumber,
		Department:     e.Department,
		Designation:    e.Designation,
		DateOfJoining:  doj,
		ShiftStartTime: e.ShiftStartTime,
		ShiftEndTime:   e.ShiftEndTime,
		BasicSalary:    e.BasicSalary,
		TDSPercentage:  e.TDSPercentage,
		OTRatePerHour:  e.OTRatePerHour,
		OffDays:        offDayNames(e),
		IsActive:       e.IsActive,
	}
}
