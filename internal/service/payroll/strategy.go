package payroll

import (
	"context"
	"fmt"

	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
)

// InputStrategy builds the per-employee calculation inputs for one month.
// Both strategies return identical rows; they differ only in how many
// queries they issue.
type InputStrategy interface {
	Name() string
	Inputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error)
}

// batchInputStrategy loads everything in a single aggregate query.
type batchInputStrategy struct {
	payrollRepo payroll.PayrollRepository
}

func NewBatchInputStrategy(payrollRepo payroll.PayrollRepository) InputStrategy {
	return &batchInputStrategy{payrollRepo: payrollRepo}
}

func (s *batchInputStrategy) Name() string { return "batch" }

func (s *batchInputStrategy) Inputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error) {
	return s.payrollRepo.GetBatchInputs(ctx, tenantID, year, month)
}

// rowInputStrategy assembles the same rows from the individual repositories.
// Slower, but independent of the aggregate query; used as the fallback when
// the batch query fails.
type rowInputStrategy struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
}

func NewRowInputStrategy(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	advanceRepo advance.AdvanceRepository,
) InputStrategy {
	return &rowInputStrategy{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		advanceRepo:    advanceRepo,
	}
}

func (s *rowInputStrategy) Name() string { return "row" }

func (s *rowInputStrategy) Inputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error) {
	records, err := s.attendanceRepo.GetByPeriod(ctx, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	employeeIDs := make([]string, 0, len(records))
	for _, rec := range records {
		employeeIDs = append(employeeIDs, rec.EmployeeID)
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, employeeIDs, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	totals, err := s.advanceRepo.GetOutstandingTotals(ctx, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load advance totals: %w", err)
	}

	var inputs []payroll.CalculationInput
	for _, rec := range records {
		e, ok := byID[rec.EmployeeID]
		if !ok || !e.IsActive {
			continue
		}

		in := payroll.CalculationInput{
			EmployeeID:     e.ID,
			EmployeeName:   e.FullName(),
			EmployeeCode:   e.EmployeeCode,
			Department:     e.Department,
			DateOfJoining:  e.DateOfJoining,
			ShiftStartTime: e.ShiftStartTime,
			ShiftEndTime:   e.ShiftEndTime,
			BasicSalary:    e.BasicSalary,
			TDSPercentage:  e.TDSPercentage,
			OTRatePerHour:  e.OTRatePerHour,

			OffMonday:    e.OffMonday,
			OffTuesday:   e.OffTuesday,
			OffWednesday: e.OffWednesday,
			OffThursday:  e.OffThursday,
			OffFriday:    e.OffFriday,
			OffSaturday:  e.OffSaturday,
			OffSunday:    e.OffSunday,

			PresentDays:         rec.PresentDays,
			AbsentDays:          rec.AbsentDays,
			OTHours:             rec.OTHours,
			LateMinutes:         rec.LateMinutes,
			UploadedWorkingDays: rec.WorkingDays,
		}
		if t, ok := totals[e.ID]; ok {
			in.AdvanceForMonth = t.ForMonth
			in.AdvanceTotal = t.Total
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}
