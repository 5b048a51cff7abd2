package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
)

const (
	// fallbackShiftHours is assumed when an employee has unparseable or
	// missing shift times.
	fallbackShiftHours = 8.0

	// fallbackWorkingDays is used when neither an uploaded override nor the
	// calendar yields a positive working-day count.
	fallbackWorkingDays = 30

	// avgDaysPerMonth converts a monthly basic salary into an hourly rate.
	avgDaysPerMonth = 30.4
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hundred        = decimal.NewFromInt(100)
)

// ShiftHours returns the shift length in hours. Shifts that end at or before
// their start wrap past midnight.
func ShiftHours(startTime, endTime string) decimal.Decimal {
	start, err1 := time.Parse("15:04", startTime)
	end, err2 := time.Parse("15:04", endTime)
	if err1 != nil || err2 != nil {
		return decimal.NewFromFloat(fallbackShiftHours)
	}

	diff := end.Sub(start)
	if diff <= 0 {
		diff += 24 * time.Hour
	}
	return decimal.NewFromFloat(diff.Hours())
}

// DeriveOTRate computes the hourly overtime rate from the basic salary and
// the shift length, rounded for storage: basic / (shift_hours * 30.4).
func DeriveOTRate(basicSalary decimal.Decimal, startTime, endTime string) decimal.Decimal {
	return deriveOTRate(basicSalary, startTime, endTime).Round(2)
}

func deriveOTRate(basicSalary decimal.Decimal, startTime, endTime string) decimal.Decimal {
	hoursPerMonth := ShiftHours(startTime, endTime).Mul(decimal.NewFromFloat(avgDaysPerMonth))
	if hoursPerMonth.IsZero() {
		return decimal.Zero
	}
	return basicSalary.Div(hoursPerMonth)
}

// resolveOTRate prefers the employee's stored rate. Otherwise it derives one
// at full precision; only the line items built from it are rounded.
func resolveOTRate(in payroll.CalculationInput) decimal.Decimal {
	if in.OTRatePerHour != nil && in.OTRatePerHour.IsPositive() {
		return *in.OTRatePerHour
	}
	return deriveOTRate(in.BasicSalary, in.ShiftStartTime, in.ShiftEndTime)
}

// resolveWorkingDays picks the working-day count for one employee. An
// uploaded override wins verbatim. Otherwise the calendar is walked, skipping
// days before the joining date and the employee's weekly off days. A zero
// result falls back to 30 so division stays safe.
func resolveWorkingDays(in payroll.CalculationInput, year, month int) int {
	if in.UploadedWorkingDays > 0 {
		return in.UploadedWorkingDays
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	days := 0
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		if in.DateOfJoining != nil && d.Before(*in.DateOfJoining) {
			continue
		}
		if in.IsOffDay(d.Weekday()) {
			continue
		}
		days++
	}

	if days == 0 {
		return fallbackWorkingDays
	}
	return days
}

// countEligibleHolidays counts declared holidays the employee is paid for:
// inside the month, on a working weekday, on or after the joining date, and
// either tenant-wide or matching the employee's department.
func countEligibleHolidays(in payroll.CalculationInput, holidays []attendance.Holiday, year, month int) int {
	count := 0
	for _, h := range holidays {
		if h.Date.Year() != year || int(h.Date.Month()) != month {
			continue
		}
		if in.IsOffDay(h.Date.Weekday()) {
			continue
		}
		if in.DateOfJoining != nil && h.Date.Before(*in.DateOfJoining) {
			continue
		}
		if h.Department != nil {
			if in.Department == nil || *in.Department != *h.Department {
				continue
			}
		}
		count++
	}
	return count
}

// ComputeSalary runs the full salary calculation for one employee. All
// monetary outputs are rounded to two places; the net payable never goes
// negative.
func ComputeSalary(in payroll.CalculationInput, year, month int, holidays []attendance.Holiday) payroll.CalculatedSalary {
	otRate := resolveOTRate(in)
	workingDays := resolveWorkingDays(in, year, month)
	presentDays := in.PresentDays + countEligibleHolidays(in, holidays, year, month)

	perDay := in.BasicSalary.Div(decimal.NewFromInt(int64(workingDays)))
	salaryForPresent := perDay.Mul(decimal.NewFromInt(int64(presentDays))).Round(2)

	otCharges := otRate.Mul(in.OTHours).Round(2)
	lateDeduction := decimal.NewFromInt(int64(in.LateMinutes)).Mul(otRate.Div(minutesPerHour)).Round(2)

	gross := salaryForPresent.Add(otCharges).Sub(lateDeduction).Round(2)
	tds := gross.Mul(in.TDSPercentage).Div(hundred).Round(2)
	afterTDS := gross.Sub(tds)

	advanceDeduction := capAdvanceDeduction(in, afterTDS)

	net := afterTDS.Sub(advanceDeduction).Round(2)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.CalculatedSalary{
		EmployeeID:           in.EmployeeID,
		EmployeeName:         in.EmployeeName,
		EmployeeCode:         in.EmployeeCode,
		WorkingDays:          workingDays,
		PresentDays:          presentDays,
		OTHours:              in.OTHours,
		LateMinutes:          in.LateMinutes,
		BasicSalary:          in.BasicSalary,
		SalaryForPresentDays: salaryForPresent,
		OTCharges:            otCharges,
		LateDeduction:        lateDeduction,
		GrossSalary:          gross,
		TDSAmount:            tds,
		AdvanceDeduction:     advanceDeduction,
		NetPayable:           net,
	}
}

// capAdvanceDeduction picks the amount to recover this month: the balance
// tagged for the period when one exists, the full outstanding total
// otherwise, never more than the post-TDS salary.
func capAdvanceDeduction(in payroll.CalculationInput, afterTDS decimal.Decimal) decimal.Decimal {
	requested := in.AdvanceForMonth
	if !requested.IsPositive() {
		requested = in.AdvanceTotal
	}
	if !requested.IsPositive() {
		return decimal.Zero
	}

	available := afterTDS
	if available.IsNegative() {
		available = decimal.Zero
	}
	if requested.GreaterThan(available) {
		return available.Round(2)
	}
	return requested.Round(2)
}
