package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestShiftHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"day shift", "09:00", "17:00", "8"},
		{"half hour", "09:00", "17:30", "8.5"},
		{"overnight wraps past midnight", "22:00", "06:00", "8"},
		{"equal times wrap to full day", "09:00", "09:00", "24"},
		{"unparseable start falls back", "nine", "17:00", "8"},
		{"empty times fall back", "", "", "8"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ShiftHours(c.start, c.end)
			assert.True(t, got.Equal(dec(c.want)), "ShiftHours(%q, %q) = %s, want %s", c.start, c.end, got, c.want)
		})
	}
}

func TestDeriveOTRate(t *testing.T) {
	t.Parallel()

	// 30000 / (8 * 30.4) = 123.355... rounded to 123.36
	got := DeriveOTRate(dec("30000"), "09:00", "17:00")
	assert.True(t, got.Equal(dec("123.36")), "got %s", got)

	// Zero salary yields a zero rate.
	got = DeriveOTRate(decimal.Zero, "09:00", "17:00")
	assert.True(t, got.IsZero())
}

func TestResolveOTRate_PrefersStoredRate(t *testing.T) {
	t.Parallel()

	stored := dec("150")
	in := payroll.CalculationInput{
		BasicSalary:    dec("30000"),
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		OTRatePerHour:  &stored,
	}
	assert.True(t, resolveOTRate(in).Equal(dec("150")))

	// A non-positive stored rate is ignored and the rate is derived.
	zero := decimal.Zero
	in.OTRatePerHour = &zero
	assert.True(t, resolveOTRate(in).Round(2).Equal(dec("123.36")))
}

func TestResolveWorkingDays(t *testing.T) {
	t.Parallel()

	t.Run("uploaded override wins", func(t *testing.T) {
		in := payroll.CalculationInput{UploadedWorkingDays: 22, OffSunday: true}
		assert.Equal(t, 22, resolveWorkingDays(in, 2025, 6))
	})

	t.Run("calendar skips off days", func(t *testing.T) {
		// June 2025 has 30 days and 5 Sundays.
		in := payroll.CalculationInput{OffSunday: true}
		assert.Equal(t, 25, resolveWorkingDays(in, 2025, 6))
	})

	t.Run("two off days", func(t *testing.T) {
		// June 2025: 5 Sundays and 4 Saturdays.
		in := payroll.CalculationInput{OffSaturday: true, OffSunday: true}
		assert.Equal(t, 21, resolveWorkingDays(in, 2025, 6))
	})

	t.Run("days before joining are skipped", func(t *testing.T) {
		doj := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		in := payroll.CalculationInput{DateOfJoining: &doj}
		assert.Equal(t, 15, resolveWorkingDays(in, 2025, 6))
	})

	t.Run("zero calendar days falls back to 30", func(t *testing.T) {
		doj := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		in := payroll.CalculationInput{DateOfJoining: &doj}
		assert.Equal(t, 30, resolveWorkingDays(in, 2025, 6))
	})
}

func TestCountEligibleHolidays(t *testing.T) {
	t.Parallel()

	eng := "Engineering"
	sales := "Sales"
	holidays := []attendance.Holiday{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},                    // Monday, tenant-wide
		{Date: time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)},                    // Sunday
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Department: &eng}, // Tuesday, dept-scoped
		{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},                    // outside the month
	}

	t.Run("off day and other months excluded", func(t *testing.T) {
		in := payroll.CalculationInput{OffSunday: true}
		assert.Equal(t, 1, countEligibleHolidays(in, holidays, 2025, 6))
	})

	t.Run("department match includes scoped holiday", func(t *testing.T) {
		in := payroll.CalculationInput{OffSunday: true, Department: &eng}
		assert.Equal(t, 2, countEligibleHolidays(in, holidays, 2025, 6))
	})

	t.Run("department mismatch excludes scoped holiday", func(t *testing.T) {
		in := payroll.CalculationInput{OffSunday: true, Department: &sales}
		assert.Equal(t, 1, countEligibleHolidays(in, holidays, 2025, 6))
	})

	t.Run("holidays before joining excluded", func(t *testing.T) {
		doj := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
		in := payroll.CalculationInput{OffSunday: true, DateOfJoining: &doj}
		assert.Equal(t, 0, countEligibleHolidays(in, holidays, 2025, 6))
	})
}

func TestComputeSalary(t *testing.T) {
	t.Parallel()

	// basic 30000, 8h shift, 22 working days, 20 present, 2 OT hours, 5% TDS
	in := payroll.CalculationInput{
		EmployeeID:          "emp-1",
		EmployeeName:        "Asha Rao",
		EmployeeCode:        "E001",
		ShiftStartTime:      "09:00",
		ShiftEndTime:        "17:00",
		BasicSalary:         dec("30000"),
		TDSPercentage:       dec("5"),
		UploadedWorkingDays: 22,
		PresentDays:         20,
		OTHours:             dec("2"),
	}

	got := ComputeSalary(in, 2025, 6, nil)

	assert.Equal(t, 22, got.WorkingDays)
	assert.Equal(t, 20, got.PresentDays)
	assert.True(t, got.SalaryForPresentDays.Equal(dec("27272.73")), "present pay %s", got.SalaryForPresentDays)
	assert.True(t, got.OTCharges.Equal(dec("246.71")), "ot charges %s", got.OTCharges)
	assert.True(t, got.GrossSalary.Equal(dec("27519.44")), "gross %s", got.GrossSalary)
	assert.True(t, got.TDSAmount.Equal(dec("1375.97")), "tds %s", got.TDSAmount)
	assert.True(t, got.AdvanceDeduction.IsZero())
	assert.True(t, got.NetPayable.Equal(dec("26143.47")), "net %s", got.NetPayable)
}

func TestComputeSalary_LateAndAdvance(t *testing.T) {
	t.Parallel()

	in := payroll.CalculationInput{
		ShiftStartTime:      "09:00",
		ShiftEndTime:        "17:00",
		BasicSalary:         dec("30000"),
		TDSPercentage:       dec("5"),
		UploadedWorkingDays: 22,
		PresentDays:         20,
		OTHours:             dec("2"),
		LateMinutes:         30,
		AdvanceForMonth:     dec("1000"),
		AdvanceTotal:        dec("4500"),
	}

	got := ComputeSalary(in, 2025, 6, nil)

	// late deduction is 30 minutes at the per-minute OT rate
	assert.True(t, got.LateDeduction.Equal(dec("61.68")), "late deduction %s", got.LateDeduction)
	assert.True(t, got.GrossSalary.Equal(dec("27457.76")), "gross %s", got.GrossSalary)
	assert.True(t, got.TDSAmount.Equal(dec("1372.89")), "tds %s", got.TDSAmount)
	assert.True(t, got.AdvanceDeduction.Equal(dec("1000")), "advance %s", got.AdvanceDeduction)
	assert.True(t, got.NetPayable.Equal(dec("25084.87")), "net %s", got.NetPayable)
}

func TestComputeSalary_HolidaysAddPresentDays(t *testing.T) {
	t.Parallel()

	in := payroll.CalculationInput{
		BasicSalary:         dec("22000"),
		TDSPercentage:       decimal.Zero,
		UploadedWorkingDays: 22,
		PresentDays:         21,
	}
	holidays := []attendance.Holiday{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	got := ComputeSalary(in, 2025, 6, holidays)

	assert.Equal(t, 22, got.PresentDays)
	assert.True(t, got.GrossSalary.Equal(dec("22000")), "gross %s", got.GrossSalary)
}

func TestComputeSalary_NetNeverNegative(t *testing.T) {
	t.Parallel()

	in := payroll.CalculationInput{
		BasicSalary:         dec("10000"),
		TDSPercentage:       decimal.Zero,
		UploadedWorkingDays: 30,
		PresentDays:         1,
		LateMinutes:         6000,
	}

	got := ComputeSalary(in, 2025, 6, nil)
	assert.False(t, got.NetPayable.IsNegative())
	assert.True(t, got.NetPayable.IsZero())
}

func TestCapAdvanceDeduction(t *testing.T) {
	t.Parallel()

	t.Run("for-month balance preferred over total", func(t *testing.T) {
		in := payroll.CalculationInput{AdvanceForMonth: dec("500"), AdvanceTotal: dec("2000")}
		got := capAdvanceDeduction(in, dec("10000"))
		assert.True(t, got.Equal(dec("500")))
	})

	t.Run("falls back to total when no for-month balance", func(t *testing.T) {
		in := payroll.CalculationInput{AdvanceTotal: dec("2000")}
		got := capAdvanceDeduction(in, dec("10000"))
		assert.True(t, got.Equal(dec("2000")))
	})

	t.Run("capped at post-TDS salary", func(t *testing.T) {
		in := payroll.CalculationInput{AdvanceTotal: dec("2000")}
		got := capAdvanceDeduction(in, dec("1500"))
		assert.True(t, got.Equal(dec("1500")))
	})

	t.Run("negative salary caps at zero", func(t *testing.T) {
		in := payroll.CalculationInput{AdvanceTotal: dec("2000")}
		got := capAdvanceDeduction(in, dec("-100"))
		assert.True(t, got.IsZero())
	})

	t.Run("no outstanding balance", func(t *testing.T) {
		got := capAdvanceDeduction(payroll.CalculationInput{}, dec("10000"))
		assert.True(t, got.IsZero())
	})
}
