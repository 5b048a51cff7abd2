package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

// fakeTx satisfies pgx.Tx for exercising the transactional service paths
// without a database. The repositories under test keep their own state and
// never touch the tx they receive.
type fakeTx struct{}

func (fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error          { return nil }
func (fakeTx) Rollback(ctx context.Context) error        { return nil }
func (fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeTxBeginner struct{}

func (fakeTxBeginner) BeginTx(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

// fakePayrollRepo is an in-memory PayrollRepository keyed by employee ID
// for a single period. Unimplemented methods panic via the embedded nil
// interface, which keeps the tests honest about which paths they exercise.
type fakePayrollRepo struct {
	payroll.PayrollRepository

	period   payroll.Period
	salaries map[string]payroll.CalculatedSalary
	inputs   []payroll.CalculationInput

	periodLookups int
	upsertCalls   int
	deleteCalls   int
}

func newFakePayrollRepo(period payroll.Period) *fakePayrollRepo {
	return &fakePayrollRepo{
		period:   period,
		salaries: make(map[string]payroll.CalculatedSalary),
	}
}

func (f *fakePayrollRepo) GetBatchInputs(ctx context.Context, tenantID string, year, month int) ([]payroll.CalculationInput, error) {
	return f.inputs, nil
}

func (f *fakePayrollRepo) GetOrCreatePeriod(ctx context.Context, tenantID string, year, month int, source payroll.DataSource) (payroll.Period, error) {
	f.periodLookups++
	return f.period, nil
}

func (f *fakePayrollRepo) GetSalariesByPeriod(ctx context.Context, periodID, tenantID string) ([]payroll.CalculatedSalary, error) {
	out := make([]payroll.CalculatedSalary, 0, len(f.salaries))
	for _, s := range f.salaries {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakePayrollRepo) UpsertSalaries(ctx context.Context, tenantID string, salaries []payroll.CalculatedSalary) (int, error) {
	f.upsertCalls++
	for _, s := range salaries {
		if existing, ok := f.salaries[s.EmployeeID]; ok {
			s.ID = existing.ID
		} else {
			s.ID = fmt.Sprintf("sal-%d", len(f.salaries)+1)
		}
		f.salaries[s.EmployeeID] = s
	}
	return len(salaries), nil
}

func (f *fakePayrollRepo) DeleteSalariesNotIn(ctx context.Context, periodID, tenantID string, keepEmployeeIDs []string) (int, error) {
	f.deleteCalls++
	keep := make(map[string]bool, len(keepEmployeeIDs))
	for _, id := range keepEmployeeIDs {
		keep[id] = true
	}
	deleted := 0
	for id, s := range f.salaries {
		if keep[id] || s.IsPaid {
			continue
		}
		delete(f.salaries, id)
		deleted++
	}
	return deleted, nil
}

func (f *fakePayrollRepo) GetOverview(ctx context.Context, tenantID string) ([]payroll.PeriodOverview, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string, tenantID string) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := f.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	attendance.HolidayRepository
}

func (f *fakeHolidayRepo) GetByRange(ctx context.Context, tenantID string, from, to time.Time) ([]attendance.Holiday, error) {
	return nil, nil
}

func newPayrollTestService(repo *fakePayrollRepo, employees map[string]employee.Employee) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		db:           fakeTxBeginner{},
		payrollRepo:  repo,
		employeeRepo: &fakeEmployeeRepo{employees: employees},
		holidayRepo:  &fakeHolidayRepo{},
		batch:        NewBatchInputStrategy(repo),
		tasks:        task.NewRunner(),
	}
}

func testInput(employeeID string) payroll.CalculationInput {
	return payroll.CalculationInput{
		EmployeeID:          employeeID,
		EmployeeName:        "Asha Verma",
		EmployeeCode:        "EMP-" + employeeID,
		ShiftStartTime:      "09:00",
		ShiftEndTime:        "17:00",
		BasicSalary:         decimal.NewFromInt(30000),
		TDSPercentage:       decimal.NewFromInt(5),
		OffSunday:           true,
		PresentDays:         25,
		UploadedWorkingDays: 25,
	}
}

func TestCalculate_TentativeModeDoesNotPersist(t *testing.T) {
	t.Parallel()

	repo := newFakePayrollRepo(payroll.Period{ID: "per-1"})
	repo.inputs = []payroll.CalculationInput{testInput("emp-1"), testInput("emp-2")}
	svc := newPayrollTestService(repo, nil)

	req := payroll.CalculateRequest{Year: 2025, Month: "JUN"}
	first, err := svc.Calculate(context.Background(), "tenant-1", req)
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), "tenant-1", req)
	require.NoError(t, err)

	assert.Equal(t, payroll.ModeTentative, first.Mode)
	assert.False(t, first.Persisted)
	assert.False(t, first.CacheInvalidation)
	assert.Equal(t, first.Results, second.Results)

	assert.Zero(t, repo.periodLookups, "tentative mode must not touch periods")
	assert.Zero(t, repo.upsertCalls, "tentative mode must not write salaries")
	assert.Zero(t, repo.deleteCalls)
	assert.Empty(t, repo.salaries)
}

func TestCalculate_InvalidModeRejected(t *testing.T) {
	t.Parallel()

	repo := newFakePayrollRepo(payroll.Period{ID: "per-1"})
	svc := newPayrollTestService(repo, nil)

	_, err := svc.Calculate(context.Background(), "tenant-1", payroll.CalculateRequest{
		Year: 2025, Month: "JUN", Mode: "estimate",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "mode")
}

func TestCalculate_LockedPeriodRejected(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{payroll.ModeCalculate, payroll.ModeSave} {
		t.Run(mode, func(t *testing.T) {
			repo := newFakePayrollRepo(payroll.Period{ID: "per-1", IsLocked: true})
			repo.inputs = []payroll.CalculationInput{testInput("emp-1")}
			svc := newPayrollTestService(repo, nil)

			_, err := svc.Calculate(context.Background(), "tenant-1", payroll.CalculateRequest{
				Year: 2025, Month: "JUN", Mode: mode, ForceRecalculate: true,
			})

			require.ErrorIs(t, err, payroll.ErrPeriodLocked)
			assert.Zero(t, repo.upsertCalls)
			assert.Zero(t, repo.deleteCalls)
		})
	}
}

func TestSaveDirect_LockedPeriodRejected(t *testing.T) {
	t.Parallel()

	repo := newFakePayrollRepo(payroll.Period{ID: "per-1", IsLocked: true})
	svc := newPayrollTestService(repo, nil)

	_, err := svc.SaveDirect(context.Background(), "tenant-1", payroll.SaveDirectRequest{
		Year:  2025,
		Month: "JUN",
		PayrollEntries: []payroll.SaveDirectEntry{
			{EmployeeID: "emp-1", NetPayable: decimal.NewFromInt(1000)},
		},
	})

	require.ErrorIs(t, err, payroll.ErrPeriodLocked)
	assert.Zero(t, repo.upsertCalls)
	assert.Zero(t, repo.deleteCalls)
}

func TestSaveDirect_ResaveReconcilesRows(t *testing.T) {
	repo := newFakePayrollRepo(payroll.Period{ID: "per-1"})
	employees := map[string]employee.Employee{
		"emp-a": {ID: "emp-a", EmployeeCode: "A1", FirstName: "Asha"},
		"emp-b": {ID: "emp-b", EmployeeCode: "B1", FirstName: "Bilal"},
	}
	svc := newPayrollTestService(repo, employees)

	entry := func(id string, net int64) payroll.SaveDirectEntry {
		return payroll.SaveDirectEntry{
			EmployeeID:  id,
			WorkingDays: 25,
			PresentDays: 25,
			BasicSalary: decimal.NewFromInt(30000),
			GrossSalary: decimal.NewFromInt(net),
			NetPayable:  decimal.NewFromInt(net),
		}
	}

	first, err := svc.SaveDirect(context.Background(), "tenant-1", payroll.SaveDirectRequest{
		Year:           2025,
		Month:          "JUN",
		PayrollEntries: []payroll.SaveDirectEntry{entry("emp-a", 28000), entry("emp-b", 31000)},
	})
	require.NoError(t, err)
	svc.tasks.Wait()

	assert.Equal(t, 2, first.SavedEntries)
	assert.Zero(t, first.DeletedRows)
	require.Len(t, repo.salaries, 2)
	savedID := repo.salaries["emp-a"].ID

	second, err := svc.SaveDirect(context.Background(), "tenant-1", payroll.SaveDirectRequest{
		Year:           2025,
		Month:          "JUN",
		PayrollEntries: []payroll.SaveDirectEntry{entry("emp-a", 29500)},
	})
	require.NoError(t, err)
	svc.tasks.Wait()

	assert.Equal(t, 1, second.SavedEntries)
	assert.Equal(t, 1, second.DeletedRows)

	require.Len(t, repo.salaries, 1, "re-saving a subset must prune rows outside it")
	_, stillThere := repo.salaries["emp-b"]
	assert.False(t, stillThere, "employee missing from the re-save must be removed")

	row := repo.salaries["emp-a"]
	assert.Equal(t, savedID, row.ID, "re-saved employee must update in place")
	assert.True(t, row.NetPayable.Equal(decimal.NewFromInt(29500)))
}

func TestSaveDirect_UnknownEmployeeRejected(t *testing.T) {
	t.Parallel()

	repo := newFakePayrollRepo(payroll.Period{ID: "per-1"})
	svc := newPayrollTestService(repo, map[string]employee.Employee{})

	_, err := svc.SaveDirect(context.Background(), "tenant-1", payroll.SaveDirectRequest{
		Year:  2025,
		Month: "JUN",
		PayrollEntries: []payroll.SaveDirectEntry{
			{EmployeeID: "emp-ghost", NetPayable: decimal.NewFromInt(1000)},
		},
	})

	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Zero(t, repo.upsertCalls)
}
