package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeEmployeeRepo is an in-memory EmployeeRepository that records the last
// update request so tests can inspect exactly what the service writes.
type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees  map[string]employee.Employee
	lastUpdate *employee.UpdateEmployeeRequest
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = fmt.Sprintf("emp-%d", len(f.employees)+1)
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, tenantID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) error {
	r := req
	f.lastUpdate = &r

	e := f.employees[req.ID]
	if req.BasicSalary != nil {
		e.BasicSalary = *req.BasicSalary
	}
	if req.ShiftStartTime != nil {
		e.ShiftStartTime = *req.ShiftStartTime
	}
	if req.ShiftEndTime != nil {
		e.ShiftEndTime = *req.ShiftEndTime
	}
	if req.OTRatePerHour != nil {
		e.OTRatePerHour = req.OTRatePerHour
	}
	f.employees[req.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) CountActive(ctx context.Context, tenantID string) (int64, error) {
	return int64(len(f.employees)), nil
}

type fakeTenantRepo struct {
	tenant.TenantRepository
}

func (f *fakeTenantRepo) GetTenantByID(ctx context.Context, id string) (tenant.Tenant, error) {
	return tenant.Tenant{ID: id, MaxEmployees: 50, IsActive: true}, nil
}

func seedEmployee(repo *fakeEmployeeRepo, otRate *decimal.Decimal) employee.Employee {
	e := employee.Employee{
		ID:             "emp-1",
		TenantID:       "tenant-1",
		EmployeeCode:   "E001",
		FirstName:      "Asha",
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		BasicSalary:    dec("30000"),
		TDSPercentage:  dec("5"),
		OTRatePerHour:  otRate,
		OffSunday:      true,
		IsActive:       true,
	}
	repo.employees[e.ID] = e
	return e
}

func TestUpdateEmployee_StoredOTRateSticks(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	stored := dec("150")
	seedEmployee(repo, &stored)
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	newSalary := dec("40000")
	resp, err := svc.UpdateEmployee(context.Background(), "tenant-1", employee.UpdateEmployeeRequest{
		ID:          "emp-1",
		BasicSalary: &newSalary,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastUpdate)
	assert.Nil(t, repo.lastUpdate.OTRatePerHour, "salary edit must not touch an already-set OT rate")
	require.NotNil(t, resp.OTRatePerHour)
	assert.True(t, resp.OTRatePerHour.Equal(dec("150")))
}

func TestUpdateEmployee_DerivesOTRateWhenBlank(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	seedEmployee(repo, nil)
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	newSalary := dec("40000")
	_, err := svc.UpdateEmployee(context.Background(), "tenant-1", employee.UpdateEmployeeRequest{
		ID:          "emp-1",
		BasicSalary: &newSalary,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastUpdate)
	require.NotNil(t, repo.lastUpdate.OTRatePerHour)
	// 40000 / (8h * 30.4 days), rounded to 2 places.
	assert.True(t, repo.lastUpdate.OTRatePerHour.Equal(dec("164.47")),
		"got %s", repo.lastUpdate.OTRatePerHour)
}

func TestUpdateEmployee_ExplicitOTRateWins(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	stored := dec("150")
	seedEmployee(repo, &stored)
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	newRate := dec("200")
	resp, err := svc.UpdateEmployee(context.Background(), "tenant-1", employee.UpdateEmployeeRequest{
		ID:            "emp-1",
		OTRatePerHour: &newRate,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastUpdate.OTRatePerHour)
	assert.True(t, repo.lastUpdate.OTRatePerHour.Equal(dec("200")))
	require.NotNil(t, resp.OTRatePerHour)
	assert.True(t, resp.OTRatePerHour.Equal(dec("200")))
}

func TestCreateEmployee_DerivesOTRateWhenAbsent(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	resp, err := svc.CreateEmployee(context.Background(), "tenant-1", employee.CreateEmployeeRequest{
		EmployeeCode:   "E010",
		FirstName:      "Bilal",
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		BasicSalary:    dec("30000"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OTRatePerHour)
	assert.True(t, resp.OTRatePerHour.Equal(dec("123.36")), "got %s", resp.OTRatePerHour)
}

func TestCreateEmployee_OffDays(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	base := employee.CreateEmployeeRequest{
		FirstName:      "Chen",
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		BasicSalary:    dec("30000"),
	}

	t.Run("defaults to sunday", func(t *testing.T) {
		req := base
		req.EmployeeCode = "E020"
		resp, err := svc.CreateEmployee(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		assert.Equal(t, []string{"sunday"}, resp.OffDays)
	})

	t.Run("accepts mixed-case names", func(t *testing.T) {
		req := base
		req.EmployeeCode = "E021"
		req.OffDays = []string{"Monday", "FRIDAY"}
		resp, err := svc.CreateEmployee(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		assert.Equal(t, []string{"monday", "friday"}, resp.OffDays)
	})
}

func TestCreateEmployee_MobileNumberMustBeNumeric(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, &fakeTenantRepo{})

	mobile := "98x7654321"
	_, err := svc.CreateEmployee(context.Background(), "tenant-1", employee.CreateEmployeeRequest{
		EmployeeCode:   "E030",
		FirstName:      "Devi",
		MobileNumber:   &mobile,
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		BasicSalary:    dec("30000"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "mobile_number")
}
