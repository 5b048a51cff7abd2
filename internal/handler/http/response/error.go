package response

import (
	"errors"
	"net/http"

	"github.com/sniperthink/hrms-backend-go/internal/domain/advance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/employee"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. State conflicts on
// payroll workflow objects (locked periods, paid rows, duplicate periods)
// answer 400 with a descriptive message; uniqueness collisions on master
// data answer 409.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tenant and auth errors
	case errors.Is(err, tenant.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, tenant.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, tenant.ErrTenantInactive):
		Forbidden(w, "Tenant is inactive")
	case errors.Is(err, tenant.ErrNoCreditsLeft):
		Forbidden(w, "Tenant has no credits left")
	case errors.Is(err, tenant.ErrTenantNotFound):
		NotFound(w, "Tenant not found")
	case errors.Is(err, tenant.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, tenant.ErrSubdomainExists):
		Conflict(w, "Subdomain already taken")
	case errors.Is(err, tenant.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeLimitReached):
		BadRequest(w, "Employee limit reached for this tenant", nil)

	// Attendance and holiday errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, attendance.ErrHolidayExists):
		BadRequest(w, "Holiday already exists for this date", nil)

	// Advance ledger errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrCannotChangeEmployee):
		BadRequest(w, "Advance cannot be moved to another employee", nil)
	case errors.Is(err, advance.ErrAdvanceAlreadyDeducted):
		BadRequest(w, "Advance has repayments and cannot be changed or deleted", nil)

	// Payroll errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, "Calculated salary not found")
	case errors.Is(err, payroll.ErrPeriodExists):
		BadRequest(w, "Payroll period already exists for this month", nil)
	case errors.Is(err, payroll.ErrPeriodLocked):
		BadRequest(w, "Payroll period is locked", nil)
	case errors.Is(err, payroll.ErrPeriodHasPaidSalaries):
		BadRequest(w, "Payroll period has paid salaries and cannot be deleted", nil)
	case errors.Is(err, payroll.ErrSalaryAlreadyPaid):
		BadRequest(w, "Salary is already marked paid", nil)
	case errors.Is(err, payroll.ErrInvalidMode):
		BadRequest(w, "Invalid calculation mode", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
