package tenant

import (
	"github.com/sniperthink/hrms-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	TenantName string `json:"tenant_name"`
	Subdomain  string `json:"subdomain"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantName) {
		errs = append(errs, validator.ValidationError{Field: "tenant_name", Message: "is required"})
	}
	if !validator.IsValidSubdomain(r.Subdomain) {
		errs = append(errs, validator.ValidationError{Field: "subdomain", Message: "must be 3-50 lowercase letters, digits or hyphens"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type TenantResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Subdomain            string `json:"subdomain"`
	Credits              int    `json:"credits"`
	MaxEmployees         int    `json:"max_employees"`
	AutoCalculatePayroll bool   `json:"auto_calculate_payroll"`
	IsActive             bool   `json:"is_active"`
}

type UpdateSettingsRequest struct {
	Name                 *string `json:"name,omitempty"`
	AutoCalculatePayroll *bool   `json:"auto_calculate_payroll,omitempty"`
	MaxEmployees         *int    `json:"max_employees,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.MaxEmployees != nil && *r.MaxEmployees < 1 {
		errs = append(errs, validator.ValidationError{Field: "max_employees", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreditsResponse struct {
	Credits  int  `json:"credits"`
	IsActive bool `json:"is_active"`
}
