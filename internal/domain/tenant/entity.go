package tenant

import "time"

type Tenant struct {
	ID                   string
	Name                 string
	Subdomain            string
	Credits              int
	MaxEmployees         int
	AutoCalculatePayroll bool
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
