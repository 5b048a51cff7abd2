package tenant

import (
	"context"
)

// TenantService defines business logic for tenant signup, authentication and
// workspace settings.
type TenantService interface {
	// Signup provisions a tenant, its admin user and the default holiday set,
	// then sends a welcome email in the background
	Signup(ctx context.Context, req SignupRequest) (TenantResponse, error)

	// Login verifies credentials and issues an access token plus a refresh
	// token for the cookie
	Login(ctx context.Context, req LoginRequest) (TokenResponse, string, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, string, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// GetSettings returns the tenant's workspace settings
	GetSettings(ctx context.Context, tenantID string) (TenantResponse, error)

	// UpdateSettings applies partial settings changes
	UpdateSettings(ctx context.Context, tenantID string, req UpdateSettingsRequest) (TenantResponse, error)

	// GetCredits returns the remaining credit balance
	GetCredits(ctx context.Context, tenantID string) (CreditsResponse, error)
}
