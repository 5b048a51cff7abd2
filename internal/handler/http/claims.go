package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// tenantIDFromRequest reads the tenant from the verified access token. Every
// authenticated handler passes this value explicitly to its service so no
// query can run without a tenant scope.
func tenantIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return "", fmt.Errorf("tenant_id claim is missing or invalid")
	}

	return tenantID, nil
}
