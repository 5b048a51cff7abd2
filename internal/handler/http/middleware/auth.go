package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token. The token is
// decoded by jwtauth.Verifier before this middleware runs.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, tenant.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, tenant.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, tenant.ErrInvalidToken)
				return
			}
			if tenantID, _ := claims["tenant_id"].(string); tenantID == "" {
				response.HandleError(w, tenant.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// AdminOnly restricts a route to tenant admins.
func AdminOnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, _ := claims["role"].(string)
		if role != string(tenant.RoleAdmin) {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
