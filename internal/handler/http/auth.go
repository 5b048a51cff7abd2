package http

import (
	"encoding/json"
	"net/http"

	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/handler/http/response"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	tenantService tenant.TenantService
	jwtService    jwt.Service
}

func NewAuthHandler(tenantService tenant.TenantService, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		tenantService: tenantService,
		jwtService:    jwtService,
	}
}

// Signup implements AuthHandler
func (h *authHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var req tenant.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.tenantService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tenant created successfully", result)
}

// Login implements AuthHandler
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req tenant.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	tokens, refreshToken, err := h.tenantService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken))
	response.Success(w, tokens)
}

// RefreshToken implements AuthHandler
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, tenant.ErrInvalidToken)
		return
	}

	tokens, refreshToken, err := h.tenantService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken))
	response.Success(w, tokens)
}

// Logout implements AuthHandler
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		if err := h.tenantService.Logout(r.Context(), cookie.Value); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	expired := h.jwtService.RefreshTokenCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	response.SuccessWithMessage(w, "Logged out", nil)
}
