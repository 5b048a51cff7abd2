package tenant

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/attendance"
	"github.com/sniperthink/hrms-backend-go/internal/domain/tenant"
	"github.com/sniperthink/hrms-backend-go/internal/fixtures"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/email"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/jwt"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultCredits      = 30
	defaultMaxEmployees = 50
)

type TenantServiceImpl struct {
	db           *database.DB
	tenantRepo   tenant.TenantRepository
	holidayRepo  attendance.HolidayRepository
	jwtService   jwt.Service
	emailService email.EmailService
	tasks        *task.Runner
}

func NewTenantService(
	db *database.DB,
	tenantRepo tenant.TenantRepository,
	holidayRepo attendance.HolidayRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	tasks *task.Runner,
) tenant.TenantService {
	return &TenantServiceImpl{
		db:           db,
		tenantRepo:   tenantRepo,
		holidayRepo:  holidayRepo,
		jwtService:   jwtService,
		emailService: emailService,
		tasks:        tasks,
	}
}

func (s *TenantServiceImpl) Signup(ctx context.Context, req tenant.SignupRequest) (tenant.TenantResponse, error) {
	if err := req.Validate(); err != nil {
		return tenant.TenantResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return tenant.TenantResponse{}, err
	}

	var created tenant.Tenant
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.tenantRepo.CreateTenant(txCtx, tenant.Tenant{
			Name:         req.TenantName,
			Subdomain:    req.Subdomain,
			Credits:      defaultCredits,
			MaxEmployees: defaultMaxEmployees,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		_, err = s.tenantRepo.CreateUser(txCtx, tenant.User{
			TenantID:     created.ID,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         tenant.RoleAdmin,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		for _, h := range fixtures.DefaultHolidays(created.ID, time.Now().Year()) {
			if _, err := s.holidayRepo.Create(txCtx, h); err != nil && err != attendance.ErrHolidayExists {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return tenant.TenantResponse{}, err
	}

	s.tasks.Go("send_welcome_email", func(context.Context) error {
		return s.emailService.SendWelcome(req.Email, created.Name, created.Subdomain)
	})

	return toTenantResponse(created), nil
}

func (s *TenantServiceImpl) Login(ctx context.Context, req tenant.LoginRequest) (tenant.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return tenant.TokenResponse{}, "", err
	}

	user, err := s.tenantRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == tenant.ErrUserNotFound {
			return tenant.TokenResponse{}, "", tenant.ErrInvalidCredentials
		}
		return tenant.TokenResponse{}, "", err
	}
	if !user.IsActive {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidCredentials
	}

	t, err := s.tenantRepo.GetTenantByID(ctx, user.TenantID)
	if err != nil {
		return tenant.TokenResponse{}, "", err
	}
	if !t.IsActive {
		return tenant.TokenResponse{}, "", tenant.ErrTenantInactive
	}

	return s.issueTokens(user)
}

func (s *TenantServiceImpl) Refresh(ctx context.Context, refreshToken string) (tenant.TokenResponse, string, error) {
	if refreshToken == "" || s.jwtService.IsTokenRevoked(refreshToken) {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}

	decoded, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}

	tokenType, _ := decoded.Get("type")
	if tokenType != "refresh" {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}
	userID, ok := decoded.Get("user_id")
	if !ok {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}

	user, err := s.tenantRepo.GetUserByID(ctx, userID.(string))
	if err != nil {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}
	if !user.IsActive {
		return tenant.TokenResponse{}, "", tenant.ErrInvalidToken
	}

	// Rotate: the old refresh token is dead once exchanged.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(user)
}

func (s *TenantServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *TenantServiceImpl) issueTokens(user tenant.User) (tenant.TokenResponse, string, error) {
	access, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.TenantID, user.Role)
	if err != nil {
		return tenant.TokenResponse{}, "", err
	}
	refresh, _, err := s.jwtService.GenerateRefreshToken(user.ID, user.TenantID)
	if err != nil {
		return tenant.TokenResponse{}, "", err
	}

	return tenant.TokenResponse{AccessToken: access, ExpiresAt: expiresAt}, refresh, nil
}

func (s *TenantServiceImpl) GetSettings(ctx context.Context, tenantID string) (tenant.TenantResponse, error) {
	t, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return tenant.TenantResponse{}, err
	}
	return toTenantResponse(t), nil
}

func (s *TenantServiceImpl) UpdateSettings(ctx context.Context, tenantID string, req tenant.UpdateSettingsRequest) (tenant.TenantResponse, error) {
	if err := req.Validate(); err != nil {
		return tenant.TenantResponse{}, err
	}

	if err := s.tenantRepo.UpdateTenantSettings(ctx, tenantID, req); err != nil {
		return tenant.TenantResponse{}, err
	}

	return s.GetSettings(ctx, tenantID)
}

func (s *TenantServiceImpl) GetCredits(ctx context.Context, tenantID string) (tenant.CreditsResponse, error) {
	t, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return tenant.CreditsResponse{}, err
	}
	return tenant.CreditsResponse{Credits: t.Credits, IsActive: t.IsActive}, nil
}

func toTenantResponse(t tenant.Tenant) tenant.TenantResponse {
	return tenant.TenantResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		Subdomain:            t.Subdomain,
		Credits:              t.Credits,
		MaxEmployees:         t.MaxEmployees,
		AutoCalculatePayroll: t.AutoCalculatePayroll,
		IsActive:             t.IsActive,
	}
}
