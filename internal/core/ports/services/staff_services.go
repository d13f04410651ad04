package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// StaffSvcFacade exposes staff management and credential verification.
type StaffSvcFacade interface {
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest, creatorStaffID string) (*domain.Staff, error)
	GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)
	ListStaffByBranch(ctx context.Context, branch string) ([]domain.Staff, error)
	ListAdmins(ctx context.Context) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, editorStaffID string) (*domain.Staff, error)
	DeactivateStaff(ctx context.Context, staffID string, editorStaffID string) error

	// VerifyCredentials checks email+password and returns the staff member on success.
	VerifyCredentials(ctx context.Context, email string, password string) (*domain.Staff, error)

	// UpsertFromGoogle finds or creates a staff member from a verified Google profile.
	UpsertFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Staff, error)

	// StoreRefreshToken persists the hashed refresh token for a staff member.
	StoreRefreshToken(ctx context.Context, staffID string, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken removes the stored refresh token on logout.
	ClearRefreshToken(ctx context.Context, staffID string) error
}

// TokenSvcFacade handles JWT access tokens and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error)
	ValidateAndParseRefreshToken(ctx context.Context, staffID string, refreshToken string) (*domain.Staff, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code exchange and ID token validation.
type GoogleOAuthHandlerSvcFacade interface {
	GetAuthCodeURL(state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
