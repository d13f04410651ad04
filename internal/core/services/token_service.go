package services

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/platform/config"
	"github.com/staffdesk/ops_portal_app/internal/utils"
)

// tokenService issues JWT access tokens and opaque refresh tokens.
type tokenService struct {
	cfg       *config.Config
	staffRepo portsrepo.StaffRepositoryFacade
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, staffRepo portsrepo.StaffRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, staffRepo: staffRepo}
}

// Ensure tokenService implements the portssvc.TokenSvcFacade interface
var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT for the staff member.
func (s *tokenService) GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(staff.StaffID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate access token", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates an opaque refresh token and stores its hash.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error) {
	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate refresh token", err)
	}

	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	tokenHash := utils.HashRefreshToken(rawToken)
	if err := s.staffRepo.UpdateRefreshToken(ctx, staff.StaffID, tokenHash, &expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return rawToken, expiresAt, nil
}

// ValidateAndParseRefreshToken checks the presented refresh token against the
// stored hash and expiry, returning the staff member on success.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, staffID string, refreshToken string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !staff.IsActive || staff.RefreshTokenHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if staff.RefreshTokenExpiryTime == nil || time.Now().After(*staff.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, staff.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return staff, nil
}
