package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
	"github.com/staffdesk/ops_portal_app/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	staffService portssvc.StaffSvcFacade
	tokenService portssvc.TokenSvcFacade
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		staffService: services.Staff,
		tokenService: services.TokenService,
		oauthService: services.GoogleOAuthHandler,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, limitMiddleware gin.HandlerFunc) {
	h := NewAuthHandler(cfg, services)

	auth := r.Group("/auth", limitMiddleware)
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
	}
}

// issueTokens generates the access/refresh pair, sets the refresh cookie and
// writes the auth response. The cookie value carries the staff ID so the
// refresh endpoint can look up the stored hash without a session.
func (h *AuthHandler) issueTokens(c *gin.Context, staff *domain.Staff) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, staff)
	if err != nil {
		respondError(c, err, "failed to generate access token")
		return
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, staff)
	if err != nil {
		respondError(c, err, "failed to generate refresh token")
		return
	}

	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		staff.StaffID+":"+refreshToken,
		maxAge,
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)

	logger.Info("Issued token pair",
		slog.String("staff_id", staff.StaffID),
		slog.Time("refresh_expires_at", refreshExpiresAt),
	)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		Staff:                dto.ToStaffResponse(staff),
	})
}

// refreshCookieParts splits the refresh cookie into staff ID and raw token.
func (h *AuthHandler) refreshCookieParts(c *gin.Context) (staffID, token string, ok bool) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		return "", "", false
	}
	staffID, token, found := strings.Cut(cookie, ":")
	if !found || staffID == "" || token == "" {
		return "", "", false
	}
	return staffID, token, true
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Login godoc
// @Summary Staff login
// @Description Authenticates a staff member and returns a JWT access token plus a refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	staff, err := h.staffService.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	h.issueTokens(c, staff)
}

// Refresh godoc
// @Summary Rotate the token pair
// @Description Validates the refresh cookie and issues a fresh access token and refresh cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	staffID, token, ok := h.refreshCookieParts(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing refresh token"})
		return
	}

	staff, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), staffID, token)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "failed to refresh session")
		return
	}
	h.issueTokens(c, staff)
}

// Logout godoc
// @Summary Log out
// @Description Clears the refresh cookie and invalidates the stored refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if staffID, _, ok := h.refreshCookieParts(c); ok {
		if err := h.staffService.ClearRefreshToken(c.Request.Context(), staffID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to clear refresh token on logout", slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an app token pair
// @Description Exchanges the code with Google, validates the ID token, upserts the staff member and signs them in.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	oauth2Token, err := h.oauthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		msg := "Failed to exchange authorization code"
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			msg = "Invalid or expired authorization code"
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	staff, err := h.staffService.UpsertFromGoogle(ctx, info)
	if err != nil {
		respondError(c, err, "failed to sign in with Google")
		return
	}
	h.issueTokens(c, staff)
}
