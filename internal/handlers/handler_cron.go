package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/platform/config"
)

// cronHandler serves endpoints invoked by the external scheduler.
type cronHandler struct {
	cfg              *config.Config
	reportingService portssvc.ReportingSvcFacade
}

func newCronHandler(cfg *config.Config, reportingService portssvc.ReportingSvcFacade) *cronHandler {
	return &cronHandler{cfg: cfg, reportingService: reportingService}
}

// registerCronRoutes registers scheduler-invoked routes.
func registerCronRoutes(group *gin.RouterGroup, cfg *config.Config, reportingService portssvc.ReportingSvcFacade) {
	h := newCronHandler(cfg, reportingService)
	group.GET("/daily-report", h.sendDailyReport)
}

// cronSecretFrom extracts the shared secret from the Authorization header or
// the secret query parameter.
func cronSecretFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return token
		}
	}
	return c.Query("secret")
}

// sendDailyReport godoc
// @Summary Build and email the daily activity report
// @Description Builds the per-branch activity report for the given day and queues it for every active admin. Authenticated by a shared secret, not a JWT.
// @Tags cron
// @Produce json
// @Param secret query string false "Shared cron secret (alternative to the Authorization header)"
// @Param date query string false "Report day as YYYY-MM-DD (defaults to today)"
// @Success 200 {object} dto.DailyReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No admin recipients"
// @Router /cron/daily-report [get]
func (h *cronHandler) sendDailyReport(c *gin.Context) {
	secret := cronSecretFrom(c)
	if h.cfg.CronSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.CronSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid cron secret"})
		return
	}

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	report, recipients, err := h.reportingService.SendDailyReport(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "failed to send daily report")
		return
	}
	c.JSON(http.StatusOK, dto.DailyReportResponse{
		Date:       report.Date,
		Branches:   report.Branches,
		Recipients: recipients,
	})
}
