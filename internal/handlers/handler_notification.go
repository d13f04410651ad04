package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// notificationHandler handles HTTP requests for the in-app notification feed.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes registers notification specific routes.
func registerNotificationRoutes(group *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := group.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/read-all", h.markAllRead)
		notifications.POST("/:notificationID/read", h.markRead)
		notifications.GET("/viewed-state", h.getViewedState)
		notifications.POST("/viewed-state", h.touchViewedState)
	}
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListNotificationsResponse
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{notificationID}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("notificationID")); err != nil {
		respondError(c, err, "failed to mark notification read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// markAllRead godoc
// @Summary Mark all the caller's notifications read
// @Description Marks every unread notification read and moves the "last viewed" watermark forward.
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /notifications/read-all [post]
func (h *notificationHandler) markAllRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// getViewedState godoc
// @Summary Get the caller's "last viewed" watermark
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.ViewedStateResponse
// @Router /notifications/viewed-state [get]
func (h *notificationHandler) getViewedState(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := h.notificationService.GetViewedState(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get viewed state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// touchViewedState godoc
// @Summary Move the caller's "last viewed" watermark to now
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.ViewedStateResponse
// @Router /notifications/viewed-state [post]
func (h *notificationHandler) touchViewedState(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := h.notificationService.TouchViewedState(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to update viewed state")
		return
	}
	c.JSON(http.StatusOK, state)
}
