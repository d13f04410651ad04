package dto

import (
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification row.
type NotificationResponse struct {
	NotificationID string            `json:"notificationID"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	ReadAt         *time.Time        `json:"readAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ListNotificationsParams holds query parameters for listing notifications.
type ListNotificationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListNotificationsResponse is the paginated notification listing plus the unread count.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ViewedStateResponse is the server-side "last viewed" watermark for a user.
type ViewedStateResponse struct {
	LastViewedAt *time.Time `json:"lastViewedAt,omitempty"`
}

// ToNotificationResponse converts a domain.Notification to its response DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Metadata:       n.Metadata,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications to response DTOs.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ToNotificationResponse(&n)
	}
	return responses
}
