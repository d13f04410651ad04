package services

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// NotificationSvcFacade exposes the in-app notification feed and fan-out.
type NotificationSvcFacade interface {
	// NotifyUser writes a single notification row. Best-effort for callers: errors
	// are returned but callers in side-effect position log and continue.
	NotifyUser(ctx context.Context, userID string, notifType domain.NotificationType, title, message string, metadata map[string]string) error

	// NotifyAdmins writes one notification row per active admin.
	NotifyAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, metadata map[string]string) error

	// ListNotifications retrieves a user's notification feed with the unread count.
	ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error)

	// MarkRead marks one notification read.
	MarkRead(ctx context.Context, userID string, notificationID string) error

	// MarkAllRead marks every unread notification of the user read and moves the
	// server-side "last viewed" watermark forward.
	MarkAllRead(ctx context.Context, userID string) error

	// GetViewedState returns the user's server-side "last viewed" watermark.
	GetViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error)

	// TouchViewedState moves the watermark to now.
	TouchViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error)
}
