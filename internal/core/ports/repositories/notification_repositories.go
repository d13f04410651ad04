package repositories

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence operations for notification rows.
type NotificationRepositoryFacade interface {
	// SaveNotifications inserts notification rows in one batch.
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error

	// ListNotificationsByUser retrieves a paginated list of notifications for a user,
	// newest first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error)

	// CountUnreadByUser counts notifications of a user without a read timestamp.
	CountUnreadByUser(ctx context.Context, userID string) (int, error)

	// MarkRead sets the read timestamp on a single notification owned by the user.
	MarkRead(ctx context.Context, userID string, notificationID string, readAt time.Time) error

	// MarkAllRead sets the read timestamp on every unread notification of the user.
	MarkAllRead(ctx context.Context, userID string, readAt time.Time) error
}
