package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// notificationService provides the in-app notification feed and fan-out.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	staffRepo        portsrepo.StaffRepositoryFacade
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		staffRepo:        staffRepo,
	}
}

// Ensure notificationService implements the portssvc.NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// NotifyUser writes a single notification row.
func (s *notificationService) NotifyUser(ctx context.Context, userID string, notifType domain.NotificationType, title, message string, metadata map[string]string) error {
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           notifType,
		Title:          title,
		Message:        message,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
	return s.notificationRepo.SaveNotifications(ctx, []domain.Notification{notification})
}

// NotifyAdmins writes one notification row per active admin.
func (s *notificationService) NotifyAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, metadata map[string]string) error {
	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("No active admins to notify", slog.String("type", string(notifType)))
		return nil
	}

	now := time.Now()
	notifications := make([]domain.Notification, len(admins))
	for i, admin := range admins {
		notifications[i] = domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         admin.StaffID,
			Type:           notifType,
			Title:          title,
			Message:        message,
			Metadata:       metadata,
			CreatedAt:      now,
		}
	}
	return s.notificationRepo.SaveNotifications(ctx, notifications)
}

// ListNotifications retrieves a user's notification feed with the unread count.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error) {
	notifications, nextToken, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationResponses(notifications),
		UnreadCount:   unread,
		NextToken:     nextToken,
	}, nil
}

// MarkRead marks one notification read.
func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	return s.notificationRepo.MarkRead(ctx, userID, notificationID, time.Now())
}

// MarkAllRead marks every unread notification of the user read and moves the
// server-side "last viewed" watermark forward.
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	now := time.Now()
	if err := s.notificationRepo.MarkAllRead(ctx, userID, now); err != nil {
		return err
	}
	if err := s.staffRepo.UpdateLastViewedAt(ctx, userID, now); err != nil {
		// The watermark is a convenience; rows are already marked read.
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to advance viewed watermark", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
	return nil
}

// GetViewedState returns the user's server-side "last viewed" watermark.
func (s *notificationService) GetViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dto.ViewedStateResponse{LastViewedAt: staff.LastViewedAt}, nil
}

// TouchViewedState moves the watermark to now.
func (s *notificationService) TouchViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error) {
	now := time.Now()
	if err := s.staffRepo.UpdateLastViewedAt(ctx, userID, now); err != nil {
		return nil, err
	}
	return &dto.ViewedStateResponse{LastViewedAt: &now}, nil
}
