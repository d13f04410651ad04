package domain

import "time"

// NotificationType tags a notification row for client-side routing/display.
type NotificationType string

const (
	NotifyTaskAssigned     NotificationType = "TASK_ASSIGNED"
	NotifyTaskCompleted    NotificationType = "TASK_COMPLETED"
	NotifyCashSubmitted    NotificationType = "CASH_SUBMITTED"
	NotifyCashApproved     NotificationType = "CASH_APPROVED"
	NotifyCashRejected     NotificationType = "CASH_REJECTED"
	NotifyLowBalance       NotificationType = "LOW_BALANCE"
	NotifyRequestSubmitted NotificationType = "REQUEST_SUBMITTED"
	NotifyRequestReviewed  NotificationType = "REQUEST_REVIEWED"
)

// Notification is a single in-app notification row for one recipient.
type Notification struct {
	NotificationID string            `json:"notificationID"` // Primary Key (UUID)
	UserID         string            `json:"userID"`         // FK -> Staff.StaffID
	Type           NotificationType  `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	ReadAt         *time.Time        `json:"readAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
