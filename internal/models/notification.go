package models

import "time"

// Notification is the notifications row shape. Metadata is stored as JSONB.
type Notification struct {
	NotificationID string            `json:"notificationID"`
	UserID         string            `json:"userID"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	ReadAt         *time.Time        `json:"readAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
