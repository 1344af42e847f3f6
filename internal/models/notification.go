package models

import "time"

type NotificationType string // Тип уведомления

const (
	BidAcceptedNotification          NotificationType = "BID_ACCEPTED"
	BidRejectedNotification          NotificationType = "BID_REJECTED"
	ProjectAssignedNotification      NotificationType = "PROJECT_ASSIGNED"
	ProjectStatusChangedNotification NotificationType = "PROJECT_STATUS_CHANGED"
)

// Notification представляет модель уведомления пользователя.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	ProjectID *string          `json:"projectId,omitempty"`
	BidID     *string          `json:"bidId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
