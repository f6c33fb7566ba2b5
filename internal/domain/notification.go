package domain

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is an output value of core operations; display is up to the caller.
type Notification struct {
	Message   string           `json:"message"`
	Details   string           `json:"details,omitempty"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
}
