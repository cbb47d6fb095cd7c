package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType defines the type of notification
type NotificationType string

const (
	NotificationTypeStatusTransition NotificationType = "status_transition"
	NotificationTypeInsuranceExpiry  NotificationType = "insurance_expiry"
	NotificationTypeSystemAlert      NotificationType = "system_alert"
)

// NotificationStatus defines the status of a notification
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusRead    NotificationStatus = "read"
)

// Notification is one persisted in-app notification, created when an
// inspection crosses a status transition (submitter ↔ checker handoff) or an
// insurance policy nears expiry.
type Notification struct {
	ID   uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type NotificationType `gorm:"size:50;not null;index" json:"type"`

	RecipientID string `gorm:"size:255;not null;index" json:"recipientId"`

	Title string `gorm:"size:255;not null" json:"title"`
	Body  string `gorm:"type:text" json:"body,omitempty"`

	// Inspection the notification is about
	InspectionCode string `gorm:"size:50;index" json:"inspectionCode,omitempty"`
	Action         string `gorm:"size:50" json:"action,omitempty"`

	Status NotificationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReadAt *time.Time         `json:"readAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
