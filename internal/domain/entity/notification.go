package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types raised on business events
const (
	NotificationTypeDonationAccepted    = "donation_request.accepted"
	NotificationTypeDonationRejected    = "donation_request.rejected"
	NotificationTypeDonationRescheduled = "donation_request.rescheduled"
	NotificationTypeBookingStatus       = "booking.status"
	NotificationTypeBloodRequest        = "blood_request.status"
	NotificationTypeGeneral             = "general"
)

// Notification is an in-app message addressed to a single user. Email
// delivery, when configured, is a best-effort side channel on top of this
// record.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Type        string    `gorm:"type:varchar(50);not null" json:"type"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Data        JSON      `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead      bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
