package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendNotificationRequest struct {
	RecipientID uuid.UUID              `json:"recipient_id" validate:"required"`
	Type        string                 `json:"type,omitempty"`
	Title       string                 `json:"title" validate:"required,max=255"`
	Message     string                 `json:"message" validate:"required"`
	Data        map[string]interface{} `json:"data,omitempty"`
	SendEmail   bool                   `json:"send_email,omitempty"`
}

// Response DTOs

type NotificationResponse struct {
	ID          uuid.UUID              `json:"id"`
	RecipientID uuid.UUID              `json:"recipient_id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
	IsRead      bool                   `json:"is_read"`
	CreatedAt   time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int64                  `json:"unread"`
	Total         int                    `json:"total"`
}
