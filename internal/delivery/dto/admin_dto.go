package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type ActivityResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	UserName  string                 `json:"user_name,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
