package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=frontdesk doctor lab_technician bleeding_staff store_staff centrifuge_staff other_staff"`
	Phone    string `json:"phone,omitempty"`
}

// Response DTOs

type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Total int             `json:"total"`
}
