package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RegisterDonorRequest self-registers a donor account plus its profile.
type RegisterDonorRequest struct {
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=8"`
	FullName          string  `json:"full_name" validate:"required,min=2,max=255"`
	Phone             string  `json:"phone,omitempty"`
	BloodGroup        string  `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Age               int     `json:"age" validate:"required,gte=1,lte=120"`
	WeightKg          float64 `json:"weight_kg" validate:"required,gte=1"`
	LastDonationDate  string  `json:"last_donation_date,omitempty"`
	Address           string  `json:"address,omitempty"`
	ContactPreference string  `json:"contact_preference,omitempty" validate:"omitempty,oneof=email phone sms"`
}

type RegisterBloodbankRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	HospitalID *uuid.UUID `json:"hospital_id,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsBlocked  bool       `json:"is_blocked"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
