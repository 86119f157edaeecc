package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBloodRequestRequest struct {
	PatientID      *uuid.UUID `json:"patient_id,omitempty"`
	BloodGroup     string     `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	UnitsRequested int        `json:"units_requested" validate:"required,gte=1"`
	Urgency        string     `json:"urgency,omitempty" validate:"omitempty,oneof=low normal high critical"`
	Notes          string     `json:"notes,omitempty"`
}

type UpdateBloodRequestStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending approved fulfilled rejected cancelled"`
	Notes  *string `json:"notes,omitempty"`
}

// Response DTOs

type BloodRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	HospitalID      uuid.UUID  `json:"hospital_id"`
	RequesterID     uuid.UUID  `json:"requester_id"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	BloodGroup      string     `json:"blood_group"`
	UnitsRequested  int        `json:"units_requested"`
	Urgency         string     `json:"urgency"`
	Status          string     `json:"status"`
	StockSufficient bool       `json:"stock_sufficient"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BloodRequestListResponse struct {
	Requests []BloodRequestResponse `json:"requests"`
	Total    int                    `json:"total"`
}
