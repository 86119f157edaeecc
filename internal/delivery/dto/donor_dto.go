package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpdateDonorRequest uses pointers so an omitted field is distinguishable
// from an explicit zero value.
type UpdateDonorRequest struct {
	Contact           *string  `json:"contact,omitempty"`
	Age               *int     `json:"age,omitempty" validate:"omitempty,gte=1,lte=120"`
	WeightKg          *float64 `json:"weight_kg,omitempty" validate:"omitempty,gte=1"`
	LastDonationDate  *string  `json:"last_donation_date,omitempty"`
	Address           *string  `json:"address,omitempty"`
	Availability      *bool    `json:"availability,omitempty"`
	ContactPreference *string  `json:"contact_preference,omitempty" validate:"omitempty,oneof=email phone sms"`
}

// Response DTOs

type DonorResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty"`
	BloodGroup        string     `json:"blood_group"`
	Contact           string     `json:"contact,omitempty"`
	Age               int        `json:"age"`
	WeightKg          float64    `json:"weight_kg"`
	LastDonationDate  *time.Time `json:"last_donation_date,omitempty"`
	EligibilityStatus bool       `json:"eligibility_status"`
	EligibilityNotes  string     `json:"eligibility_notes,omitempty"`
	Address           string     `json:"address,omitempty"`
	Availability      bool       `json:"availability"`
	ContactPreference string     `json:"contact_preference,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type EligibilityResponse struct {
	DonorID  uuid.UUID `json:"donor_id"`
	Eligible bool      `json:"eligible"`
	Reason   string    `json:"reason"`
}

type DonorListResponse struct {
	Donors []DonorResponse `json:"donors"`
	Total  int             `json:"total"`
}
