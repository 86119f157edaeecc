package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBloodUnitRequest struct {
	BloodGroup      string `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Quantity        int    `json:"quantity" validate:"required,gte=1"`
	UnitType        string `json:"unit_type,omitempty" validate:"omitempty,oneof=whole_blood plasma platelets rbc"`
	CollectionDate  string `json:"collection_date" validate:"required"`
	ExpiryDate      string `json:"expiry_date" validate:"required"`
	BagSerialNumber string `json:"bag_serial_number,omitempty"`
}

type UpdateBloodUnitRequest struct {
	Quantity        *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	UnitType        *string `json:"unit_type,omitempty" validate:"omitempty,oneof=whole_blood plasma platelets rbc"`
	ExpiryDate      *string `json:"expiry_date,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=available reserved expired used"`
	BagSerialNumber *string `json:"bag_serial_number,omitempty"`
}

// Response DTOs

type BloodUnitResponse struct {
	ID              uuid.UUID `json:"id"`
	HospitalID      uuid.UUID `json:"hospital_id"`
	BloodGroup      string    `json:"blood_group"`
	Quantity        int       `json:"quantity"`
	UnitType        string    `json:"unit_type"`
	CollectionDate  time.Time `json:"collection_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	Status          string    `json:"status"`
	BagSerialNumber string    `json:"bag_serial_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BloodUnitListResponse struct {
	Units []BloodUnitResponse `json:"units"`
	Total int                 `json:"total"`
}

type AvailabilityResponse struct {
	Groups []BloodGroupAvailabilityResponse `json:"groups"`
}

type BloodGroupAvailabilityResponse struct {
	BloodGroup     string    `json:"blood_group"`
	TotalQuantity  int       `json:"total_quantity"`
	UnitsCount     int       `json:"units_count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
}
