package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	BloodGroup    string `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MRID          string `json:"mrid,omitempty"`
	Age           int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	Gender        string `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	Contact       string `json:"contact,omitempty"`
	RequiredUnits int    `json:"required_units" validate:"required,gte=1"`
	RequiredDate  string `json:"required_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type UpdatePatientRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	BloodGroup    *string `json:"blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MRID          *string `json:"mrid,omitempty"`
	Age           *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	Contact       *string `json:"contact,omitempty"`
	RequiredUnits *int    `json:"required_units,omitempty" validate:"omitempty,gte=1"`
	RequiredDate  *string `json:"required_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID            uuid.UUID  `json:"id"`
	HospitalID    uuid.UUID  `json:"hospital_id"`
	Name          string     `json:"name"`
	BloodGroup    string     `json:"blood_group"`
	MRID          string     `json:"mrid,omitempty"`
	Age           int        `json:"age,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	Contact       string     `json:"contact,omitempty"`
	RequiredUnits int        `json:"required_units"`
	RequiredDate  *time.Time `json:"required_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
