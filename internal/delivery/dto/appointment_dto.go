package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	DonorID     *uuid.UUID `json:"donor_id,omitempty"`
	DonorName   string     `json:"donor_name" validate:"required,min=2,max=255"`
	BloodGroup  string     `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Contact     string     `json:"contact,omitempty"`
	Date        string     `json:"date" validate:"required"`
	Time        string     `json:"time,omitempty"`
	PatientID   *uuid.UUID `json:"patient_id,omitempty"`
	PatientMRID string     `json:"patient_mrid,omitempty"`
}

type CreateDonationRequestRequest struct {
	DonorID       *uuid.UUID `json:"donor_id,omitempty"`
	DonorName     string     `json:"donor_name,omitempty"`
	PatientID     *uuid.UUID `json:"patient_id,omitempty"`
	BloodGroup    string     `json:"blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Contact       string     `json:"contact,omitempty"`
	ScheduledDate string     `json:"scheduled_date" validate:"required"`
	ScheduledTime string     `json:"scheduled_time,omitempty"`
	HospitalID    uuid.UUID  `json:"hospital_id" validate:"required"`
}

// UpdateAppointmentStatusRequest changes status on a booking or donation
// request. The optional fields are pointers: nil means "leave untouched".
type UpdateAppointmentStatusRequest struct {
	Status          string   `json:"status" validate:"required"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty" validate:"omitempty,gte=1"`
	BagSerialNumber *string  `json:"bag_serial_number,omitempty"`
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// Response DTOs

// AppointmentResponse is the unified view over the Booking and
// DonationRequest collections. IsDonationRequest tags which side an entry
// was projected from so dashboards can pattern-match instead of probing for
// field presence.
type AppointmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	BookingCode       string     `json:"booking_code"`
	DonorID           *uuid.UUID `json:"donor_id,omitempty"`
	DonorName         string     `json:"donor_name,omitempty"`
	BloodGroup        string     `json:"blood_group,omitempty"`
	Contact           string     `json:"contact,omitempty"`
	Date              time.Time  `json:"date"`
	Time              string     `json:"time,omitempty"`
	Status            string     `json:"status"`
	HospitalID        uuid.UUID  `json:"hospital_id"`
	TokenNumber       string     `json:"token_number,omitempty"`
	PatientID         *uuid.UUID `json:"patient_id,omitempty"`
	PatientName       string     `json:"patient_name,omitempty"`
	PatientMRID       string     `json:"patient_mrid,omitempty"`
	WeightKg          *float64   `json:"weight_kg,omitempty"`
	BagSerialNumber   string     `json:"bag_serial_number,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	IsDonationRequest bool       `json:"is_donation_request"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type DonationRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	DonorID         *uuid.UUID `json:"donor_id,omitempty"`
	RequesterID     uuid.UUID  `json:"requester_id"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	DonorName       string     `json:"donor_name,omitempty"`
	RequesterName   string     `json:"requester_name,omitempty"`
	BloodGroup      string     `json:"blood_group,omitempty"`
	Contact         string     `json:"contact,omitempty"`
	ScheduledDate   time.Time  `json:"scheduled_date"`
	ScheduledTime   string     `json:"scheduled_time,omitempty"`
	Status          string     `json:"status"`
	HospitalID      uuid.UUID  `json:"hospital_id"`
	TokenNumber     string     `json:"token_number,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type DonationRequestListResponse struct {
	Requests []DonationRequestResponse `json:"requests"`
	Total    int                       `json:"total"`
}

type AnalyticsResponse struct {
	BookingsByStatus map[string]int64                 `json:"bookings_by_status"`
	TotalPatients    int64                            `json:"total_patients"`
	TotalStaff       int64                            `json:"total_staff"`
	Availability     []BloodGroupAvailabilityResponse `json:"availability"`
}
