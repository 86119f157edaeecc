package entity

import (
	"time"

	"github.com/google/uuid"
)

// DonationRequestStatus covers a broader lifecycle than Booking: a request
// may be accepted and later booked, rescheduled, or marked arrived before
// completion.
type DonationRequestStatus string

const (
	DonationRequestStatusPending     DonationRequestStatus = "pending"
	DonationRequestStatusAccepted    DonationRequestStatus = "accepted"
	DonationRequestStatusRejected    DonationRequestStatus = "rejected"
	DonationRequestStatusCompleted   DonationRequestStatus = "completed"
	DonationRequestStatusCancelled   DonationRequestStatus = "cancelled"
	DonationRequestStatusRescheduled DonationRequestStatus = "rescheduled"
	DonationRequestStatusBooked      DonationRequestStatus = "booked"
	DonationRequestStatusArrived     DonationRequestStatus = "arrived"
)

// ActiveDonationRequestStatuses are the statuses included when donation
// requests are merged into the daily appointment view.
var ActiveDonationRequestStatuses = []DonationRequestStatus{
	DonationRequestStatusRescheduled,
	DonationRequestStatusBooked,
	DonationRequestStatusAccepted,
	DonationRequestStatusPending,
	DonationRequestStatusArrived,
	DonationRequestStatusCompleted,
}

// DonationRequest is a pledge to donate, initiated by the donor or by a
// requester on a patient's behalf (e.g. a family member). The requester and
// the donor may be different users. HospitalID is mandatory: every request
// belongs to exactly one blood bank.
type DonationRequest struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DonorID         *uuid.UUID            `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	RequesterID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"requester_id"`
	PatientID       *uuid.UUID            `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	DonorName       string                `gorm:"type:varchar(255)" json:"donor_name,omitempty"`
	RequesterName   string                `gorm:"type:varchar(255)" json:"requester_name,omitempty"`
	BloodGroup      string                `gorm:"type:varchar(5);index" json:"blood_group,omitempty"`
	Contact         string                `gorm:"type:varchar(30)" json:"contact,omitempty"`
	ScheduledDate   time.Time             `gorm:"not null;index" json:"scheduled_date"`
	ScheduledTime   string                `gorm:"type:varchar(20)" json:"scheduled_time,omitempty"`
	Status          DonationRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	HospitalID      uuid.UUID             `gorm:"type:uuid;not null;index" json:"hospital_id"`
	TokenNumber     string                `gorm:"type:varchar(10);index" json:"token_number,omitempty"`
	RejectionReason string                `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DonationRequest) TableName() string {
	return "donation_requests"
}

// DisplayName resolves the name shown on dashboards: donor name first, then
// the requester's name when the donor is absent.
func (d *DonationRequest) DisplayName() string {
	if d.DonorName != "" {
		return d.DonorName
	}
	return d.RequesterName
}

// ValidDonationRequestStatus reports whether s is a recognized status.
func ValidDonationRequestStatus(s string) bool {
	switch DonationRequestStatus(s) {
	case DonationRequestStatusPending, DonationRequestStatusAccepted,
		DonationRequestStatusRejected, DonationRequestStatusCompleted,
		DonationRequestStatusCancelled, DonationRequestStatusRescheduled,
		DonationRequestStatusBooked, DonationRequestStatusArrived:
		return true
	}
	return false
}
