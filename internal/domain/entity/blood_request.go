package entity

import (
	"time"

	"github.com/google/uuid"
)

// BloodRequestStatus represents the lifecycle of a request against inventory
type BloodRequestStatus string

const (
	BloodRequestStatusPending   BloodRequestStatus = "pending"
	BloodRequestStatusApproved  BloodRequestStatus = "approved"
	BloodRequestStatusFulfilled BloodRequestStatus = "fulfilled"
	BloodRequestStatusRejected  BloodRequestStatus = "rejected"
	BloodRequestStatusCancelled BloodRequestStatus = "cancelled"
)

// BloodRequest asks for units out of a hospital's inventory, distinct from a
// DonationRequest (which pledges new blood in). StockSufficient is an
// annotation computed from availability at creation and approval time, not
// a reservation.
type BloodRequest struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"hospital_id"`
	RequesterID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"requester_id"`
	PatientID       *uuid.UUID         `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	BloodGroup      string             `gorm:"type:varchar(5);not null;index" json:"blood_group"`
	UnitsRequested  int                `gorm:"not null;default:1" json:"units_requested"`
	Urgency         string             `gorm:"type:varchar(20);not null;default:'normal'" json:"urgency"`
	Status          BloodRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StockSufficient bool               `gorm:"not null;default:false" json:"stock_sufficient"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}

// ValidBloodRequestStatus reports whether s is a recognized status.
func ValidBloodRequestStatus(s string) bool {
	switch BloodRequestStatus(s) {
	case BloodRequestStatusPending, BloodRequestStatusApproved,
		BloodRequestStatusFulfilled, BloodRequestStatusRejected,
		BloodRequestStatusCancelled:
		return true
	}
	return false
}
