package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a donation appointment
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusArrived   BookingStatus = "arrived"
)

// Booking represents a concrete scheduled (or occurred) donation appointment
// at a blood bank. Time is kept as the string the caller supplied; ordering
// in merged listings is lexicographic over that string.
type Booking struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingCode     string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	DonorID         *uuid.UUID    `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	DonorName       string        `gorm:"type:varchar(255)" json:"donor_name,omitempty"`
	BloodGroup      string        `gorm:"type:varchar(5);index" json:"blood_group,omitempty"`
	Contact         string        `gorm:"type:varchar(30)" json:"contact,omitempty"`
	Date            time.Time     `gorm:"not null;index" json:"date"`
	Time            string        `gorm:"type:varchar(20)" json:"time,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	HospitalID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"hospital_id"`
	TokenNumber     string        `gorm:"type:varchar(10);index" json:"token_number,omitempty"`
	PatientID       *uuid.UUID    `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName     string        `gorm:"type:varchar(255)" json:"patient_name,omitempty"`
	PatientMRID     string        `gorm:"type:varchar(50)" json:"patient_mrid,omitempty"`
	WeightKg        *float64      `json:"weight_kg,omitempty"`
	BagSerialNumber string        `gorm:"type:varchar(50)" json:"bag_serial_number,omitempty"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether the booking reached a final state.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCompleted, BookingStatusRejected, BookingStatusCancelled:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is a recognized booking status.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusRejected, BookingStatusCancelled, BookingStatusArrived:
		return true
	}
	return false
}
