package repository

import (
	"time"

	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatusUpdate carries a status change plus optional fields that are
// only written when present. Nil means the caller omitted the field.
type BookingStatusUpdate struct {
	Status          string
	RejectionReason *string
	WeightKg        *float64
	BagSerialNumber *string
}

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Booking, error)
	FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.Booking, error)
	FindByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	FindByDonor(db *gorm.DB, donorID uuid.UUID) ([]entity.Booking, error)
	FindByPatientMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Booking, error)

	// FindDuplicate implements the accept-time idempotency probe: a booking
	// already exists when its token or donor matches AND the date and
	// hospital match.
	FindDuplicate(db *gorm.DB, hospitalID uuid.UUID, token string, donorID *uuid.UUID, date time.Time) (*entity.Booking, error)

	UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update BookingStatusUpdate) (int64, error)
	Reschedule(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, date time.Time, timeStr string) (int64, error)
	Save(db *gorm.DB, booking *entity.Booking) error

	// CountByStatus aggregates booking counts per status for analytics.
	CountByStatus(db *gorm.DB, hospitalID uuid.UUID) (map[string]int64, error)

	// FindVisited lists bookings that reached arrived or completed.
	FindVisited(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Booking, error)
}
