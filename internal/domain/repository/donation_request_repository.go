package repository

import (
	"time"

	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRequestRepository interface {
	Create(db *gorm.DB, request *entity.DonationRequest) error
	FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.DonationRequest, error)
	FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.DonationRequest, error)
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.DonationRequest, error)

	// FindActiveByDateRange returns requests whose scheduled date falls in
	// [from, to) and whose status is part of the daily appointment view.
	FindActiveByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.DonationRequest, error)

	UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update BookingStatusUpdate) (int64, error)
	Save(db *gorm.DB, request *entity.DonationRequest) error
	FindAll(db *gorm.DB) ([]entity.DonationRequest, error)
}
