package repository

import (
	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BloodRequestRepository interface {
	Create(db *gorm.DB, request *entity.BloodRequest) error
	FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.BloodRequest, error)
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodRequest, error)
	Save(db *gorm.DB, request *entity.BloodRequest) error
	Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error)
}
