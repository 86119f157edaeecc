package repository

import (
	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Patient, error)
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Patient, error)
	FindByMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
}
