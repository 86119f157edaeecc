package repository

import (
	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorSearchFilter narrows donor searches; zero values mean "no filter".
type DonorSearchFilter struct {
	BloodGroup    string
	AvailableOnly bool
	Name          string
}

type DonorRepository interface {
	Create(db *gorm.DB, profile *entity.DonorProfile) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DonorProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DonorProfile, error)
	Search(db *gorm.DB, filter DonorSearchFilter) ([]entity.DonorProfile, error)
	Update(db *gorm.DB, profile *entity.DonorProfile) error
	Delete(db *gorm.DB, id uuid.UUID) error
	FindAll(db *gorm.DB) ([]entity.DonorProfile, error)
}
