package repository

import (
	"errors"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type donorRepository struct{}

func NewDonorRepository() domainRepo.DonorRepository {
	return &donorRepository{}
}

func (r *donorRepository) Create(db *gorm.DB, profile *entity.DonorProfile) error {
	return db.Create(profile).Error
}

func (r *donorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	err := db.Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *donorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *donorRepository) Search(db *gorm.DB, filter domainRepo.DonorSearchFilter) ([]entity.DonorProfile, error) {
	query := db.Preload("User").Joins("JOIN users ON users.id = donor_profiles.user_id").
		Where("users.is_blocked = false AND users.is_active = true")

	if filter.BloodGroup != "" {
		query = query.Where("donor_profiles.blood_group = ?", filter.BloodGroup)
	}
	if filter.AvailableOnly {
		query = query.Where("donor_profiles.availability = true")
	}
	if filter.Name != "" {
		query = query.Where("users.full_name ILIKE ?", "%"+filter.Name+"%")
	}

	var profiles []entity.DonorProfile
	err := query.Order("donor_profiles.created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *donorRepository) Update(db *gorm.DB, profile *entity.DonorProfile) error {
	return db.Save(profile).Error
}

func (r *donorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.DonorProfile{}).Error
}

func (r *donorRepository) FindAll(db *gorm.DB) ([]entity.DonorProfile, error) {
	var profiles []entity.DonorProfile
	err := db.Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
