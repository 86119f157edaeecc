package repository

import (
	"errors"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodRequestRepository struct{}

func NewBloodRequestRepository() domainRepo.BloodRequestRepository {
	return &bloodRequestRepository{}
}

func (r *bloodRequestRepository) Create(db *gorm.DB, request *entity.BloodRequest) error {
	return db.Create(request).Error
}

func (r *bloodRequestRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.BloodRequest, error) {
	var request entity.BloodRequest
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodRequest, error) {
	var requests []entity.BloodRequest
	err := db.Where("hospital_id = ?", hospitalID).Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *bloodRequestRepository) Save(db *gorm.DB, request *entity.BloodRequest) error {
	return db.Save(request).Error
}

func (r *bloodRequestRepository) Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND hospital_id = ?", id, hospitalID).Delete(&entity.BloodRequest{})
	return result.RowsAffected, result.Error
}
