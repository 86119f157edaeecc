package repository

import (
	"errors"
	"time"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type donationRequestRepository struct{}

func NewDonationRequestRepository() domainRepo.DonationRequestRepository {
	return &donationRequestRepository{}
}

func (r *donationRequestRepository) Create(db *gorm.DB, request *entity.DonationRequest) error {
	return db.Create(request).Error
}

func (r *donationRequestRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.DonationRequest, error) {
	var request entity.DonationRequest
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *donationRequestRepository) FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.DonationRequest, error) {
	var request entity.DonationRequest
	err := db.Where("hospital_id = ? AND token_number = ?", hospitalID, token).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *donationRequestRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.DonationRequest, error) {
	var requests []entity.DonationRequest
	err := db.Where("hospital_id = ?", hospitalID).Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *donationRequestRepository) FindActiveByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.DonationRequest, error) {
	var requests []entity.DonationRequest
	err := db.Where("hospital_id = ? AND scheduled_date >= ? AND scheduled_date < ? AND status IN ?",
		hospitalID, from, to, entity.ActiveDonationRequestStatuses).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *donationRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update domainRepo.BookingStatusUpdate) (int64, error) {
	values := map[string]interface{}{"status": update.Status}
	if update.RejectionReason != nil {
		values["rejection_reason"] = *update.RejectionReason
	}

	result := db.Model(&entity.DonationRequest{}).
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *donationRequestRepository) Save(db *gorm.DB, request *entity.DonationRequest) error {
	return db.Save(request).Error
}

func (r *donationRequestRepository) FindAll(db *gorm.DB) ([]entity.DonationRequest, error) {
	var requests []entity.DonationRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
