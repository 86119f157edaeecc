package repository

import (
	"errors"
	"time"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodUnitRepository struct{}

func NewBloodUnitRepository() domainRepo.BloodUnitRepository {
	return &bloodUnitRepository{}
}

func (r *bloodUnitRepository) Create(db *gorm.DB, unit *entity.BloodUnit) error {
	return db.Create(unit).Error
}

func (r *bloodUnitRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.BloodUnit, error) {
	var unit entity.BloodUnit
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *bloodUnitRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodUnit, error) {
	var units []entity.BloodUnit
	err := db.Where("hospital_id = ?", hospitalID).
		Order("expiry_date ASC").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

func (r *bloodUnitRepository) Save(db *gorm.DB, unit *entity.BloodUnit) error {
	return db.Save(unit).Error
}

func (r *bloodUnitRepository) Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND hospital_id = ?", id, hospitalID).Delete(&entity.BloodUnit{})
	return result.RowsAffected, result.Error
}

// Availability aggregates usable stock per blood group. Only units that are
// both marked available and not past expiry count; the status filter alone
// is not trusted because expiry is applied lazily.
func (r *bloodUnitRepository) Availability(db *gorm.DB, hospitalID uuid.UUID, bloodGroup string, now time.Time) ([]domainRepo.BloodGroupAvailability, error) {
	query := db.Model(&entity.BloodUnit{}).
		Select("blood_group, SUM(quantity) AS total_quantity, COUNT(*) AS units_count, MIN(expiry_date) AS earliest_expiry").
		Where("hospital_id = ? AND status = ? AND expiry_date > ?", hospitalID, entity.BloodUnitStatusAvailable, now).
		Group("blood_group").
		Order("blood_group ASC")

	if bloodGroup != "" {
		query = query.Where("blood_group = ?", bloodGroup)
	}

	var rows []domainRepo.BloodGroupAvailability
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Reserve is a guarded single-statement transition so two concurrent
// reservations of the same unit cannot both succeed.
func (r *bloodUnitRepository) Reserve(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, now time.Time) (int64, error) {
	result := db.Model(&entity.BloodUnit{}).
		Where("id = ? AND hospital_id = ? AND status = ? AND expiry_date > ?",
			id, hospitalID, entity.BloodUnitStatusAvailable, now).
		Update("status", entity.BloodUnitStatusReserved)
	return result.RowsAffected, result.Error
}

func (r *bloodUnitRepository) ExpiringSoon(db *gorm.DB, hospitalID uuid.UUID, now, until time.Time) ([]entity.BloodUnit, error) {
	var units []entity.BloodUnit
	err := db.Where("hospital_id = ? AND status = ? AND expiry_date > ? AND expiry_date <= ?",
		hospitalID, entity.BloodUnitStatusAvailable, now, until).
		Order("expiry_date ASC").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}
