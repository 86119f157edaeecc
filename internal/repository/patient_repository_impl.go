package repository

import (
	"errors"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Where("hospital_id = ?", hospitalID).Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindByMRID returns all matches; MRIDs are not guaranteed unique.
func (r *patientRepository) FindByMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Where("hospital_id = ? AND mrid = ?", hospitalID, mrid).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND hospital_id = ?", id, hospitalID).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
