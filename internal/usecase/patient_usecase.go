package usecase

import (
	"context"
	"errors"
	"time"

	"bloodbank-backend/internal/converter"
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"
	"bloodbank-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientRecordNotFound = errors.New("patient not found")

type PatientUsecase interface {
	Create(ctx context.Context, hospitalID uuid.UUID, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context, hospitalID uuid.UUID) ([]dto.PatientResponse, error)
	FindByMRID(ctx context.Context, hospitalID uuid.UUID, mrid string) ([]dto.PatientResponse, error)
	Update(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	audit       service.AuditService
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository, audit service.AuditService) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		audit:       audit,
	}
}

func (u *patientUsecase) Create(ctx context.Context, hospitalID uuid.UUID, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var requiredDate *time.Time
	if req.RequiredDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RequiredDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		requiredDate = &parsed
	}

	patient := &entity.Patient{
		HospitalID:    hospitalID,
		Name:          req.Name,
		BloodGroup:    req.BloodGroup,
		MRID:          req.MRID,
		Age:           req.Age,
		Gender:        req.Gender,
		Contact:       req.Contact,
		RequiredUnits: req.RequiredUnits,
		RequiredDate:  requiredDate,
		Notes:         req.Notes,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), map[string]interface{}{
		"mrid": patient.MRID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientRecordNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, hospitalID uuid.UUID) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *converter.PatientToResponse(&patients[i]))
	}
	return responses, nil
}

// FindByMRID may return several rows: MRIDs are not unique because the same
// record number can be re-registered across admissions.
func (u *patientUsecase) FindByMRID(ctx context.Context, hospitalID uuid.UUID, mrid string) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindByMRID(u.db.WithContext(ctx), hospitalID, mrid)
	if err != nil {
		u.log.Warnf("Failed to find patients by MRID: %+v", err)
		return nil, err
	}

	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *converter.PatientToResponse(&patients[i]))
	}
	return responses, nil
}

func (u *patientUsecase) Update(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientRecordNotFound
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.MRID != nil {
		patient.MRID = *req.MRID
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Contact != nil {
		patient.Contact = *req.Contact
	}
	if req.RequiredUnits != nil {
		patient.RequiredUnits = *req.RequiredUnits
	}
	if req.RequiredDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.RequiredDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.RequiredDate = &parsed
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.Delete(tx, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPatientRecordNotFound
	}

	u.audit.Log(tx, &actorID, entity.AuditActionPatientDelete, "patient", id.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
