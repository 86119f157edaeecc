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

var (
	ErrBloodUnitNotFound    = errors.New("blood unit not found")
	ErrBloodUnitUnavailable = errors.New("blood unit is not available")
)

// expiringSoonWindow is the lookahead used for the expiry warning list.
const expiringSoonWindow = 7 * 24 * time.Hour

type InventoryUsecase interface {
	Create(ctx context.Context, hospitalID, actorID uuid.UUID, req *dto.CreateBloodUnitRequest) (*dto.BloodUnitResponse, error)
	GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.BloodUnitResponse, error)
	List(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodUnitResponse, error)
	Update(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateBloodUnitRequest) (*dto.BloodUnitResponse, error)
	Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error
	Availability(ctx context.Context, hospitalID uuid.UUID, bloodGroup string) (*dto.AvailabilityResponse, error)
	Reserve(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error
	ExpiringSoon(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodUnitResponse, error)
}

type inventoryUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	unitRepo repository.BloodUnitRepository
	audit    service.AuditService
}

func NewInventoryUsecase(db *gorm.DB, log *logrus.Logger, unitRepo repository.BloodUnitRepository, audit service.AuditService) InventoryUsecase {
	return &inventoryUsecase{
		db:       db,
		log:      log,
		unitRepo: unitRepo,
		audit:    audit,
	}
}

func (u *inventoryUsecase) Create(ctx context.Context, hospitalID, actorID uuid.UUID, req *dto.CreateBloodUnitRequest) (*dto.BloodUnitResponse, error) {
	collectionDate, err := time.Parse("2006-01-02", req.CollectionDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	unitType := req.UnitType
	if unitType == "" {
		unitType = entity.UnitTypeWholeBlood
	}

	unit := &entity.BloodUnit{
		HospitalID:      hospitalID,
		BloodGroup:      req.BloodGroup,
		Quantity:        req.Quantity,
		UnitType:        unitType,
		CollectionDate:  collectionDate,
		ExpiryDate:      expiryDate,
		Status:          entity.BloodUnitStatusAvailable,
		BagSerialNumber: req.BagSerialNumber,
	}

	if err := u.unitRepo.Create(tx, unit); err != nil {
		u.log.Warnf("Failed to create blood unit: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionBloodUnitCreate, "blood_unit", unit.ID.String(), map[string]interface{}{
		"blood_group": unit.BloodGroup,
		"quantity":    unit.Quantity,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BloodUnitToResponse(unit), nil
}

func (u *inventoryUsecase) GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.BloodUnitResponse, error) {
	unit, err := u.unitRepo.FindByID(u.db.WithContext(ctx), id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find blood unit: %+v", err)
		return nil, err
	}
	if unit == nil {
		return nil, ErrBloodUnitNotFound
	}

	return converter.BloodUnitToResponse(unit), nil
}

func (u *inventoryUsecase) List(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodUnitResponse, error) {
	units, err := u.unitRepo.FindByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list blood units: %+v", err)
		return nil, err
	}

	return converter.BloodUnitsToResponses(units), nil
}

func (u *inventoryUsecase) Update(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateBloodUnitRequest) (*dto.BloodUnitResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	unit, err := u.unitRepo.FindByID(tx, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find blood unit: %+v", err)
		return nil, err
	}
	if unit == nil {
		return nil, ErrBloodUnitNotFound
	}

	if req.Quantity != nil {
		unit.Quantity = *req.Quantity
	}
	if req.UnitType != nil {
		unit.UnitType = *req.UnitType
	}
	if req.ExpiryDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		unit.ExpiryDate = parsed
	}
	if req.Status != nil {
		unit.Status = entity.BloodUnitStatus(*req.Status)
	}
	if req.BagSerialNumber != nil {
		unit.BagSerialNumber = *req.BagSerialNumber
	}

	// Save runs the BeforeSave hook, which downgrades a stale available
	// unit to expired even if the caller asked for available.
	if err := u.unitRepo.Save(tx, unit); err != nil {
		u.log.Warnf("Failed to update blood unit: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, nil, entity.AuditActionBloodUnitUpdate, "blood_unit", unit.ID.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BloodUnitToResponse(unit), nil
}

func (u *inventoryUsecase) Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.unitRepo.Delete(tx, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to delete blood unit: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBloodUnitNotFound
	}

	u.audit.Log(tx, &actorID, entity.AuditActionBloodUnitDelete, "blood_unit", id.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *inventoryUsecase) Availability(ctx context.Context, hospitalID uuid.UUID, bloodGroup string) (*dto.AvailabilityResponse, error) {
	rows, err := u.unitRepo.Availability(u.db.WithContext(ctx), hospitalID, bloodGroup, time.Now())
	if err != nil {
		u.log.Warnf("Failed to aggregate availability: %+v", err)
		return nil, err
	}

	return &dto.AvailabilityResponse{Groups: converter.AvailabilityToResponses(rows)}, nil
}

func (u *inventoryUsecase) Reserve(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.unitRepo.Reserve(tx, id, hospitalID, time.Now())
	if err != nil {
		u.log.Warnf("Failed to reserve blood unit: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBloodUnitUnavailable
	}

	u.audit.Log(tx, &actorID, entity.AuditActionBloodUnitReserve, "blood_unit", id.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *inventoryUsecase) ExpiringSoon(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodUnitResponse, error) {
	now := time.Now()
	units, err := u.unitRepo.ExpiringSoon(u.db.WithContext(ctx), hospitalID, now, now.Add(expiringSoonWindow))
	if err != nil {
		u.log.Warnf("Failed to list expiring units: %+v", err)
		return nil, err
	}

	return converter.BloodUnitsToResponses(units), nil
}
