package usecase

import (
	"context"
	"errors"
	"fmt"
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

var ErrBloodRequestNotFound = errors.New("blood request not found")

type BloodRequestUsecase interface {
	Create(ctx context.Context, hospitalID, requesterID uuid.UUID, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error)
	GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.BloodRequestResponse, error)
	List(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodRequestResponse, error)
	UpdateStatus(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID, req *dto.UpdateBloodRequestStatusRequest) (*dto.BloodRequestResponse, error)
}

type bloodRequestUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	requestRepo repository.BloodRequestRepository
	unitRepo    repository.BloodUnitRepository
	audit       service.AuditService
	dispatcher  service.NotificationDispatcher
}

func NewBloodRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	requestRepo repository.BloodRequestRepository,
	unitRepo repository.BloodUnitRepository,
	audit service.AuditService,
	dispatcher service.NotificationDispatcher,
) BloodRequestUsecase {
	return &bloodRequestUsecase{
		db:          db,
		log:         log,
		requestRepo: requestRepo,
		unitRepo:    unitRepo,
		audit:       audit,
		dispatcher:  dispatcher,
	}
}

func (u *bloodRequestUsecase) Create(ctx context.Context, hospitalID, requesterID uuid.UUID, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	urgency := req.Urgency
	if urgency == "" {
		urgency = "normal"
	}

	request := &entity.BloodRequest{
		HospitalID:      hospitalID,
		RequesterID:     requesterID,
		PatientID:       req.PatientID,
		BloodGroup:      req.BloodGroup,
		UnitsRequested:  req.UnitsRequested,
		Urgency:         urgency,
		Status:          entity.BloodRequestStatusPending,
		StockSufficient: u.stockSufficient(tx, hospitalID, req.BloodGroup, req.UnitsRequested),
		Notes:           req.Notes,
	}

	if err := u.requestRepo.Create(tx, request); err != nil {
		u.log.Warnf("Failed to create blood request: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &requesterID, entity.AuditActionBloodRequestCreate, "blood_request", request.ID.String(), map[string]interface{}{
		"blood_group":      request.BloodGroup,
		"units_requested":  request.UnitsRequested,
		"stock_sufficient": request.StockSufficient,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.BloodRequestToResponse(request), nil
}

func (u *bloodRequestUsecase) GetByID(ctx context.Context, hospitalID, id uuid.UUID) (*dto.BloodRequestResponse, error) {
	request, err := u.requestRepo.FindByID(u.db.WithContext(ctx), id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find blood request: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrBloodRequestNotFound
	}

	return converter.BloodRequestToResponse(request), nil
}

func (u *bloodRequestUsecase) List(ctx context.Context, hospitalID uuid.UUID) ([]dto.BloodRequestResponse, error) {
	requests, err := u.requestRepo.FindByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list blood requests: %+v", err)
		return nil, err
	}

	return converter.BloodRequestsToResponses(requests), nil
}

func (u *bloodRequestUsecase) UpdateStatus(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID, req *dto.UpdateBloodRequestStatusRequest) (*dto.BloodRequestResponse, error) {
	if !entity.ValidBloodRequestStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(tx, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find blood request: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrBloodRequestNotFound
	}

	request.Status = entity.BloodRequestStatus(req.Status)
	if req.Notes != nil {
		request.Notes = *req.Notes
	}

	// Re-annotate on approval; stock may have moved since creation.
	if request.Status == entity.BloodRequestStatusApproved {
		request.StockSufficient = u.stockSufficient(tx, hospitalID, request.BloodGroup, request.UnitsRequested)
	}

	if err := u.requestRepo.Save(tx, request); err != nil {
		u.log.Warnf("Failed to update blood request: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionBloodRequestStatus, "blood_request", request.ID.String(), map[string]interface{}{
		"status": req.Status,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.dispatcher.Dispatch(u.db.WithContext(ctx), request.RequesterID, entity.NotificationTypeBloodRequest,
		"Blood request update",
		fmt.Sprintf("Your request for %d unit(s) of %s is now %s", request.UnitsRequested, request.BloodGroup, request.Status),
		map[string]interface{}{"blood_request_id": request.ID.String()},
	)

	return converter.BloodRequestToResponse(request), nil
}

// stockSufficient compares current availability for the group against the
// requested units. Errors degrade to false rather than failing the request.
func (u *bloodRequestUsecase) stockSufficient(db *gorm.DB, hospitalID uuid.UUID, bloodGroup string, units int) bool {
	rows, err := u.unitRepo.Availability(db, hospitalID, bloodGroup, time.Now())
	if err != nil {
		u.log.Warnf("Failed to check stock for %s: %+v", bloodGroup, err)
		return false
	}

	total := 0
	for _, row := range rows {
		total += row.TotalQuantity
	}
	return total >= units
}
