package usecase

import (
	"context"

	"bloodbank-backend/internal/converter"
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"
	"bloodbank-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// recentActivityLimit caps the admin activity feed.
const recentActivityLimit = 100

type AdminUsecase interface {
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	ListByRole(ctx context.Context, role string) (*dto.UserListResponse, error)
	ListDonors(ctx context.Context) ([]dto.DonorResponse, error)
	ListPatients(ctx context.Context) ([]dto.PatientResponse, error)
	ListDonationRequests(ctx context.Context) ([]dto.DonationRequestResponse, error)
	ListActivities(ctx context.Context) (*dto.ActivityListResponse, error)
	SetBlocked(ctx context.Context, actorID, userID uuid.UUID, blocked bool) error
}

type adminUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	donorRepo   repository.DonorRepository
	patientRepo repository.PatientRepository
	requestRepo repository.DonationRequestRepository
	auditRepo   repository.AuditLogRepository
	audit       service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	donorRepo repository.DonorRepository,
	patientRepo repository.PatientRepository,
	requestRepo repository.DonationRequestRepository,
	auditRepo repository.AuditLogRepository,
	audit service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		donorRepo:   donorRepo,
		patientRepo: patientRepo,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		audit:       audit,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)
	return &dto.UserListResponse{Users: responses, Total: len(responses)}, nil
}

func (u *adminUsecase) ListByRole(ctx context.Context, role string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindByRole(u.db.WithContext(ctx), role)
	if err != nil {
		u.log.Warnf("Failed to list users by role: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)
	return &dto.UserListResponse{Users: responses, Total: len(responses)}, nil
}

func (u *adminUsecase) ListDonors(ctx context.Context) ([]dto.DonorResponse, error) {
	profiles, err := u.donorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list donors: %+v", err)
		return nil, err
	}

	return converter.DonorsToResponses(profiles), nil
}

func (u *adminUsecase) ListPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *adminUsecase) ListDonationRequests(ctx context.Context) ([]dto.DonationRequestResponse, error) {
	requests, err := u.requestRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list donation requests: %+v", err)
		return nil, err
	}

	return converter.DonationRequestsToResponses(requests), nil
}

func (u *adminUsecase) ListActivities(ctx context.Context) (*dto.ActivityListResponse, error) {
	logs, err := u.auditRepo.FindRecent(u.db.WithContext(ctx), recentActivityLimit)
	if err != nil {
		u.log.Warnf("Failed to list activities: %+v", err)
		return nil, err
	}

	responses := converter.ActivitiesToResponses(logs)
	return &dto.ActivityListResponse{Activities: responses, Total: len(responses)}, nil
}

func (u *adminUsecase) SetBlocked(ctx context.Context, actorID, userID uuid.UUID, blocked bool) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.userRepo.SetBlocked(tx, userID, blocked)
	if err != nil {
		u.log.Warnf("Failed to set blocked flag: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	action := entity.AuditActionUserBlock
	if !blocked {
		action = entity.AuditActionUserUnblock
	}
	u.audit.Log(tx, &actorID, action, "user", userID.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
