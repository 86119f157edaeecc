package usecase

import (
	"context"
	"errors"

	"bloodbank-backend/internal/converter"
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"
	"bloodbank-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrInvalidRole   = errors.New("invalid staff role")
)

type StaffUsecase interface {
	Create(ctx context.Context, hospitalID, actorID uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	List(ctx context.Context, hospitalID uuid.UUID) ([]dto.StaffResponse, error)
	Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error
}

type staffUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	audit    service.AuditService
}

func NewStaffUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, audit service.AuditService) StaffUsecase {
	return &staffUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		audit:    audit,
	}
}

func (u *staffUsecase) Create(ctx context.Context, hospitalID, actorID uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if !entity.IsStaffRole(req.Role) {
		return nil, ErrInvalidRole
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:      req.Email,
		Password:   string(hashedPassword),
		FullName:   req.FullName,
		Role:       req.Role,
		Phone:      req.Phone,
		HospitalID: &hospitalID,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create staff user: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionStaffCreate, "user", user.ID.String(), map[string]interface{}{
		"role": user.Role,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToStaffResponse(user), nil
}

func (u *staffUsecase) List(ctx context.Context, hospitalID uuid.UUID) ([]dto.StaffResponse, error) {
	users, err := u.userRepo.FindStaffByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list staff: %+v", err)
		return nil, err
	}

	return converter.UsersToStaffResponses(users), nil
}

func (u *staffUsecase) Delete(ctx context.Context, hospitalID, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find staff user: %+v", err)
		return err
	}
	if user == nil || !entity.IsStaffRole(user.Role) {
		return ErrStaffNotFound
	}
	if user.HospitalID == nil || *user.HospitalID != hospitalID {
		return ErrStaffNotFound
	}

	if err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete staff user: %+v", err)
		return err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionStaffDelete, "user", id.String(), map[string]interface{}{
		"role": user.Role,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
