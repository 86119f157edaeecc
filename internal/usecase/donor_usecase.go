package usecase

import (
	"context"
	"errors"
	"time"

	"bloodbank-backend/internal/converter"
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDonorNotFound = errors.New("donor not found")

type DonorUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DonorResponse, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.DonorResponse, error)
	Search(ctx context.Context, filter repository.DonorSearchFilter) ([]dto.DonorResponse, error)
	SearchByMRID(ctx context.Context, hospitalID uuid.UUID, mrid string) ([]dto.DonorResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateDonorRequest) (*dto.DonorResponse, error)
	CheckEligibility(ctx context.Context, id uuid.UUID) (*dto.EligibilityResponse, error)
}

type donorUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	donorRepo   repository.DonorRepository
	bookingRepo repository.BookingRepository
}

func NewDonorUsecase(db *gorm.DB, log *logrus.Logger, donorRepo repository.DonorRepository, bookingRepo repository.BookingRepository) DonorUsecase {
	return &donorUsecase{
		db:          db,
		log:         log,
		donorRepo:   donorRepo,
		bookingRepo: bookingRepo,
	}
}

func (u *donorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DonorResponse, error) {
	profile, err := u.donorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find donor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDonorNotFound
	}

	return converter.DonorToResponse(profile), nil
}

func (u *donorUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.DonorResponse, error) {
	profile, err := u.donorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find donor by user ID: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDonorNotFound
	}

	return converter.DonorToResponse(profile), nil
}

func (u *donorUsecase) Search(ctx context.Context, filter repository.DonorSearchFilter) ([]dto.DonorResponse, error) {
	profiles, err := u.donorRepo.Search(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search donors: %+v", err)
		return nil, err
	}

	responses := make([]dto.DonorResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *converter.DonorToResponse(&profiles[i]))
	}
	return responses, nil
}

// SearchByMRID finds donors through past bookings registered under a medical
// record ID. The same MRID may span several visits and donors.
func (u *donorUsecase) SearchByMRID(ctx context.Context, hospitalID uuid.UUID, mrid string) ([]dto.DonorResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientMRID(u.db.WithContext(ctx), hospitalID, mrid)
	if err != nil {
		u.log.Warnf("Failed to find bookings by MRID: %+v", err)
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	responses := make([]dto.DonorResponse, 0, len(bookings))
	for i := range bookings {
		if bookings[i].DonorID == nil || seen[*bookings[i].DonorID] {
			continue
		}
		seen[*bookings[i].DonorID] = true

		profile, err := u.donorRepo.FindByUserID(u.db.WithContext(ctx), *bookings[i].DonorID)
		if err != nil {
			u.log.Warnf("Failed to resolve donor %s: %+v", *bookings[i].DonorID, err)
			return nil, err
		}
		if profile == nil {
			continue
		}
		responses = append(responses, *converter.DonorToResponse(profile))
	}

	return responses, nil
}

func (u *donorUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateDonorRequest) (*dto.DonorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.donorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find donor by user ID: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDonorNotFound
	}

	if req.Contact != nil {
		profile.Contact = *req.Contact
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.LastDonationDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.LastDonationDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.LastDonationDate = &parsed
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Availability != nil {
		profile.Availability = *req.Availability
	}
	if req.ContactPreference != nil {
		profile.ContactPreference = *req.ContactPreference
	}

	profile.RefreshEligibility(time.Now())

	if err := u.donorRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update donor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DonorToResponse(profile), nil
}

// CheckEligibility evaluates the donation rules against the profile's
// current attributes and persists the result, so the stored
// eligibility_status/eligibility_notes always reflect the last check.
func (u *donorUsecase) CheckEligibility(ctx context.Context, id uuid.UUID) (*dto.EligibilityResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.donorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find donor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDonorNotFound
	}

	eligible, reason := profile.RefreshEligibility(time.Now())

	if err := u.donorRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to store eligibility result: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.EligibilityResponse{
		DonorID:  profile.ID,
		Eligible: eligible,
		Reason:   reason,
	}, nil
}
