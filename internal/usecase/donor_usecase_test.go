package usecase

import (
	"context"
	"testing"

	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockDonorRepository struct {
	mock.Mock
}

func (m *mockDonorRepository) Create(db *gorm.DB, profile *entity.DonorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *mockDonorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DonorProfile, error) {
	args := m.Called(db, id)
	profile, _ := args.Get(0).(*entity.DonorProfile)
	return profile, args.Error(1)
}

func (m *mockDonorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DonorProfile, error) {
	args := m.Called(db, userID)
	profile, _ := args.Get(0).(*entity.DonorProfile)
	return profile, args.Error(1)
}

func (m *mockDonorRepository) Search(db *gorm.DB, filter repository.DonorSearchFilter) ([]entity.DonorProfile, error) {
	args := m.Called(db, filter)
	profiles, _ := args.Get(0).([]entity.DonorProfile)
	return profiles, args.Error(1)
}

func (m *mockDonorRepository) Update(db *gorm.DB, profile *entity.DonorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *mockDonorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *mockDonorRepository) FindAll(db *gorm.DB) ([]entity.DonorProfile, error) {
	args := m.Called(db)
	profiles, _ := args.Get(0).([]entity.DonorProfile)
	return profiles, args.Error(1)
}

func TestCheckEligibilityPersistsResult(t *testing.T) {
	db, sqlMock := newTestDB(t)
	donorRepo := new(mockDonorRepository)
	bookingRepo := new(mockBookingRepository)
	u := NewDonorUsecase(db, newTestLogger(), donorRepo, bookingRepo)

	profileID := uuid.New()

	t.Run("stale cached flag is corrected on check", func(t *testing.T) {
		// Stored as eligible, but the current age fails the rules.
		profile := &entity.DonorProfile{
			ID:                profileID,
			Age:               17,
			WeightKg:          70,
			EligibilityStatus: true,
			EligibilityNotes:  entity.ReasonEligible,
		}

		sqlMock.ExpectBegin()
		donorRepo.On("FindByID", mock.Anything, profileID).Return(profile, nil).Once()
		donorRepo.On("Update", mock.Anything, profile).Return(nil).Once()
		sqlMock.ExpectCommit()

		resp, err := u.CheckEligibility(context.Background(), profileID)
		require.NoError(t, err)
		require.False(t, resp.Eligible)
		require.Equal(t, entity.ReasonAgeOutOfRange, resp.Reason)

		// The written profile carries the refreshed cache.
		require.False(t, profile.EligibilityStatus)
		require.Equal(t, entity.ReasonAgeOutOfRange, profile.EligibilityNotes)
		donorRepo.AssertExpectations(t)
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("eligible donor is stored as eligible", func(t *testing.T) {
		profile := &entity.DonorProfile{
			ID:       profileID,
			Age:      30,
			WeightKg: 70,
		}

		sqlMock.ExpectBegin()
		donorRepo.On("FindByID", mock.Anything, profileID).Return(profile, nil).Once()
		donorRepo.On("Update", mock.Anything, profile).Return(nil).Once()
		sqlMock.ExpectCommit()

		resp, err := u.CheckEligibility(context.Background(), profileID)
		require.NoError(t, err)
		require.True(t, resp.Eligible)
		require.True(t, profile.EligibilityStatus)
		require.Equal(t, entity.ReasonEligible, profile.EligibilityNotes)
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown donor", func(t *testing.T) {
		// Fresh mock so Update calls from earlier subtests don't leak
		// into the AssertNotCalled check below.
		freshRepo := new(mockDonorRepository)
		freshU := NewDonorUsecase(db, newTestLogger(), freshRepo, bookingRepo)

		missing := uuid.New()
		sqlMock.ExpectBegin()
		freshRepo.On("FindByID", mock.Anything, missing).Return(nil, nil).Once()
		sqlMock.ExpectRollback()

		_, err := freshU.CheckEligibility(context.Background(), missing)
		require.ErrorIs(t, err, ErrDonorNotFound)
		freshRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
