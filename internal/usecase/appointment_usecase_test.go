package usecase

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	args := m.Called(db, booking)
	return args.Error(0)
}

func (m *mockBookingRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(db, id, hospitalID)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepository) FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.Booking, error) {
	args := m.Called(db, hospitalID, token)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepository) FindByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	args := m.Called(db, hospitalID, from, to)
	bookings, _ := args.Get(0).([]entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) FindByDonor(db *gorm.DB, donorID uuid.UUID) ([]entity.Booking, error) {
	args := m.Called(db, donorID)
	bookings, _ := args.Get(0).([]entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) FindByPatientMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Booking, error) {
	args := m.Called(db, hospitalID, mrid)
	bookings, _ := args.Get(0).([]entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) FindDuplicate(db *gorm.DB, hospitalID uuid.UUID, token string, donorID *uuid.UUID, date time.Time) (*entity.Booking, error) {
	args := m.Called(db, hospitalID, token, donorID, date)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update repository.BookingStatusUpdate) (int64, error) {
	args := m.Called(db, id, hospitalID, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepository) Reschedule(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, date time.Time, timeStr string) (int64, error) {
	args := m.Called(db, id, hospitalID, date, timeStr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepository) Save(db *gorm.DB, booking *entity.Booking) error {
	args := m.Called(db, booking)
	return args.Error(0)
}

func (m *mockBookingRepository) CountByStatus(db *gorm.DB, hospitalID uuid.UUID) (map[string]int64, error) {
	args := m.Called(db, hospitalID)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockBookingRepository) FindVisited(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Booking, error) {
	args := m.Called(db, hospitalID)
	bookings, _ := args.Get(0).([]entity.Booking)
	return bookings, args.Error(1)
}

type mockDonationRequestRepository struct {
	mock.Mock
}

func (m *mockDonationRequestRepository) Create(db *gorm.DB, request *entity.DonationRequest) error {
	args := m.Called(db, request)
	return args.Error(0)
}

func (m *mockDonationRequestRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.DonationRequest, error) {
	args := m.Called(db, id, hospitalID)
	request, _ := args.Get(0).(*entity.DonationRequest)
	return request, args.Error(1)
}

func (m *mockDonationRequestRepository) FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.DonationRequest, error) {
	args := m.Called(db, hospitalID, token)
	request, _ := args.Get(0).(*entity.DonationRequest)
	return request, args.Error(1)
}

func (m *mockDonationRequestRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.DonationRequest, error) {
	args := m.Called(db, hospitalID)
	requests, _ := args.Get(0).([]entity.DonationRequest)
	return requests, args.Error(1)
}

func (m *mockDonationRequestRepository) FindActiveByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.DonationRequest, error) {
	args := m.Called(db, hospitalID, from, to)
	requests, _ := args.Get(0).([]entity.DonationRequest)
	return requests, args.Error(1)
}

func (m *mockDonationRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update repository.BookingStatusUpdate) (int64, error) {
	args := m.Called(db, id, hospitalID, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDonationRequestRepository) Save(db *gorm.DB, request *entity.DonationRequest) error {
	args := m.Called(db, request)
	return args.Error(0)
}

func (m *mockDonationRequestRepository) FindAll(db *gorm.DB) ([]entity.DonationRequest, error) {
	args := m.Called(db)
	requests, _ := args.Get(0).([]entity.DonationRequest)
	return requests, args.Error(1)
}

type mockPatientRepository struct {
	mock.Mock
}

func (m *mockPatientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(db, patient)
	return args.Error(0)
}

func (m *mockPatientRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Patient, error) {
	args := m.Called(db, id, hospitalID)
	patient, _ := args.Get(0).(*entity.Patient)
	return patient, args.Error(1)
}

func (m *mockPatientRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Patient, error) {
	args := m.Called(db, hospitalID)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

func (m *mockPatientRepository) FindByMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Patient, error) {
	args := m.Called(db, hospitalID, mrid)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

func (m *mockPatientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(db, patient)
	return args.Error(0)
}

func (m *mockPatientRepository) Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error) {
	args := m.Called(db, id, hospitalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPatientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	args := m.Called(db)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByRole(db *gorm.DB, role string) ([]entity.User, error) {
	args := m.Called(db, role)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) FindStaffByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.User, error) {
	args := m.Called(db, hospitalID)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) Update(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *mockUserRepository) UpdateLastLogin(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *mockUserRepository) SetBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error) {
	args := m.Called(db, id, blocked)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *mockUserRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	args := m.Called(db)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

type mockBloodUnitRepository struct {
	mock.Mock
}

func (m *mockBloodUnitRepository) Create(db *gorm.DB, unit *entity.BloodUnit) error {
	args := m.Called(db, unit)
	return args.Error(0)
}

func (m *mockBloodUnitRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.BloodUnit, error) {
	args := m.Called(db, id, hospitalID)
	unit, _ := args.Get(0).(*entity.BloodUnit)
	return unit, args.Error(1)
}

func (m *mockBloodUnitRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodUnit, error) {
	args := m.Called(db, hospitalID)
	units, _ := args.Get(0).([]entity.BloodUnit)
	return units, args.Error(1)
}

func (m *mockBloodUnitRepository) Save(db *gorm.DB, unit *entity.BloodUnit) error {
	args := m.Called(db, unit)
	return args.Error(0)
}

func (m *mockBloodUnitRepository) Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error) {
	args := m.Called(db, id, hospitalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBloodUnitRepository) Availability(db *gorm.DB, hospitalID uuid.UUID, bloodGroup string, now time.Time) ([]repository.BloodGroupAvailability, error) {
	args := m.Called(db, hospitalID, bloodGroup, now)
	rows, _ := args.Get(0).([]repository.BloodGroupAvailability)
	return rows, args.Error(1)
}

func (m *mockBloodUnitRepository) Reserve(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(db, id, hospitalID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBloodUnitRepository) ExpiringSoon(db *gorm.DB, hospitalID uuid.UUID, now, until time.Time) ([]entity.BloodUnit, error) {
	args := m.Called(db, hospitalID, now, until)
	units, _ := args.Get(0).([]entity.BloodUnit)
	return units, args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(db *gorm.DB, recipientID uuid.UUID, notifType, title, message string, data map[string]interface{}) {
	m.Called(db, recipientID, notifType, title, message, data)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) Log(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail map[string]interface{}) error {
	args := m.Called(tx, userID, action, entityName, entityID, detail)
	return args.Error(0)
}

type appointmentMocks struct {
	bookings   *mockBookingRepository
	requests   *mockDonationRequestRepository
	patients   *mockPatientRepository
	users      *mockUserRepository
	units      *mockBloodUnitRepository
	dispatcher *mockDispatcher
	audit      *mockAuditService
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, sqlMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, *appointmentMocks, sqlmock.Sqlmock) {
	db, sqlMock := newTestDB(t)

	m := &appointmentMocks{
		bookings:   new(mockBookingRepository),
		requests:   new(mockDonationRequestRepository),
		patients:   new(mockPatientRepository),
		users:      new(mockUserRepository),
		units:      new(mockBloodUnitRepository),
		dispatcher: new(mockDispatcher),
		audit:      new(mockAuditService),
	}

	u := NewAppointmentUsecase(db, newTestLogger(), m.bookings, m.requests, m.patients, m.users, m.units, m.dispatcher, m.audit)
	return u, m, sqlMock
}

func mustDate(t *testing.T, s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestMergeAppointments(t *testing.T) {
	day1, _ := time.Parse("2006-01-02", "2026-07-01")
	day2, _ := time.Parse("2006-01-02", "2026-07-02")

	bookings := []entity.Booking{
		{BookingCode: "BB-20260702-AAAAAA", Date: day2, Time: "09:00 AM"},
		{BookingCode: "BB-20260701-CCCCCC", Date: day1, Time: "9:00 AM"},
		{BookingCode: "BB-20260701-BBBBBB", Date: day1, Time: "09:00 AM"},
	}
	requests := []entity.DonationRequest{
		{TokenNumber: "AB12", DonorName: "Donor", ScheduledDate: day1, ScheduledTime: "10:00 AM"},
		{TokenNumber: "AA11", DonorName: "Other", ScheduledDate: day1, ScheduledTime: "09:00 AM"},
	}

	merged := mergeAppointments(bookings, requests)
	require.Len(t, merged, 5)

	codes := make([]string, len(merged))
	for i, a := range merged {
		codes[i] = a.BookingCode
	}

	// Days first, then the stored time string compared lexicographically,
	// so "10:00 AM" lands before "9:00 AM". Equal slots tie-break on code.
	require.Equal(t, []string{
		"AA11",                 // day1 09:00 AM
		"BB-20260701-BBBBBB",   // day1 09:00 AM, code after AA11
		"AB12",                 // day1 10:00 AM
		"BB-20260701-CCCCCC",   // day1 9:00 AM sorts last within the day
		"BB-20260702-AAAAAA",   // day2
	}, codes)

	require.True(t, merged[2].IsDonationRequest)
	require.False(t, merged[1].IsDonationRequest)
}

func TestGenerateTokenNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{2}[0-9]{2}$`)
	for i := 0; i < 200; i++ {
		token := generateTokenNumber()
		require.Regexp(t, pattern, token)
	}
}

func TestRandomIndexBounds(t *testing.T) {
	// Every index in [0, n) must be reachable and nothing outside it.
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := randomIndex(26)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 26)
		seen[v] = true
	}
	require.Len(t, seen, 26)
}

func TestGenerateBookingCode(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-07-01")
	pattern := regexp.MustCompile(`^BB-20260701-[0-9A-F]{6}$`)
	for i := 0; i < 50; i++ {
		require.Regexp(t, pattern, generateBookingCode(date))
	}
}

func TestFindByToken(t *testing.T) {
	hospitalID := uuid.New()

	t.Run("falls back to donation request", func(t *testing.T) {
		u, m, _ := newAppointmentUsecase(t)

		m.bookings.On("FindByToken", mock.Anything, hospitalID, "AB12").Return(nil, nil)
		m.requests.On("FindByToken", mock.Anything, hospitalID, "AB12").Return(&entity.DonationRequest{
			ID:            uuid.New(),
			DonorName:     "Jane Donor",
			TokenNumber:   "AB12",
			ScheduledDate: mustDate(t, "2026-07-01"),
			Status:        entity.DonationRequestStatusBooked,
			HospitalID:    hospitalID,
		}, nil)

		resp, err := u.FindByToken(context.Background(), hospitalID, "AB12")
		require.NoError(t, err)
		require.True(t, resp.IsDonationRequest)
		require.Equal(t, "AB12", resp.BookingCode)
		require.Equal(t, "Jane Donor", resp.DonorName)
	})

	t.Run("booking wins over request", func(t *testing.T) {
		u, m, _ := newAppointmentUsecase(t)

		m.bookings.On("FindByToken", mock.Anything, hospitalID, "XY99").Return(&entity.Booking{
			ID:          uuid.New(),
			BookingCode: "BB-20260701-0A0B0C",
			TokenNumber: "XY99",
			HospitalID:  hospitalID,
		}, nil)

		resp, err := u.FindByToken(context.Background(), hospitalID, "XY99")
		require.NoError(t, err)
		require.False(t, resp.IsDonationRequest)
		require.Equal(t, "BB-20260701-0A0B0C", resp.BookingCode)
		m.requests.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found on both sides", func(t *testing.T) {
		u, m, _ := newAppointmentUsecase(t)

		m.bookings.On("FindByToken", mock.Anything, hospitalID, "ZZ00").Return(nil, nil)
		m.requests.On("FindByToken", mock.Anything, hospitalID, "ZZ00").Return(nil, nil)

		_, err := u.FindByToken(context.Background(), hospitalID, "ZZ00")
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestUpdateDonationRequestStatusInvalid(t *testing.T) {
	u, _, _ := newAppointmentUsecase(t)

	err := u.UpdateDonationRequestStatus(context.Background(), uuid.New(), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: "teleported",
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAcceptDonationRequest(t *testing.T) {
	hospitalID := uuid.New()
	donorID := uuid.New()
	requestID := uuid.New()
	scheduled := mustDate(t, "2026-07-10")

	t.Run("creates confirmed booking with token", func(t *testing.T) {
		u, m, sqlMock := newAppointmentUsecase(t)

		request := &entity.DonationRequest{
			ID:            requestID,
			DonorID:       &donorID,
			RequesterID:   uuid.New(),
			DonorName:     "Jane Donor",
			BloodGroup:    "O+",
			ScheduledDate: scheduled,
			Status:        entity.DonationRequestStatusPending,
			HospitalID:    hospitalID,
		}

		m.requests.On("FindByID", mock.Anything, requestID, hospitalID).Return(request, nil)

		sqlMock.ExpectBegin()
		m.requests.On("Save", mock.Anything, request).Return(nil)
		m.bookings.On("FindDuplicate", mock.Anything, hospitalID, mock.AnythingOfType("string"), &donorID, scheduled).Return(nil, nil)

		var created *entity.Booking
		m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Booking)
		}).Return(nil)

		m.audit.On("Log", mock.Anything, (*uuid.UUID)(nil), entity.AuditActionDonationAccept, "donation_request", requestID.String(), mock.Anything).Return(nil)
		sqlMock.ExpectCommit()

		m.dispatcher.On("Dispatch", mock.Anything, donorID, entity.NotificationTypeDonationAccepted, mock.Anything, mock.Anything, mock.Anything).Return()

		err := u.UpdateDonationRequestStatus(context.Background(), hospitalID, requestID, &dto.UpdateAppointmentStatusRequest{
			Status: string(entity.DonationRequestStatusAccepted),
		})
		require.NoError(t, err)

		require.Equal(t, entity.DonationRequestStatusAccepted, request.Status)
		require.Regexp(t, `^[A-Z]{2}[0-9]{2}$`, request.TokenNumber)

		require.NotNil(t, created)
		require.Equal(t, entity.BookingStatusConfirmed, created.Status)
		require.Equal(t, request.TokenNumber, created.TokenNumber)
		require.Equal(t, "Jane Donor", created.DonorName)
		require.Equal(t, scheduled, created.Date)
		// No scheduled time on the request means the default slot.
		require.Equal(t, "09:00 AM", created.Time)

		require.NoError(t, sqlMock.ExpectationsWereMet())
		m.dispatcher.AssertExpectations(t)
	})

	t.Run("duplicate probe skips booking creation", func(t *testing.T) {
		u, m, sqlMock := newAppointmentUsecase(t)

		request := &entity.DonationRequest{
			ID:            requestID,
			DonorID:       &donorID,
			RequesterID:   uuid.New(),
			ScheduledDate: scheduled,
			Status:        entity.DonationRequestStatusPending,
			TokenNumber:   "QK57",
			HospitalID:    hospitalID,
		}

		m.requests.On("FindByID", mock.Anything, requestID, hospitalID).Return(request, nil)

		sqlMock.ExpectBegin()
		m.requests.On("Save", mock.Anything, request).Return(nil)
		m.bookings.On("FindDuplicate", mock.Anything, hospitalID, "QK57", &donorID, scheduled).Return(&entity.Booking{ID: uuid.New()}, nil)
		sqlMock.ExpectCommit()

		m.dispatcher.On("Dispatch", mock.Anything, donorID, entity.NotificationTypeDonationAccepted, mock.Anything, mock.Anything, mock.Anything).Return()

		err := u.UpdateDonationRequestStatus(context.Background(), hospitalID, requestID, &dto.UpdateAppointmentStatusRequest{
			Status: string(entity.DonationRequestStatusAccepted),
		})
		require.NoError(t, err)

		// Existing token survives and no second booking is written.
		require.Equal(t, "QK57", request.TokenNumber)
		m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestAcceptThenListDay(t *testing.T) {
	hospitalID := uuid.New()
	donorID := uuid.New()
	patientID := uuid.New()
	requestID := uuid.New()
	scheduled := mustDate(t, "2026-07-10")

	u, m, sqlMock := newAppointmentUsecase(t)

	request := &entity.DonationRequest{
		ID:            requestID,
		DonorID:       &donorID,
		RequesterID:   uuid.New(),
		PatientID:     &patientID,
		DonorName:     "Jane Donor",
		BloodGroup:    "O+",
		ScheduledDate: scheduled,
		ScheduledTime: "10:30 AM",
		Status:        entity.DonationRequestStatusPending,
		HospitalID:    hospitalID,
	}

	m.requests.On("FindByID", mock.Anything, requestID, hospitalID).Return(request, nil)

	sqlMock.ExpectBegin()
	m.requests.On("Save", mock.Anything, request).Return(nil)
	m.bookings.On("FindDuplicate", mock.Anything, hospitalID, mock.AnythingOfType("string"), &donorID, scheduled).Return(nil, nil)
	m.patients.On("FindByID", mock.Anything, patientID, hospitalID).Return(&entity.Patient{
		ID:   patientID,
		Name: "Needy Patient",
		MRID: "MR-1001",
	}, nil)

	var created *entity.Booking
	m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Booking)
	}).Return(nil)
	m.audit.On("Log", mock.Anything, (*uuid.UUID)(nil), entity.AuditActionDonationAccept, "donation_request", requestID.String(), mock.Anything).Return(nil)
	sqlMock.ExpectCommit()

	m.dispatcher.On("Dispatch", mock.Anything, donorID, entity.NotificationTypeDonationAccepted, mock.Anything, mock.Anything, mock.Anything).Return()

	err := u.UpdateDonationRequestStatus(context.Background(), hospitalID, requestID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.DonationRequestStatusAccepted),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	// The accepted request stays visible in the day view; the new booking
	// joins it as the single confirmed entry carrying the patient fields.
	m.bookings.On("FindByDateRange", mock.Anything, hospitalID, scheduled, scheduled.Add(24*time.Hour)).
		Return([]entity.Booking{*created}, nil)
	m.requests.On("FindActiveByDateRange", mock.Anything, hospitalID, scheduled, scheduled.Add(24*time.Hour)).
		Return([]entity.DonationRequest{*request}, nil)

	list, err := u.ListByDate(context.Background(), hospitalID, scheduled)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	var confirmed []dto.AppointmentResponse
	for _, a := range list.Appointments {
		if a.Status == string(entity.BookingStatusConfirmed) {
			confirmed = append(confirmed, a)
		}
	}
	require.Len(t, confirmed, 1)
	require.Equal(t, "Needy Patient", confirmed[0].PatientName)
	require.Equal(t, "MR-1001", confirmed[0].PatientMRID)
	require.Equal(t, request.TokenNumber, confirmed[0].TokenNumber)
}

func TestRescheduleDonationRequest(t *testing.T) {
	hospitalID := uuid.New()
	donorID := uuid.New()
	requestID := uuid.New()
	bookingID := uuid.New()
	oldDate := mustDate(t, "2026-07-10")
	newDate := mustDate(t, "2026-07-20")

	u, m, sqlMock := newAppointmentUsecase(t)

	request := &entity.DonationRequest{
		ID:            requestID,
		DonorID:       &donorID,
		RequesterID:   uuid.New(),
		ScheduledDate: oldDate,
		ScheduledTime: "09:00 AM",
		Status:        entity.DonationRequestStatusAccepted,
		TokenNumber:   "AB12",
		HospitalID:    hospitalID,
	}

	sqlMock.ExpectBegin()
	m.requests.On("FindByID", mock.Anything, requestID, hospitalID).Return(request, nil)
	m.requests.On("Save", mock.Anything, request).Return(nil)
	m.bookings.On("FindByToken", mock.Anything, hospitalID, "AB12").Return(&entity.Booking{
		ID:         bookingID,
		HospitalID: hospitalID,
	}, nil)
	m.bookings.On("Reschedule", mock.Anything, bookingID, hospitalID, newDate, "11:00 AM").Return(int64(1), nil)
	m.audit.On("Log", mock.Anything, (*uuid.UUID)(nil), entity.AuditActionDonationReschedule, "donation_request", requestID.String(), mock.Anything).Return(nil)
	sqlMock.ExpectCommit()

	m.dispatcher.On("Dispatch", mock.Anything, donorID, entity.NotificationTypeDonationRescheduled, mock.Anything, mock.Anything, mock.Anything).Return()

	err := u.RescheduleDonationRequest(context.Background(), hospitalID, requestID, &dto.RescheduleRequest{
		Date: "2026-07-20",
		Time: "11:00 AM",
	})
	require.NoError(t, err)

	// Rescheduling forces the request back to booked and moves the slot.
	require.Equal(t, entity.DonationRequestStatusBooked, request.Status)
	require.Equal(t, newDate, request.ScheduledDate)
	require.Equal(t, "11:00 AM", request.ScheduledTime)

	m.bookings.AssertExpectations(t)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreateBookingDefaults(t *testing.T) {
	hospitalID := uuid.New()
	u, m, _ := newAppointmentUsecase(t)

	var created *entity.Booking
	m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Booking)
	}).Return(nil)
	m.audit.On("Log", mock.Anything, (*uuid.UUID)(nil), entity.AuditActionBookingCreate, "booking", mock.Anything, mock.Anything).Return(nil)

	resp, err := u.CreateBooking(context.Background(), hospitalID, &dto.CreateBookingRequest{
		DonorName:  "Walk In",
		BloodGroup: "A+",
		Date:       "2026-07-01",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, "09:00 AM", created.Time)
	require.Equal(t, entity.BookingStatusConfirmed, created.Status)
	require.Regexp(t, `^BB-20260701-[0-9A-F]{6}$`, created.BookingCode)
	require.Regexp(t, `^[A-Z]{2}[0-9]{2}$`, created.TokenNumber)
	require.Equal(t, created.BookingCode, resp.BookingCode)
}

func TestCreateBookingInvalidDate(t *testing.T) {
	u, _, _ := newAppointmentUsecase(t)

	_, err := u.CreateBooking(context.Background(), uuid.New(), &dto.CreateBookingRequest{
		DonorName: "Walk In",
		Date:      "01-07-2026",
	})
	require.ErrorIs(t, err, ErrInvalidDateFormat)
}
