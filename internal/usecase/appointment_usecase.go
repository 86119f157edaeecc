package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPatientNotFound     = errors.New("patient not found")
)

const defaultAppointmentTime = "09:00 AM"

// AppointmentUsecase is the reconciliation layer over the Booking and
// DonationRequest collections: it presents the unified daily appointment
// view and keeps both sides aligned on status changes and reschedules.
type AppointmentUsecase interface {
	ListByDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error)
	CreateBooking(ctx context.Context, hospitalID uuid.UUID, req *dto.CreateBookingRequest) (*dto.AppointmentResponse, error)
	FindByToken(ctx context.Context, hospitalID uuid.UUID, token string) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error
	Reschedule(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error

	CreateDonationRequest(ctx context.Context, requesterID uuid.UUID, requesterName string, req *dto.CreateDonationRequestRequest) (*dto.DonationRequestResponse, error)
	ListDonationRequests(ctx context.Context, hospitalID uuid.UUID) (*dto.DonationRequestListResponse, error)
	UpdateDonationRequestStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error
	RescheduleDonationRequest(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error

	Analytics(ctx context.Context, hospitalID uuid.UUID) (*dto.AnalyticsResponse, error)
	VisitedDonors(ctx context.Context, hospitalID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	requestRepo repository.DonationRequestRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	unitRepo    repository.BloodUnitRepository
	dispatcher  service.NotificationDispatcher
	audit       service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	requestRepo repository.DonationRequestRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	unitRepo repository.BloodUnitRepository,
	dispatcher service.NotificationDispatcher,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		unitRepo:    unitRepo,
		dispatcher:  dispatcher,
		audit:       audit,
	}
}

// ListByDate merges the bookings and the active donation requests scheduled
// for one day into a single ordered list.
func (u *appointmentUsecase) ListByDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error) {
	from := startOfDay(date)
	to := from.Add(24 * time.Hour)

	db := u.db.WithContext(ctx)

	bookings, err := u.bookingRepo.FindByDateRange(db, hospitalID, from, to)
	if err != nil {
		u.log.Warnf("Failed to list bookings for %s: %+v", from.Format("2006-01-02"), err)
		return nil, err
	}

	requests, err := u.requestRepo.FindActiveByDateRange(db, hospitalID, from, to)
	if err != nil {
		u.log.Warnf("Failed to list donation requests for %s: %+v", from.Format("2006-01-02"), err)
		return nil, err
	}

	appointments := mergeAppointments(bookings, requests)
	return &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) CreateBooking(ctx context.Context, hospitalID uuid.UUID, req *dto.CreateBookingRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	timeStr := req.Time
	if timeStr == "" {
		timeStr = defaultAppointmentTime
	}

	booking := &entity.Booking{
		BookingCode: generateBookingCode(date),
		DonorID:     req.DonorID,
		DonorName:   req.DonorName,
		BloodGroup:  req.BloodGroup,
		Contact:     req.Contact,
		Date:        date,
		Time:        timeStr,
		Status:      entity.BookingStatusConfirmed,
		HospitalID:  hospitalID,
		TokenNumber: generateTokenNumber(),
		PatientID:   req.PatientID,
		PatientMRID: req.PatientMRID,
	}

	db := u.db.WithContext(ctx)

	if req.PatientID != nil {
		patient, err := u.patientRepo.FindByID(db, *req.PatientID, hospitalID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		booking.PatientName = patient.Name
		booking.PatientMRID = patient.MRID
	}

	if err := u.bookingRepo.Create(db, booking); err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	u.audit.Log(db, nil, entity.AuditActionBookingCreate, "booking", booking.ID.String(), map[string]interface{}{
		"token": booking.TokenNumber,
		"date":  booking.Date.Format("2006-01-02"),
	})

	u.log.Infof("Booking created: id=%s, token=%s, code=%s", booking.ID, booking.TokenNumber, booking.BookingCode)
	return converter.BookingToAppointment(booking), nil
}

// FindByToken looks up the booking for a queue token, falling back to the
// donation-request side when no booking carries it yet.
func (u *appointmentUsecase) FindByToken(ctx context.Context, hospitalID uuid.UUID, token string) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByToken(db, hospitalID, token)
	if err != nil {
		u.log.Warnf("Failed booking lookup by token %s: %+v", token, err)
		return nil, err
	}
	if booking != nil {
		return converter.BookingToAppointment(booking), nil
	}

	request, err := u.requestRepo.FindByToken(db, hospitalID, token)
	if err != nil {
		u.log.Warnf("Failed donation request lookup by token %s: %+v", token, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.DonationRequestToAppointment(request), nil
}

// UpdateStatus applies a status change to the booking with the given ID, or
// to the donation request with that ID when no booking matches.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error {
	db := u.db.WithContext(ctx)

	if entity.ValidBookingStatus(req.Status) {
		rows, err := u.bookingRepo.UpdateStatus(db, id, hospitalID, statusUpdate(req))
		if err != nil {
			u.log.Warnf("Failed booking status update %s: %+v", id, err)
			return err
		}
		if rows > 0 {
			u.audit.Log(db, nil, entity.AuditActionBookingStatus, "booking", id.String(), map[string]interface{}{
				"status": req.Status,
			})
			return nil
		}
	}

	// No booking matched; try the donation-request side.
	return u.UpdateDonationRequestStatus(ctx, hospitalID, id, req)
}

func (u *appointmentUsecase) UpdateDonationRequestStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error {
	if !entity.ValidDonationRequestStatus(req.Status) {
		return ErrInvalidStatus
	}

	db := u.db.WithContext(ctx)

	request, err := u.requestRepo.FindByID(db, id, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find donation request %s: %+v", id, err)
		return err
	}
	if request == nil {
		return ErrAppointmentNotFound
	}

	if entity.DonationRequestStatus(req.Status) == entity.DonationRequestStatusAccepted {
		return u.acceptDonationRequest(ctx, request, req)
	}

	rows, err := u.requestRepo.UpdateStatus(db, id, hospitalID, statusUpdate(req))
	if err != nil {
		u.log.Warnf("Failed donation request status update %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if entity.DonationRequestStatus(req.Status) == entity.DonationRequestStatusRejected {
		reason := ""
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		u.notifyRequest(db, request, entity.NotificationTypeDonationRejected,
			"Donation request rejected",
			fmt.Sprintf("Your donation request for %s was rejected. %s",
				request.ScheduledDate.Format("2006-01-02"), reason))
	}

	return nil
}

// acceptDonationRequest flips a request to accepted and guarantees a
// matching Booking exists. The duplicate probe and the create run inside one
// transaction so concurrent accepts cannot produce two bookings.
func (u *appointmentUsecase) acceptDonationRequest(ctx context.Context, request *entity.DonationRequest, req *dto.UpdateAppointmentStatusRequest) error {
	var created *entity.Booking

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request.Status = entity.DonationRequestStatusAccepted
		if request.TokenNumber == "" {
			request.TokenNumber = generateTokenNumber()
		}
		if err := u.requestRepo.Save(tx, request); err != nil {
			return err
		}

		// Idempotency probe: token or donor match on the same day and bank.
		existing, err := u.bookingRepo.FindDuplicate(tx, request.HospitalID, request.TokenNumber, request.DonorID, request.ScheduledDate)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		booking := &entity.Booking{
			BookingCode: generateBookingCode(request.ScheduledDate),
			DonorID:     request.DonorID,
			DonorName:   request.DisplayName(),
			BloodGroup:  request.BloodGroup,
			Contact:     request.Contact,
			Date:        request.ScheduledDate,
			Time:        request.ScheduledTime,
			Status:      entity.BookingStatusConfirmed,
			HospitalID:  request.HospitalID,
			TokenNumber: request.TokenNumber,
			PatientID:   request.PatientID,
		}
		if booking.Time == "" {
			booking.Time = defaultAppointmentTime
		}

		if request.PatientID != nil {
			patient, err := u.patientRepo.FindByID(tx, *request.PatientID, request.HospitalID)
			if err != nil {
				return err
			}
			if patient != nil {
				booking.PatientName = patient.Name
				booking.PatientMRID = patient.MRID
			}
		}

		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}
		created = booking

		u.audit.Log(tx, nil, entity.AuditActionDonationAccept, "donation_request", request.ID.String(), map[string]interface{}{
			"token":      request.TokenNumber,
			"booking_id": booking.ID.String(),
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to accept donation request %s: %+v", request.ID, err)
		return err
	}

	if created != nil {
		u.log.Infof("Donation request accepted: id=%s, booking=%s, token=%s", request.ID, created.ID, request.TokenNumber)
	}

	u.notifyRequest(u.db.WithContext(ctx), request, entity.NotificationTypeDonationAccepted,
		"Donation request accepted",
		fmt.Sprintf("Your donation on %s is confirmed. Your token is %s.",
			request.ScheduledDate.Format("2006-01-02"), request.TokenNumber))

	return nil
}

// Reschedule moves a booking to a new slot; when no booking matches the ID
// it falls through to the donation-request side.
func (u *appointmentUsecase) Reschedule(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	rows, err := u.bookingRepo.Reschedule(db, id, hospitalID, date, req.Time)
	if err != nil {
		u.log.Warnf("Failed booking reschedule %s: %+v", id, err)
		return err
	}
	if rows > 0 {
		u.audit.Log(db, nil, entity.AuditActionBookingReschedule, "booking", id.String(), map[string]interface{}{
			"date": req.Date,
			"time": req.Time,
		})
		booking, err := u.bookingRepo.FindByID(db, id, hospitalID)
		if err == nil && booking != nil && booking.DonorID != nil {
			u.dispatcher.Dispatch(db, *booking.DonorID, entity.NotificationTypeDonationRescheduled,
				"Appointment rescheduled",
				fmt.Sprintf("Your donation appointment was moved to %s %s.", req.Date, req.Time), nil)
		}
		return nil
	}

	return u.RescheduleDonationRequest(ctx, hospitalID, id, req)
}

// RescheduleDonationRequest moves a request to a new slot, forces it back to
// booked, and synchronizes the linked booking inside the same transaction.
// The link is resolved by token when the request has one, otherwise by
// (donor, previous date, hospital).
func (u *appointmentUsecase) RescheduleDonationRequest(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return ErrInvalidDateFormat
	}

	var request *entity.DonationRequest

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		request, err = u.requestRepo.FindByID(tx, id, hospitalID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrAppointmentNotFound
		}

		oldDate := request.ScheduledDate
		hadToken := request.TokenNumber != ""
		if !hadToken {
			request.TokenNumber = generateTokenNumber()
		}

		request.ScheduledDate = date
		request.ScheduledTime = req.Time
		request.Status = entity.DonationRequestStatusBooked
		if err := u.requestRepo.Save(tx, request); err != nil {
			return err
		}

		var linked *entity.Booking
		if hadToken {
			linked, err = u.bookingRepo.FindByToken(tx, hospitalID, request.TokenNumber)
		} else {
			linked, err = u.bookingRepo.FindDuplicate(tx, hospitalID, "", request.DonorID, oldDate)
		}
		if err != nil {
			return err
		}
		if linked != nil {
			if _, err := u.bookingRepo.Reschedule(tx, linked.ID, hospitalID, date, req.Time); err != nil {
				return err
			}
		}

		u.audit.Log(tx, nil, entity.AuditActionDonationReschedule, "donation_request", request.ID.String(), map[string]interface{}{
			"date": req.Date,
			"time": req.Time,
		})
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) {
			u.log.Warnf("Failed to reschedule donation request %s: %+v", id, err)
		}
		return err
	}

	u.notifyRequest(u.db.WithContext(ctx), request, entity.NotificationTypeDonationRescheduled,
		"Donation rescheduled",
		fmt.Sprintf("Your donation was rescheduled to %s %s. Your token is %s.",
			req.Date, req.Time, request.TokenNumber))

	return nil
}

func (u *appointmentUsecase) CreateDonationRequest(ctx context.Context, requesterID uuid.UUID, requesterName string, req *dto.CreateDonationRequestRequest) (*dto.DonationRequestResponse, error) {
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	request := &entity.DonationRequest{
		DonorID:       req.DonorID,
		RequesterID:   requesterID,
		PatientID:     req.PatientID,
		DonorName:     req.DonorName,
		RequesterName: requesterName,
		BloodGroup:    req.BloodGroup,
		Contact:       req.Contact,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		Status:        entity.DonationRequestStatusPending,
		HospitalID:    req.HospitalID,
	}

	// A donor submitting their own pledge carries their profile details.
	if req.DonorID != nil && request.DonorName == "" {
		donor, err := u.userRepo.FindByID(db, *req.DonorID)
		if err != nil {
			return nil, err
		}
		if donor != nil {
			request.DonorName = donor.FullName
			if request.BloodGroup == "" && donor.DonorProfile != nil {
				request.BloodGroup = donor.DonorProfile.BloodGroup
			}
		}
	}

	if err := u.requestRepo.Create(db, request); err != nil {
		u.log.Warnf("Failed to create donation request: %+v", err)
		return nil, err
	}

	u.log.Infof("Donation request created: id=%s, hospital=%s, date=%s", request.ID, request.HospitalID, req.ScheduledDate)
	return converter.DonationRequestToResponse(request), nil
}

func (u *appointmentUsecase) ListDonationRequests(ctx context.Context, hospitalID uuid.UUID) (*dto.DonationRequestListResponse, error) {
	requests, err := u.requestRepo.FindByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list donation requests: %+v", err)
		return nil, err
	}

	return &dto.DonationRequestListResponse{
		Requests: converter.DonationRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

func (u *appointmentUsecase) Analytics(ctx context.Context, hospitalID uuid.UUID) (*dto.AnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	byStatus, err := u.bookingRepo.CountByStatus(db, hospitalID)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindByHospital(db, hospitalID)
	if err != nil {
		return nil, err
	}

	staff, err := u.userRepo.FindStaffByHospital(db, hospitalID)
	if err != nil {
		return nil, err
	}

	availability, err := u.unitRepo.Availability(db, hospitalID, "", time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsResponse{
		BookingsByStatus: byStatus,
		TotalPatients:    int64(len(patients)),
		TotalStaff:       int64(len(staff)),
		Availability:     converter.AvailabilityToResponses(availability),
	}, nil
}

func (u *appointmentUsecase) VisitedDonors(ctx context.Context, hospitalID uuid.UUID) (*dto.AppointmentListResponse, error) {
	bookings, err := u.bookingRepo.FindVisited(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list visited donors: %+v", err)
		return nil, err
	}

	appointments := make([]dto.AppointmentResponse, len(bookings))
	for i, booking := range bookings {
		appointments[i] = *converter.BookingToAppointment(&booking)
	}

	return &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	}, nil
}

// notifyRequest addresses the donor when known, otherwise the requester.
func (u *appointmentUsecase) notifyRequest(db *gorm.DB, request *entity.DonationRequest, notifType, title, message string) {
	recipient := request.RequesterID
	if request.DonorID != nil {
		recipient = *request.DonorID
	}
	u.dispatcher.Dispatch(db, recipient, notifType, title, message, map[string]interface{}{
		"donation_request_id": request.ID.String(),
	})
}

// mergeAppointments projects both collections into the unified shape and
// orders them by date, then by the stored time string. The time comparison
// is plain lexicographic over whatever was stored, so "10:00 AM" sorts
// before "9:00 AM"; ties stay deterministic via the booking code.
func mergeAppointments(bookings []entity.Booking, requests []entity.DonationRequest) []dto.AppointmentResponse {
	merged := make([]dto.AppointmentResponse, 0, len(bookings)+len(requests))
	for i := range bookings {
		merged = append(merged, *converter.BookingToAppointment(&bookings[i]))
	}
	for i := range requests {
		merged = append(merged, *converter.DonationRequestToAppointment(&requests[i]))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date) {
			return merged[i].Date.Before(merged[j].Date)
		}
		if merged[i].Time != merged[j].Time {
			return merged[i].Time < merged[j].Time
		}
		return merged[i].BookingCode < merged[j].BookingCode
	})

	return merged
}

func statusUpdate(req *dto.UpdateAppointmentStatusRequest) repository.BookingStatusUpdate {
	return repository.BookingStatusUpdate{
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		WeightKg:        req.WeightKg,
		BagSerialNumber: req.BagSerialNumber,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// generateBookingCode generates a booking code: BB-YYYYMMDD-XXXXXX
func generateBookingCode(date time.Time) string {
	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return fmt.Sprintf("BB-%s-%06X", date.Format("20060102"), randomBytes)
}

// generateTokenNumber generates a queue token of two uppercase letters
// followed by two digits, e.g. "QK57". Each character is drawn uniformly.
// Tokens are not collision-checked; duplicates across bookings are
// tolerated.
func generateTokenNumber() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const digits = "0123456789"

	return string([]byte{
		letters[randomIndex(len(letters))],
		letters[randomIndex(len(letters))],
		digits[randomIndex(len(digits))],
		digits[randomIndex(len(digits))],
	})
}

// randomIndex returns a uniform random int in [0, n).
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return int(v.Int64())
}
