package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/response"
	"bloodbank-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// stubAppointmentUsecase implements usecase.AppointmentUsecase with
// overridable function fields so each test wires only what it exercises.
type stubAppointmentUsecase struct {
	listByDate  func(ctx context.Context, hospitalID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error)
	findByToken func(ctx context.Context, hospitalID uuid.UUID, token string) (*dto.AppointmentResponse, error)
}

func (s *stubAppointmentUsecase) ListByDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error) {
	return s.listByDate(ctx, hospitalID, date)
}

func (s *stubAppointmentUsecase) CreateBooking(ctx context.Context, hospitalID uuid.UUID, req *dto.CreateBookingRequest) (*dto.AppointmentResponse, error) {
	panic("not wired")
}

func (s *stubAppointmentUsecase) FindByToken(ctx context.Context, hospitalID uuid.UUID, token string) (*dto.AppointmentResponse, error) {
	return s.findByToken(ctx, hospitalID, token)
}

func (s *stubAppointmentUsecase) UpdateStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error {
	panic("not wired")
}

func (s *stubAppointmentUsecase) Reschedule(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error {
	panic("not wired")
}

func (s *stubAppointmentUsecase) CreateDonationRequest(ctx context.Context, requesterID uuid.UUID, requesterName string, req *dto.CreateDonationRequestRequest) (*dto.DonationRequestResponse, error) {
	panic("not wired")
}

func (s *stubAppointmentUsecase) ListDonationRequests(ctx context.Context, hospitalID uuid.UUID) (*dto.DonationRequestListResponse, error) {
	panic("not wired")
}

func (s *stubAppointmentUsecase) UpdateDonationRequestStatus(ctx context.Context, hospitalID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) error {
	panic("not wired")
}

func (s *stubAppointmentUsecase) RescheduleDonationRequest(ctx context.Context, hospitalID, id uuid.UUID, req *dto.RescheduleRequest) error {
	panic("not wired")
}

func (s *stubAppointmentUsecase) Analytics(ctx context.Context, hospitalID uuid.UUID) (*dto.AnalyticsResponse, error) {
	panic("not wired")
}

func (s *stubAppointmentUsecase) VisitedDonors(ctx context.Context, hospitalID uuid.UUID) (*dto.AppointmentListResponse, error) {
	panic("not wired")
}

func scopedRequest(method, target string, hospitalID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), middleware.HospitalIDKey, hospitalID)
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestBloodbankHandlerFindByToken(t *testing.T) {
	hospitalID := uuid.New()

	t.Run("returns the appointment for a token", func(t *testing.T) {
		stub := &stubAppointmentUsecase{
			findByToken: func(ctx context.Context, gotHospital uuid.UUID, token string) (*dto.AppointmentResponse, error) {
				require.Equal(t, hospitalID, gotHospital)
				require.Equal(t, "AB12", token)
				return &dto.AppointmentResponse{
					ID:                uuid.New(),
					BookingCode:       "AB12",
					DonorName:         "Jane Donor",
					TokenNumber:       "AB12",
					IsDonationRequest: true,
				}, nil
			},
		}
		h := NewBloodbankHandler(stub, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/bloodbank/bookings/token/{token}", h.FindByToken).Methods(http.MethodGet)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, scopedRequest(http.MethodGet, "/bloodbank/bookings/token/AB12", hospitalID))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeResponse(t, rec)
		require.True(t, body.Success)

		data, ok := body.Data.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "Jane Donor", data["donor_name"])
		require.Equal(t, true, data["is_donation_request"])
	})

	t.Run("unknown token maps to 404", func(t *testing.T) {
		stub := &stubAppointmentUsecase{
			findByToken: func(ctx context.Context, gotHospital uuid.UUID, token string) (*dto.AppointmentResponse, error) {
				return nil, usecase.ErrAppointmentNotFound
			},
		}
		h := NewBloodbankHandler(stub, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/bloodbank/bookings/token/{token}", h.FindByToken).Methods(http.MethodGet)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, scopedRequest(http.MethodGet, "/bloodbank/bookings/token/ZZ00", hospitalID))

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeResponse(t, rec)
		require.False(t, body.Success)
		require.Equal(t, "Appointment not found", body.Message)
	})

	t.Run("missing hospital scope is forbidden", func(t *testing.T) {
		h := NewBloodbankHandler(&stubAppointmentUsecase{}, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/bloodbank/bookings/token/{token}", h.FindByToken).Methods(http.MethodGet)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bloodbank/bookings/token/AB12", nil))

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBloodbankHandlerAppointmentsDate(t *testing.T) {
	hospitalID := uuid.New()

	t.Run("rejects a malformed date", func(t *testing.T) {
		h := NewBloodbankHandler(&stubAppointmentUsecase{}, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.Appointments(rec, scopedRequest(http.MethodGet, "/bloodbank/bookings?date=07-01-2026", hospitalID))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("passes the parsed date through", func(t *testing.T) {
		var gotDate time.Time
		stub := &stubAppointmentUsecase{
			listByDate: func(ctx context.Context, gotHospital uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error) {
				gotDate = date
				return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 0}, nil
			},
		}
		h := NewBloodbankHandler(stub, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.Appointments(rec, scopedRequest(http.MethodGet, "/bloodbank/bookings?date=2026-07-01", hospitalID))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "2026-07-01", gotDate.Format("2006-01-02"))
	})
}
