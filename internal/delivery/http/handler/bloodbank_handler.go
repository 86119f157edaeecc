package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/response"
	"bloodbank-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BloodbankHandler serves the hospital-side appointment surface: the merged
// daily view, bookings, donation requests, token lookup, and dashboards.
type BloodbankHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewBloodbankHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *BloodbankHandler {
	return &BloodbankHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *BloodbankHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return uuid.Nil, false
	}
	return hospitalID, true
}

// Appointments returns the merged booking and donation request view for a day
// @Summary List appointments for a date
// @Tags Bloodbank
// @Security BearerAuth
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /bloodbank/bookings [get]
func (h *BloodbankHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	appointments, err := h.appointmentUsecase.ListByDate(r.Context(), hospitalID, date)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CreateBooking records a walk-in or scheduled donation booking
// @Summary Create booking
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Response
// @Router /bloodbank/bookings [post]
func (h *BloodbankHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.appointmentUsecase.CreateBooking(r.Context(), hospitalID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// FindByToken resolves a token number to its appointment
// @Summary Find appointment by token
// @Tags Bloodbank
// @Security BearerAuth
// @Produce json
// @Param token path string true "Token number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bloodbank/bookings/token/{token} [get]
func (h *BloodbankHandler) FindByToken(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	token := mux.Vars(r)["token"]
	appointment, err := h.appointmentUsecase.FindByToken(r.Context(), hospitalID, token)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to find appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// UpdateStatus changes an appointment's status, booking side first
// @Summary Update appointment status
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Update"
// @Success 200 {object} response.Response
// @Router /bloodbank/bookings/{id}/status [put]
func (h *BloodbankHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.UpdateStatus(r.Context(), hospitalID, id, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", nil)
}

// Reschedule moves a booking to a new date and time
// @Summary Reschedule booking
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Router /bloodbank/bookings/{id}/reschedule [put]
func (h *BloodbankHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.Reschedule(r.Context(), hospitalID, id, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to reschedule appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", nil)
}

// CreateDonationRequest files a donation pledge against a hospital
// @Summary Create donation request
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequestRequest true "Create Donation Request"
// @Success 201 {object} response.Response
// @Router /donation-requests [post]
func (h *BloodbankHandler) CreateDonationRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateDonationRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	requesterName, _ := middleware.GetUserEmailFromContext(r.Context())
	request, err := h.appointmentUsecase.CreateDonationRequest(r.Context(), userID, requesterName, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create donation request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Donation request created successfully", request)
}

// DonationRequests lists donation requests for the hospital
// @Summary List donation requests
// @Tags Bloodbank
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bloodbank/donation-requests [get]
func (h *BloodbankHandler) DonationRequests(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	requests, err := h.appointmentUsecase.ListDonationRequests(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list donation requests")
		return
	}

	response.Success(w, http.StatusOK, "Donation requests retrieved successfully", requests)
}

// UpdateDonationRequestStatus accepts, rejects, or completes a donation request
// @Summary Update donation request status
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Donation Request ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Update"
// @Success 200 {object} response.Response
// @Router /bloodbank/donation-requests/{id}/status [put]
func (h *BloodbankHandler) UpdateDonationRequestStatus(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid donation request ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.UpdateDonationRequestStatus(r.Context(), hospitalID, id, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Donation request not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status", nil)
		default:
			response.InternalServerError(w, "Failed to update donation request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donation request updated successfully", nil)
}

// RescheduleDonationRequest moves a request and its linked booking together
// @Summary Reschedule donation request
// @Tags Bloodbank
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Donation Request ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Router /bloodbank/donation-requests/{id}/reschedule [put]
func (h *BloodbankHandler) RescheduleDonationRequest(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid donation request ID", nil)
		return
	}

	var req dto.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.RescheduleDonationRequest(r.Context(), hospitalID, id, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Donation request not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to reschedule donation request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donation request rescheduled successfully", nil)
}

// Analytics returns the hospital dashboard numbers
// @Summary Hospital analytics
// @Tags Bloodbank
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bloodbank/analytics [get]
func (h *BloodbankHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	analytics, err := h.appointmentUsecase.Analytics(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to compute analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}

// VisitedDonors lists donors who arrived or completed a donation
// @Summary List visited donors
// @Tags Bloodbank
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bloodbank/visited-donors [get]
func (h *BloodbankHandler) VisitedDonors(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := h.scope(w, r)
	if !ok {
		return
	}

	visited, err := h.appointmentUsecase.VisitedDonors(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list visited donors")
		return
	}

	response.Success(w, http.StatusOK, "Visited donors retrieved successfully", visited)
}
