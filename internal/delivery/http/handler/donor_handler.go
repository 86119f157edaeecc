package handler

import (
	"encoding/json"
	"net/http"

	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/domain/repository"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/response"
	"bloodbank-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DonorHandler struct {
	donorUsecase usecase.DonorUsecase
	validator    *validator.CustomValidator
}

func NewDonorHandler(donorUsecase usecase.DonorUsecase, validator *validator.CustomValidator) *DonorHandler {
	return &DonorHandler{
		donorUsecase: donorUsecase,
		validator:    validator,
	}
}

// Profile returns the authenticated donor's own profile
// @Summary Get own donor profile
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /donors/me [get]
func (h *DonorHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	donor, err := h.donorUsecase.GetByUserID(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor profile not found")
		default:
			response.InternalServerError(w, "Failed to get donor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donor profile retrieved successfully", donor)
}

// UpdateProfile updates the authenticated donor's own profile
// @Summary Update own donor profile
// @Tags Donors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDonorRequest true "Update Donor Request"
// @Success 200 {object} response.Response
// @Router /donors/me [put]
func (h *DonorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateDonorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donor, err := h.donorUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor profile not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to update donor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donor profile updated successfully", donor)
}

// Get returns a single donor by ID
// @Summary Get donor by ID
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Donor ID"
// @Success 200 {object} response.Response
// @Router /donors/{id} [get]
func (h *DonorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid donor ID", nil)
		return
	}

	donor, err := h.donorUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor not found")
		default:
			response.InternalServerError(w, "Failed to get donor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donor retrieved successfully", donor)
}

// Search filters donors by blood group, availability, and name
// @Summary Search donors
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param blood_group query string false "Blood group"
// @Param available query bool false "Only available donors"
// @Param name query string false "Name fragment"
// @Success 200 {object} response.Response
// @Router /donors [get]
func (h *DonorHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := repository.DonorSearchFilter{
		BloodGroup:    r.URL.Query().Get("blood_group"),
		AvailableOnly: r.URL.Query().Get("available") == "true",
		Name:          r.URL.Query().Get("name"),
	}

	donors, err := h.donorUsecase.Search(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search donors")
		return
	}

	response.Success(w, http.StatusOK, "Donors retrieved successfully", dto.DonorListResponse{
		Donors: donors,
		Total:  len(donors),
	})
}

// SearchByMRID looks up donors through bookings recorded for a patient MRID
// @Summary Search donors by patient MRID
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param mrid path string true "Medical record ID"
// @Success 200 {object} response.Response
// @Router /donors/search/mrid/{mrid} [get]
func (h *DonorHandler) SearchByMRID(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return
	}

	mrid := mux.Vars(r)["mrid"]
	donors, err := h.donorUsecase.SearchByMRID(r.Context(), hospitalID, mrid)
	if err != nil {
		response.InternalServerError(w, "Failed to search donors")
		return
	}

	response.Success(w, http.StatusOK, "Donors retrieved successfully", dto.DonorListResponse{
		Donors: donors,
		Total:  len(donors),
	})
}

// Eligibility evaluates a donor's eligibility right now
// @Summary Check donor eligibility
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Donor ID"
// @Success 200 {object} response.Response
// @Router /donors/{id}/eligibility [get]
func (h *DonorHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid donor ID", nil)
		return
	}

	result, err := h.donorUsecase.CheckEligibility(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor not found")
		default:
			response.InternalServerError(w, "Failed to check eligibility")
		}
		return
	}

	response.Success(w, http.StatusOK, "Eligibility evaluated", result)
}
