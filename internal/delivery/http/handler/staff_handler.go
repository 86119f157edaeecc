package handler

import (
	"encoding/json"
	"net/http"

	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/response"
	"bloodbank-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
	validator    *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase: staffUsecase,
		validator:    validator,
	}
}

// Create adds a staff account under the blood bank
// @Summary Create staff member
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bloodbank/staff [post]
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	staff, err := h.staffUsecase.Create(r.Context(), hospitalID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrInvalidRole:
			response.Error(w, http.StatusBadRequest, "Invalid staff role", nil)
		default:
			response.InternalServerError(w, "Failed to create staff member")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Staff member created successfully", staff)
}

// List returns the blood bank's staff accounts
// @Summary List staff
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bloodbank/staff [get]
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return
	}

	staff, err := h.staffUsecase.List(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff retrieved successfully", dto.StaffListResponse{
		Staff: staff,
		Total: len(staff),
	})
}

// Delete removes a staff account
// @Summary Delete staff member
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Staff User ID"
// @Success 200 {object} response.Response
// @Router /bloodbank/staff/{id} [delete]
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	if err := h.staffUsecase.Delete(r.Context(), hospitalID, id, userID); err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found")
		default:
			response.InternalServerError(w, "Failed to delete staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member deleted successfully", nil)
}
