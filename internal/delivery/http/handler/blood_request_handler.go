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

type BloodRequestHandler struct {
	requestUsecase usecase.BloodRequestUsecase
	validator      *validator.CustomValidator
}

func NewBloodRequestHandler(requestUsecase usecase.BloodRequestUsecase, validator *validator.CustomValidator) *BloodRequestHandler {
	return &BloodRequestHandler{
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

func (h *BloodRequestHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Hospital scope required")
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, uuid.Nil, false
	}
	return hospitalID, userID, true
}

// Create files a request for units out of inventory
// @Summary Create blood request
// @Tags BloodRequests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBloodRequestRequest true "Create Blood Request"
// @Success 201 {object} response.Response
// @Router /requests [post]
func (h *BloodRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.CreateBloodRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.Create(r.Context(), hospitalID, userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create blood request")
		return
	}

	response.Success(w, http.StatusCreated, "Blood request created successfully", request)
}

// List returns blood requests in the hospital scope
// @Summary List blood requests
// @Tags BloodRequests
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /requests [get]
func (h *BloodRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	requests, err := h.requestUsecase.List(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list blood requests")
		return
	}

	response.Success(w, http.StatusOK, "Blood requests retrieved successfully", dto.BloodRequestListResponse{
		Requests: requests,
		Total:    len(requests),
	})
}

// Get returns a single blood request
// @Summary Get blood request by ID
// @Tags BloodRequests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blood Request ID"
// @Success 200 {object} response.Response
// @Router /requests/{id} [get]
func (h *BloodRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood request ID", nil)
		return
	}

	request, err := h.requestUsecase.GetByID(r.Context(), hospitalID, id)
	if err != nil {
		switch err {
		case usecase.ErrBloodRequestNotFound:
			response.NotFound(w, "Blood request not found")
		default:
			response.InternalServerError(w, "Failed to get blood request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood request retrieved successfully", request)
}

// UpdateStatus moves a blood request through its lifecycle
// @Summary Update blood request status
// @Tags BloodRequests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Blood Request ID"
// @Param request body dto.UpdateBloodRequestStatusRequest true "Status Update"
// @Success 200 {object} response.Response
// @Router /requests/{id}/status [put]
func (h *BloodRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood request ID", nil)
		return
	}

	var req dto.UpdateBloodRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.UpdateStatus(r.Context(), hospitalID, id, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBloodRequestNotFound:
			response.NotFound(w, "Blood request not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status", nil)
		default:
			response.InternalServerError(w, "Failed to update blood request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood request updated successfully", request)
}
