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

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
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

// Create adds a blood unit to the inventory
// @Summary Create blood unit
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBloodUnitRequest true "Create Blood Unit Request"
// @Success 201 {object} response.Response
// @Router /inventory [post]
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.CreateBloodUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	unit, err := h.inventoryUsecase.Create(r.Context(), hospitalID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create blood unit")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Blood unit created successfully", unit)
}

// List returns all blood units in the hospital scope
// @Summary List blood units
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	units, err := h.inventoryUsecase.List(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list blood units")
		return
	}

	response.Success(w, http.StatusOK, "Blood units retrieved successfully", dto.BloodUnitListResponse{
		Units: units,
		Total: len(units),
	})
}

// Get returns a single blood unit
// @Summary Get blood unit by ID
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blood Unit ID"
// @Success 200 {object} response.Response
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood unit ID", nil)
		return
	}

	unit, err := h.inventoryUsecase.GetByID(r.Context(), hospitalID, id)
	if err != nil {
		switch err {
		case usecase.ErrBloodUnitNotFound:
			response.NotFound(w, "Blood unit not found")
		default:
			response.InternalServerError(w, "Failed to get blood unit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood unit retrieved successfully", unit)
}

// Update modifies a blood unit
// @Summary Update blood unit
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Blood Unit ID"
// @Param request body dto.UpdateBloodUnitRequest true "Update Blood Unit Request"
// @Success 200 {object} response.Response
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood unit ID", nil)
		return
	}

	var req dto.UpdateBloodUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	unit, err := h.inventoryUsecase.Update(r.Context(), hospitalID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBloodUnitNotFound:
			response.NotFound(w, "Blood unit not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to update blood unit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood unit updated successfully", unit)
}

// Delete removes a blood unit
// @Summary Delete blood unit
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blood Unit ID"
// @Success 200 {object} response.Response
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood unit ID", nil)
		return
	}

	if err := h.inventoryUsecase.Delete(r.Context(), hospitalID, id, userID); err != nil {
		switch err {
		case usecase.ErrBloodUnitNotFound:
			response.NotFound(w, "Blood unit not found")
		default:
			response.InternalServerError(w, "Failed to delete blood unit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood unit deleted successfully", nil)
}

// Availability aggregates usable stock per blood group
// @Summary Blood availability by group
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param blood_group query string false "Restrict to one blood group"
// @Success 200 {object} response.Response
// @Router /inventory/availability [get]
func (h *InventoryHandler) Availability(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	availability, err := h.inventoryUsecase.Availability(r.Context(), hospitalID, r.URL.Query().Get("blood_group"))
	if err != nil {
		response.InternalServerError(w, "Failed to aggregate availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// Reserve transitions an available unit to reserved
// @Summary Reserve blood unit
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blood Unit ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/{id}/reserve [put]
func (h *InventoryHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blood unit ID", nil)
		return
	}

	if err := h.inventoryUsecase.Reserve(r.Context(), hospitalID, id, userID); err != nil {
		switch err {
		case usecase.ErrBloodUnitUnavailable:
			response.Conflict(w, "Blood unit is not available")
		default:
			response.InternalServerError(w, "Failed to reserve blood unit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood unit reserved successfully", nil)
}

// ExpiringSoon lists units expiring within the warning window
// @Summary List blood units expiring soon
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /inventory/expiring/soon [get]
func (h *InventoryHandler) ExpiringSoon(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	units, err := h.inventoryUsecase.ExpiringSoon(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list expiring units")
		return
	}

	response.Success(w, http.StatusOK, "Expiring units retrieved successfully", dto.BloodUnitListResponse{
		Units: units,
		Total: len(units),
	})
}
