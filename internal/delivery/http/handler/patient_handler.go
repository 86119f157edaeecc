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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
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

// Create registers a patient record
// @Summary Create patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), hospitalID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// List returns all patients in the hospital scope
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param mrid query string false "Filter by medical record ID"
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	var (
		patients []dto.PatientResponse
		err      error
	)
	if mrid := r.URL.Query().Get("mrid"); mrid != "" {
		patients, err = h.patientUsecase.FindByMRID(r.Context(), hospitalID, mrid)
	} else {
		patients, err = h.patientUsecase.List(r.Context(), hospitalID)
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", dto.PatientListResponse{
		Patients: patients,
		Total:    len(patients),
	})
}

// Get returns a single patient
// @Summary Get patient by ID
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), hospitalID, id)
	if err != nil {
		switch err {
		case usecase.ErrPatientRecordNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// Update modifies a patient record
// @Summary Update patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	hospitalID, _, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), hospitalID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientRecordNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// Delete removes a patient record
// @Summary Delete patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hospitalID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), hospitalID, id, userID); err != nil {
		switch err {
		case usecase.ErrPatientRecordNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
