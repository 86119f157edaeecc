package handler

import (
	"net/http"

	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// Users lists every account, optionally filtered by role
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	var (
		users interface{}
		err   error
	)
	if role != "" {
		users, err = h.adminUsecase.ListByRole(r.Context(), role)
	} else {
		users, err = h.adminUsecase.ListUsers(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// Donors lists every donor profile across hospitals
// @Summary List all donors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/donors [get]
func (h *AdminHandler) Donors(w http.ResponseWriter, r *http.Request) {
	donors, err := h.adminUsecase.ListDonors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list donors")
		return
	}

	response.Success(w, http.StatusOK, "Donors retrieved successfully", donors)
}

// Bloodbanks lists registered blood bank accounts
// @Summary List blood banks
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/bloodbanks [get]
func (h *AdminHandler) Bloodbanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.adminUsecase.ListByRole(r.Context(), entity.RoleBloodbank)
	if err != nil {
		response.InternalServerError(w, "Failed to list blood banks")
		return
	}

	response.Success(w, http.StatusOK, "Blood banks retrieved successfully", banks)
}

// Admins lists administrator accounts
// @Summary List admins
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/admins [get]
func (h *AdminHandler) Admins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminUsecase.ListByRole(r.Context(), entity.RoleAdmin)
	if err != nil {
		response.InternalServerError(w, "Failed to list admins")
		return
	}

	response.Success(w, http.StatusOK, "Admins retrieved successfully", admins)
}

// Patients lists patient records across hospitals
// @Summary List all patients
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/patients [get]
func (h *AdminHandler) Patients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.adminUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// DonationRequests lists donation requests across hospitals
// @Summary List all donation requests
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/donation-requests [get]
func (h *AdminHandler) DonationRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.adminUsecase.ListDonationRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list donation requests")
		return
	}

	response.Success(w, http.StatusOK, "Donation requests retrieved successfully", requests)
}

// Activities returns the recent audit trail
// @Summary List recent activities
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/activities [get]
func (h *AdminHandler) Activities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.adminUsecase.ListActivities(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list activities")
		return
	}

	response.Success(w, http.StatusOK, "Activities retrieved successfully", activities)
}

// Block disables a user account
// @Summary Block user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/block [put]
func (h *AdminHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

// Unblock re-enables a user account
// @Summary Unblock user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/unblock [put]
func (h *AdminHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *AdminHandler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.adminUsecase.SetBlocked(r.Context(), actorID, id, blocked); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	if blocked {
		response.Success(w, http.StatusOK, "User blocked successfully", nil)
		return
	}
	response.Success(w, http.StatusOK, "User unblocked successfully", nil)
}
