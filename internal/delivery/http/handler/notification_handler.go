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

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

// List returns the caller's notifications
// @Summary List notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.notificationUsecase.List(r.Context(), userID, unreadOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// MarkRead marks one notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), userID, id); err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to mark notification read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked read", nil)
}

// MarkAllRead marks every unread notification as read
// @Summary Mark all notifications read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	affected, err := h.notificationUsecase.MarkAllRead(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to mark notifications read")
		return
	}

	response.Success(w, http.StatusOK, "Notifications marked read", map[string]int64{"updated": affected})
}

// Send delivers a notification to another user
// @Summary Send notification
// @Tags Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendNotificationRequest true "Send Notification Request"
// @Success 201 {object} response.Response
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.notificationUsecase.Send(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to send notification")
		return
	}

	response.Success(w, http.StatusCreated, "Notification sent successfully", nil)
}
