package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:          notification.ID,
		RecipientID: notification.RecipientID,
		Type:        notification.Type,
		Title:       notification.Title,
		Message:     notification.Message,
		Data:        notification.Data,
		IsRead:      notification.IsRead,
		CreatedAt:   notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities to DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp := NotificationToResponse(&notification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ActivityToResponse converts an AuditLog entity to its DTO
func ActivityToResponse(log *entity.AuditLog) *dto.ActivityResponse {
	if log == nil {
		return nil
	}

	response := &dto.ActivityResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		response.UserName = log.User.FullName
	}
	return response
}

// ActivitiesToResponses converts a slice of AuditLog entities to DTOs
func ActivitiesToResponses(logs []entity.AuditLog) []dto.ActivityResponse {
	responses := make([]dto.ActivityResponse, len(logs))
	for i, log := range logs {
		resp := ActivityToResponse(&log)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
