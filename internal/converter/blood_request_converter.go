package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
)

// BloodRequestToResponse converts a BloodRequest entity to its DTO
func BloodRequestToResponse(request *entity.BloodRequest) *dto.BloodRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.BloodRequestResponse{
		ID:              request.ID,
		HospitalID:      request.HospitalID,
		RequesterID:     request.RequesterID,
		PatientID:       request.PatientID,
		BloodGroup:      request.BloodGroup,
		UnitsRequested:  request.UnitsRequested,
		Urgency:         request.Urgency,
		Status:          string(request.Status),
		StockSufficient: request.StockSufficient,
		Notes:           request.Notes,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}
}

// BloodRequestsToResponses converts a slice of BloodRequest entities to DTOs
func BloodRequestsToResponses(requests []entity.BloodRequest) []dto.BloodRequestResponse {
	responses := make([]dto.BloodRequestResponse, len(requests))
	for i, request := range requests {
		resp := BloodRequestToResponse(&request)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
