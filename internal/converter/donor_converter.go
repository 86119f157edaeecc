package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// DonorToResponse converts a DonorProfile entity to DonorResponse DTO
func DonorToResponse(profile *entity.DonorProfile) *dto.DonorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DonorResponse{
		ID:                profile.ID,
		UserID:            profile.UserID,
		BloodGroup:        profile.BloodGroup,
		Contact:           profile.Contact,
		Age:               profile.Age,
		WeightKg:          profile.WeightKg,
		LastDonationDate:  profile.LastDonationDate,
		EligibilityStatus: profile.EligibilityStatus,
		EligibilityNotes:  profile.EligibilityNotes,
		Address:           profile.Address,
		Availability:      profile.Availability,
		ContactPreference: profile.ContactPreference,
		CreatedAt:         profile.CreatedAt,
	}

	// Include identity fields when the User relation was preloaded
	if profile.User.ID != uuid.Nil {
		response.Name = profile.User.FullName
		response.Email = profile.User.Email
	}

	return response
}

// DonorsToResponses converts a slice of DonorProfile entities to DTOs
func DonorsToResponses(profiles []entity.DonorProfile) []dto.DonorResponse {
	responses := make([]dto.DonorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DonorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
