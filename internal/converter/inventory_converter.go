package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"
)

// BloodUnitToResponse converts a BloodUnit entity to its DTO
func BloodUnitToResponse(unit *entity.BloodUnit) *dto.BloodUnitResponse {
	if unit == nil {
		return nil
	}

	return &dto.BloodUnitResponse{
		ID:              unit.ID,
		HospitalID:      unit.HospitalID,
		BloodGroup:      unit.BloodGroup,
		Quantity:        unit.Quantity,
		UnitType:        unit.UnitType,
		CollectionDate:  unit.CollectionDate,
		ExpiryDate:      unit.ExpiryDate,
		Status:          string(unit.Status),
		BagSerialNumber: unit.BagSerialNumber,
		CreatedAt:       unit.CreatedAt,
		UpdatedAt:       unit.UpdatedAt,
	}
}

// BloodUnitsToResponses converts a slice of BloodUnit entities to DTOs
func BloodUnitsToResponses(units []entity.BloodUnit) []dto.BloodUnitResponse {
	responses := make([]dto.BloodUnitResponse, len(units))
	for i, unit := range units {
		resp := BloodUnitToResponse(&unit)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AvailabilityToResponses converts aggregation rows to DTOs
func AvailabilityToResponses(rows []repository.BloodGroupAvailability) []dto.BloodGroupAvailabilityResponse {
	responses := make([]dto.BloodGroupAvailabilityResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.BloodGroupAvailabilityResponse{
			BloodGroup:     row.BloodGroup,
			TotalQuantity:  row.TotalQuantity,
			UnitsCount:     row.UnitsCount,
			EarliestExpiry: row.EarliestExpiry,
		}
	}
	return responses
}
