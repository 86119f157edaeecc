package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:            patient.ID,
		HospitalID:    patient.HospitalID,
		Name:          patient.Name,
		BloodGroup:    patient.BloodGroup,
		MRID:          patient.MRID,
		Age:           patient.Age,
		Gender:        patient.Gender,
		Contact:       patient.Contact,
		RequiredUnits: patient.RequiredUnits,
		RequiredDate:  patient.RequiredDate,
		Notes:         patient.Notes,
		CreatedAt:     patient.CreatedAt,
		UpdatedAt:     patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
