package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
)

// BookingToAppointment projects a Booking into the unified appointment view.
func BookingToAppointment(booking *entity.Booking) *dto.AppointmentResponse {
	if booking == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                booking.ID,
		BookingCode:       booking.BookingCode,
		DonorID:           booking.DonorID,
		DonorName:         booking.DonorName,
		BloodGroup:        booking.BloodGroup,
		Contact:           booking.Contact,
		Date:              booking.Date,
		Time:              booking.Time,
		Status:            string(booking.Status),
		HospitalID:        booking.HospitalID,
		TokenNumber:       booking.TokenNumber,
		PatientID:         booking.PatientID,
		PatientName:       booking.PatientName,
		PatientMRID:       booking.PatientMRID,
		WeightKg:          booking.WeightKg,
		BagSerialNumber:   booking.BagSerialNumber,
		RejectionReason:   booking.RejectionReason,
		IsDonationRequest: false,
	}
}

// DonationRequestToAppointment projects a DonationRequest into the same
// shape. The booking code derives from the token when present, otherwise
// from a truncated request ID; the displayed name falls back from donor to
// requester.
func DonationRequestToAppointment(request *entity.DonationRequest) *dto.AppointmentResponse {
	if request == nil {
		return nil
	}

	code := request.TokenNumber
	if code == "" {
		id := request.ID.String()
		if len(id) > 8 {
			id = id[:8]
		}
		code = "DR-" + id
	}

	return &dto.AppointmentResponse{
		ID:                request.ID,
		BookingCode:       code,
		DonorID:           request.DonorID,
		DonorName:         request.DisplayName(),
		BloodGroup:        request.BloodGroup,
		Contact:           request.Contact,
		Date:              request.ScheduledDate,
		Time:              request.ScheduledTime,
		Status:            string(request.Status),
		HospitalID:        request.HospitalID,
		TokenNumber:       request.TokenNumber,
		PatientID:         request.PatientID,
		RejectionReason:   request.RejectionReason,
		IsDonationRequest: true,
	}
}

// DonationRequestToResponse converts a DonationRequest entity to its DTO
func DonationRequestToResponse(request *entity.DonationRequest) *dto.DonationRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.DonationRequestResponse{
		ID:              request.ID,
		DonorID:         request.DonorID,
		RequesterID:     request.RequesterID,
		PatientID:       request.PatientID,
		DonorName:       request.DonorName,
		RequesterName:   request.RequesterName,
		BloodGroup:      request.BloodGroup,
		Contact:         request.Contact,
		ScheduledDate:   request.ScheduledDate,
		ScheduledTime:   request.ScheduledTime,
		Status:          string(request.Status),
		HospitalID:      request.HospitalID,
		TokenNumber:     request.TokenNumber,
		RejectionReason: request.RejectionReason,
		CreatedAt:       request.CreatedAt,
	}
}

// DonationRequestsToResponses converts a slice of entities to DTOs
func DonationRequestsToResponses(requests []entity.DonationRequest) []dto.DonationRequestResponse {
	responses := make([]dto.DonationRequestResponse, len(requests))
	for i, request := range requests {
		resp := DonationRequestToResponse(&request)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
