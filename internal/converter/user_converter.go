package converter

import (
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	isActive := true
	if user.IsActive != nil {
		isActive = *user.IsActive
	}

	return &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		HospitalID: user.HospitalID,
		Phone:      user.Phone,
		IsActive:   isActive,
		IsBlocked:  user.IsBlocked,
		LastLogin:  user.LastLogin,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// UsersToResponses converts a slice of User entities to DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp := UserToResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// UserToStaffResponse converts a staff User to the staff DTO
func UserToStaffResponse(user *entity.User) *dto.StaffResponse {
	if user == nil {
		return nil
	}

	isActive := true
	if user.IsActive != nil {
		isActive = *user.IsActive
	}

	return &dto.StaffResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Phone:     user.Phone,
		IsActive:  isActive,
		CreatedAt: user.CreatedAt,
	}
}

// UsersToStaffResponses converts staff users to DTOs
func UsersToStaffResponses(users []entity.User) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(users))
	for i, user := range users {
		resp := UserToStaffResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
