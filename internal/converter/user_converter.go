package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity (with optional profiles) to UserResponse DTO
func UserToResponse(user *entity.User, role string) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			UserID:         user.DoctorProfile.UserID,
			Specialization: user.DoctorProfile.Specialization,
			Biography:      user.DoctorProfile.Biography,
		}
	}
	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			UserID:      user.PatientProfile.UserID,
			DateOfBirth: user.PatientProfile.DateOfBirth.Format(dateLayout),
			Gender:      user.PatientProfile.Gender,
			Address:     user.PatientProfile.Address,
		}
	}

	return response
}
