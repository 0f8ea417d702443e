package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// slotID is the claimed slot's id for freshly created appointments; pass 0
// when listing (appointments store no slot reference).
func AppointmentToResponse(appointment *entity.Appointment, slotID int) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:            appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		ScheduledTime: appointment.ScheduledTime.Format(slotTimeLayout),
		SlotID:        slotID,
		Status:        string(appointment.Status),
		CreatedAt:     appointment.CreatedAt,
	}

	if appointment.Patient != nil {
		response.Patient = userToContact(appointment.Patient)
	}
	if appointment.Doctor != nil {
		response.Doctor = userToContact(appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i], 0)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func userToContact(user *entity.User) *dto.ContactResponse {
	return &dto.ContactResponse{
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
	}
}
