package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// LabTestToResponse converts a LabTest entity to LabTestResponse DTO
func LabTestToResponse(test *entity.LabTest) *dto.LabTestResponse {
	if test == nil {
		return nil
	}

	response := &dto.LabTestResponse{
		ID:            test.ID,
		PatientID:     test.PatientID,
		DoctorID:      test.DoctorID,
		TestName:      test.TestName,
		Status:        string(test.Status),
		Result:        test.Result,
		ScheduledDate: test.ScheduledDate.Format(dateLayout),
		CreatedAt:     test.CreatedAt,
		UpdatedAt:     test.UpdatedAt,
	}

	if test.Patient != nil {
		response.Patient = userToContact(test.Patient)
	}
	if test.Doctor != nil {
		response.Doctor = userToContact(test.Doctor)
	}

	return response
}

// LabTestsToResponses converts a slice of LabTest entities to DTOs
func LabTestsToResponses(tests []entity.LabTest) []dto.LabTestResponse {
	responses := make([]dto.LabTestResponse, len(tests))
	for i := range tests {
		resp := LabTestToResponse(&tests[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
