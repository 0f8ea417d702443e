package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

const slotTimeLayout = "2006-01-02 15:04:05"

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:            slot.ID,
		DoctorID:      slot.DoctorID,
		ScheduledTime: slot.ScheduledTime.Format(slotTimeLayout),
		IsBooked:      slot.IsBooked,
		CreatedAt:     slot.CreatedAt,
	}
}

// SlotsToResponses converts a slice of Slot entities to SlotResponse DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		resp := SlotToResponse(&slot)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
