package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PublishSlotsRequest struct {
	Times []string `json:"times" validate:"required,min=1,dive,required"` // Format: YYYY-MM-DD HH:MM:SS
}

// Response DTOs

type PublishSlotsResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type SlotResponse struct {
	ID            int       `json:"slot_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	ScheduledTime string    `json:"scheduled_time"`
	IsBooked      bool      `json:"is_booked"`
	CreatedAt     time.Time `json:"created_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}
