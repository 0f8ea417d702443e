package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ClaimSlotRequest struct {
	SlotID int `json:"slot_id" validate:"required,min=1"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID        `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	DoctorID      uuid.UUID        `json:"doctor_id"`
	ScheduledTime string           `json:"scheduled_time"`
	SlotID        int              `json:"slot_id,omitempty"`
	Status        string           `json:"status"`
	Patient       *ContactResponse `json:"patient,omitempty"`
	Doctor        *ContactResponse `json:"doctor,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ContactResponse is the minimal counterpart identity shown on listings
type ContactResponse struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
