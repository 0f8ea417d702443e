package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLabTestRequest struct {
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	TestName      string    `json:"test_name" validate:"required,min=2"`
	ScheduledDate string    `json:"scheduled_date" validate:"required"` // Format: YYYY-MM-DD
}

type RecordLabResultRequest struct {
	Result string `json:"result" validate:"required"`
}

// Response DTOs

type LabTestResponse struct {
	ID            int              `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	DoctorID      uuid.UUID        `json:"doctor_id"`
	TestName      string           `json:"test_name"`
	Status        string           `json:"status"`
	Result        string           `json:"result,omitempty"`
	ScheduledDate string           `json:"scheduled_date"`
	Patient       *ContactResponse `json:"patient,omitempty"`
	Doctor        *ContactResponse `json:"doctor,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type LabTestListResponse struct {
	LabTests []LabTestResponse `json:"lab_tests"`
	Total    int               `json:"total"`
}
