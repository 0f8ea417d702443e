package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabTestStatus represents the status of a lab test
type LabTestStatus string

const (
	LabTestStatusOrdered   LabTestStatus = "ordered"
	LabTestStatusCompleted LabTestStatus = "completed"
)

// LabTest represents a lab test booked by a patient and resulted by a doctor
type LabTest struct {
	ID            int           `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	TestName      string        `gorm:"type:varchar(255);not null" json:"test_name"`
	Status        LabTestStatus `gorm:"type:varchar(20);not null;default:'ordered';index" json:"status"`
	Result        string        `gorm:"type:text" json:"result,omitempty"`
	ScheduledDate time.Time     `gorm:"type:date;not null" json:"scheduled_date"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (LabTest) TableName() string {
	return "lab_tests"
}

// IsCompleted checks if the test has a recorded result
func (t *LabTest) IsCompleted() bool {
	return t.Status == LabTestStatusCompleted
}
