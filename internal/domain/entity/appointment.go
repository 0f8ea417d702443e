package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked AppointmentStatus = "booked"
)

// Appointment links a patient and a doctor at a scheduled instant.
//
// There is intentionally no foreign key to the slot row: the appointment
// denormalizes (doctor_id, scheduled_time), and cancellation releases the
// slot by that composite key. The unique index mirrors the one on slots so
// a doctor can never hold two appointments for the same instant even if
// slot bookkeeping drifts.
type Appointment struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_doctor_time" json:"doctor_id"`
	ScheduledTime time.Time         `gorm:"type:timestamp;not null;uniqueIndex:idx_appointments_doctor_time" json:"scheduled_time"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
