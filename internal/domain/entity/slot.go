package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot represents one doctor-published unit of bookable time.
//
// The composite unique index on (doctor_id, scheduled_time) is load-bearing:
// it makes bulk publishing idempotent and it is the linkage key appointments
// use to release the slot on cancellation. IsBooked is flipped exclusively by
// the booking usecase through conditional updates; no other code path writes it.
type Slot struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_slots_doctor_time;index" json:"doctor_id"`
	ScheduledTime time.Time `gorm:"type:timestamp;not null;uniqueIndex:idx_slots_doctor_time" json:"scheduled_time"`
	IsBooked      bool      `gorm:"not null;default:false;index" json:"is_booked"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}
