package repository

import (
	"time"

	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	// BulkCreate inserts slots for the doctor, silently skipping
	// (doctor_id, scheduled_time) pairs that already exist.
	// Returns the number of rows actually inserted.
	BulkCreate(db *gorm.DB, doctorID uuid.UUID, times []time.Time) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Slot, error)
	// FindFutureByDoctorID returns the doctor's slots at or after now,
	// ascending by scheduled time.
	FindFutureByDoctorID(db *gorm.DB, doctorID uuid.UUID, now time.Time) ([]entity.Slot, error)
	// TryClaim atomically flips is_booked false->true.
	// Returns affected rows: 1 = claim won, 0 = already booked or missing.
	TryClaim(db *gorm.DB, id int) (int64, error)
	// Release flips is_booked true->false for the slot matching the
	// composite key. Returns affected rows.
	Release(db *gorm.DB, doctorID uuid.UUID, scheduledTime time.Time) (int64, error)
	// DeleteIfFree removes the doctor's slot only while it is unbooked.
	// Returns affected rows.
	DeleteIfFree(db *gorm.DB, doctorID uuid.UUID, id int) (int64, error)
}
