package repository

import (
	"errors"
	"time"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

// BulkCreate relies on the (doctor_id, scheduled_time) unique index:
// ON CONFLICT DO NOTHING makes re-publishing the same timestamps a no-op,
// and RowsAffected reports only the rows actually inserted.
func (r *slotRepository) BulkCreate(db *gorm.DB, doctorID uuid.UUID, times []time.Time) (int64, error) {
	if len(times) == 0 {
		return 0, nil
	}

	slots := make([]entity.Slot, len(times))
	for i, t := range times {
		slots[i] = entity.Slot{
			DoctorID:      doctorID,
			ScheduledTime: t,
		}
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&slots)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindFutureByDoctorID(db *gorm.DB, doctorID uuid.UUID, now time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND scheduled_time >= ?", doctorID, now).
		Order("scheduled_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// TryClaim is the synchronization point of the whole booking protocol: a
// single conditional UPDATE evaluated by the database, never a read followed
// by a write. The affected-row count is the only authority on who won a race;
// 0 means the slot was already booked (or does not exist).
func (r *slotRepository) TryClaim(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_booked = ?", id, false).
		Update("is_booked", true)
	return result.RowsAffected, result.Error
}

// Release unsets the booked flag by the composite key. Appointments carry no
// slot foreign key, so this lookup is how cancellation finds its slot. A
// missing row is reported as 0 affected, which callers treat as best-effort.
func (r *slotRepository) Release(db *gorm.DB, doctorID uuid.UUID, scheduledTime time.Time) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("doctor_id = ? AND scheduled_time = ? AND is_booked = ?", doctorID, scheduledTime, true).
		Update("is_booked", false)
	return result.RowsAffected, result.Error
}

// DeleteIfFree guards against removing a slot out from under a live
// appointment: the is_booked predicate makes delete-vs-claim races safe.
func (r *slotRepository) DeleteIfFree(db *gorm.DB, doctorID uuid.UUID, id int) (int64, error) {
	result := db.Where("id = ? AND doctor_id = ? AND is_booked = ?", id, doctorID, false).
		Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}
