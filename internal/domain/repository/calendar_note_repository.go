package repository

import (
	"time"

	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarNoteRepository interface {
	Create(db *gorm.DB, note *entity.CalendarNote) error
	FindByID(db *gorm.DB, id int) (*entity.CalendarNote, error)
	// FindByUserID lists the user's notes ascending by note date.
	// from/to are optional bounds; zero values disable them.
	FindByUserID(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]entity.CalendarNote, error)
	Update(db *gorm.DB, note *entity.CalendarNote) error
	Delete(db *gorm.DB, id int) (int64, error)
}
