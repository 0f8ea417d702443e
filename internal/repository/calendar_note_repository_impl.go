package repository

import (
	"errors"
	"time"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type calendarNoteRepository struct{}

func NewCalendarNoteRepository() domainRepo.CalendarNoteRepository {
	return &calendarNoteRepository{}
}

func (r *calendarNoteRepository) Create(db *gorm.DB, note *entity.CalendarNote) error {
	return db.Create(note).Error
}

func (r *calendarNoteRepository) FindByID(db *gorm.DB, id int) (*entity.CalendarNote, error) {
	var note entity.CalendarNote
	err := db.Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *calendarNoteRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]entity.CalendarNote, error) {
	query := db.Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("note_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("note_date <= ?", to)
	}

	var notes []entity.CalendarNote
	err := query.Order("note_date ASC, id ASC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *calendarNoteRepository) Update(db *gorm.DB, note *entity.CalendarNote) error {
	return db.Omit("User").Save(note).Error
}

func (r *calendarNoteRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.CalendarNote{})
	return result.RowsAffected, result.Error
}
