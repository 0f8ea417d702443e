package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarNote is a personal calendar entry owned by a single user
type CalendarNote struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	NoteDate  time.Time `gorm:"type:date;not null;index" json:"note_date"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CalendarNote) TableName() string {
	return "calendar_notes"
}
