package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateCalendarNoteRequest struct {
	NoteDate string `json:"note_date" validate:"required"` // Format: YYYY-MM-DD
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Content  string `json:"content" validate:"omitempty"`
}

type UpdateCalendarNoteRequest struct {
	NoteDate string `json:"note_date" validate:"omitempty"`
	Title    string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  string `json:"content" validate:"omitempty"`
}

// Response DTOs

type CalendarNoteResponse struct {
	ID        int       `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	NoteDate  string    `json:"note_date"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalendarNoteListResponse struct {
	Notes []CalendarNoteResponse `json:"notes"`
	Total int                    `json:"total"`
}
