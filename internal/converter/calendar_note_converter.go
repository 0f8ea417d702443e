package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// CalendarNoteToResponse converts a CalendarNote entity to CalendarNoteResponse DTO
func CalendarNoteToResponse(note *entity.CalendarNote) *dto.CalendarNoteResponse {
	if note == nil {
		return nil
	}

	return &dto.CalendarNoteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		NoteDate:  note.NoteDate.Format(dateLayout),
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// CalendarNotesToResponses converts a slice of CalendarNote entities to DTOs
func CalendarNotesToResponses(notes []entity.CalendarNote) []dto.CalendarNoteResponse {
	responses := make([]dto.CalendarNoteResponse, len(notes))
	for i := range notes {
		resp := CalendarNoteToResponse(&notes[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
