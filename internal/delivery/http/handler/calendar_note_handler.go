package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type CalendarNoteHandler struct {
	noteUsecase usecase.CalendarNoteUsecase
	validator   *validator.CustomValidator
}

func NewCalendarNoteHandler(noteUsecase usecase.CalendarNoteUsecase, validator *validator.CustomValidator) *CalendarNoteHandler {
	return &CalendarNoteHandler{
		noteUsecase: noteUsecase,
		validator:   validator,
	}
}

func (h *CalendarNoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCalendarNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	note, err := h.noteUsecase.CreateNote(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid note date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create note")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Note created successfully", note)
}

func (h *CalendarNoteHandler) GetMyNotes(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	notes, err := h.noteUsecase.GetMyNotes(r.Context(), from, to)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get notes")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notes retrieved successfully", notes)
}

func (h *CalendarNoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid note ID", nil)
		return
	}

	var req dto.UpdateCalendarNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	note, err := h.noteUsecase.UpdateNote(r.Context(), noteID, &req)
	if err != nil {
		switch err {
		case usecase.ErrNoteNotFound:
			response.NotFound(w, "Note not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid note date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to update note")
		}
		return
	}

	response.Success(w, http.StatusOK, "Note updated successfully", note)
}

func (h *CalendarNoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid note ID", nil)
		return
	}

	if err := h.noteUsecase.DeleteNote(r.Context(), noteID); err != nil {
		switch err {
		case usecase.ErrNoteNotFound:
			response.NotFound(w, "Note not found")
		default:
			response.InternalServerError(w, "Failed to delete note")
		}
		return
	}

	response.Success(w, http.StatusOK, "Note deleted successfully", nil)
}
