package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("calendar note not found")

type CalendarNoteUsecase interface {
	CreateNote(ctx context.Context, req *dto.CreateCalendarNoteRequest) (*dto.CalendarNoteResponse, error)
	GetMyNotes(ctx context.Context, from, to string) (*dto.CalendarNoteListResponse, error)
	UpdateNote(ctx context.Context, noteID int, req *dto.UpdateCalendarNoteRequest) (*dto.CalendarNoteResponse, error)
	DeleteNote(ctx context.Context, noteID int) error
}

type calendarNoteUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	noteRepo repository.CalendarNoteRepository
}

func NewCalendarNoteUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	noteRepo repository.CalendarNoteRepository,
) CalendarNoteUsecase {
	return &calendarNoteUsecase{
		db:       db,
		log:      log,
		noteRepo: noteRepo,
	}
}

func (u *calendarNoteUsecase) CreateNote(ctx context.Context, req *dto.CreateCalendarNoteRequest) (*dto.CalendarNoteResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	noteDate, err := time.Parse("2006-01-02", req.NoteDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	note := &entity.CalendarNote{
		UserID:   userID,
		NoteDate: noteDate,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := u.noteRepo.Create(u.db.WithContext(ctx), note); err != nil {
		u.log.Warnf("Failed to create calendar note for user %s: %+v", userID, err)
		return nil, err
	}

	return converter.CalendarNoteToResponse(note), nil
}

func (u *calendarNoteUsecase) GetMyNotes(ctx context.Context, from, to string) (*dto.CalendarNoteListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	var fromDate, toDate time.Time
	var err error
	if from != "" {
		fromDate, err = time.Parse("2006-01-02", from)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}
	if to != "" {
		toDate, err = time.Parse("2006-01-02", to)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}

	notes, err := u.noteRepo.FindByUserID(u.db.WithContext(ctx), userID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to find calendar notes for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.CalendarNoteListResponse{
		Notes: converter.CalendarNotesToResponses(notes),
		Total: len(notes),
	}, nil
}

func (u *calendarNoteUsecase) UpdateNote(ctx context.Context, noteID int, req *dto.UpdateCalendarNoteRequest) (*dto.CalendarNoteResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	note, err := u.noteRepo.FindByID(u.db.WithContext(ctx), noteID)
	if err != nil {
		u.log.Warnf("Failed to find calendar note %d: %+v", noteID, err)
		return nil, err
	}
	if note == nil || note.UserID != userID {
		// Not-owned notes read as absent
		return nil, ErrNoteNotFound
	}

	if req.NoteDate != "" {
		noteDate, err := time.Parse("2006-01-02", req.NoteDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		note.NoteDate = noteDate
	}
	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = req.Content
	}

	if err := u.noteRepo.Update(u.db.WithContext(ctx), note); err != nil {
		u.log.Warnf("Failed to update calendar note %d: %+v", noteID, err)
		return nil, err
	}

	return converter.CalendarNoteToResponse(note), nil
}

func (u *calendarNoteUsecase) DeleteNote(ctx context.Context, noteID int) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	note, err := u.noteRepo.FindByID(u.db.WithContext(ctx), noteID)
	if err != nil {
		u.log.Warnf("Failed to find calendar note %d: %+v", noteID, err)
		return err
	}
	if note == nil || note.UserID != userID {
		return ErrNoteNotFound
	}

	if _, err := u.noteRepo.Delete(u.db.WithContext(ctx), noteID); err != nil {
		u.log.Warnf("Failed to delete calendar note %d: %+v", noteID, err)
		return err
	}

	return nil
}
