package usecase

import (
	"errors"
	"testing"

	"go-clinic-booking/internal/delivery/dto"
)

func TestCalendarNotes(t *testing.T) {
	f := newFixture(t)
	owner := f.createPatient(t)
	stranger := f.createPatient(t)

	created, err := f.notes.CreateNote(authContext(owner), &dto.CreateCalendarNoteRequest{
		NoteDate: "2026-09-10",
		Title:    "Fasting before blood draw",
		Content:  "No food after 22:00",
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	t.Run("BadDateRejected", func(t *testing.T) {
		_, err := f.notes.CreateNote(authContext(owner), &dto.CreateCalendarNoteRequest{
			NoteDate: "10.09.2026",
			Title:    "x",
		})
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
		}
	})

	t.Run("ListWithRange", func(t *testing.T) {
		if _, err := f.notes.CreateNote(authContext(owner), &dto.CreateCalendarNoteRequest{
			NoteDate: "2026-10-01",
			Title:    "Follow-up visit",
		}); err != nil {
			t.Fatalf("seed second note: %v", err)
		}

		resp, err := f.notes.GetMyNotes(authContext(owner), "2026-09-01", "2026-09-30")
		if err != nil {
			t.Fatalf("GetMyNotes: %v", err)
		}
		if resp.Total != 1 {
			t.Fatalf("total in september = %d, want 1", resp.Total)
		}

		resp, err = f.notes.GetMyNotes(authContext(owner), "", "")
		if err != nil {
			t.Fatalf("GetMyNotes unbounded: %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("total unbounded = %d, want 2", resp.Total)
		}
	})

	t.Run("StrangerSeesNothing", func(t *testing.T) {
		resp, err := f.notes.GetMyNotes(authContext(stranger), "", "")
		if err != nil {
			t.Fatalf("GetMyNotes: %v", err)
		}
		if resp.Total != 0 {
			t.Errorf("stranger total = %d, want 0", resp.Total)
		}

		if _, err := f.notes.UpdateNote(authContext(stranger), created.ID, &dto.UpdateCalendarNoteRequest{Title: "hijacked"}); !errors.Is(err, ErrNoteNotFound) {
			t.Fatalf("stranger update err = %v, want ErrNoteNotFound", err)
		}
		if err := f.notes.DeleteNote(authContext(stranger), created.ID); !errors.Is(err, ErrNoteNotFound) {
			t.Fatalf("stranger delete err = %v, want ErrNoteNotFound", err)
		}
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		resp, err := f.notes.UpdateNote(authContext(owner), created.ID, &dto.UpdateCalendarNoteRequest{Title: "Fasting 12h before blood draw"})
		if err != nil {
			t.Fatalf("UpdateNote: %v", err)
		}
		if resp.Title != "Fasting 12h before blood draw" {
			t.Errorf("title = %q after update", resp.Title)
		}

		if err := f.notes.DeleteNote(authContext(owner), created.ID); err != nil {
			t.Fatalf("DeleteNote: %v", err)
		}
		if err := f.notes.DeleteNote(authContext(owner), created.ID); !errors.Is(err, ErrNoteNotFound) {
			t.Fatalf("second delete err = %v, want ErrNoteNotFound", err)
		}
	})
}
