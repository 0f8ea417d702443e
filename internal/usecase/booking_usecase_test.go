package usecase

import (
	"errors"
	"sync"
	"testing"

	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

func TestClaimSlot(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)

	t.Run("Success", func(t *testing.T) {
		at := futureTime(24)
		slot := f.createSlot(t, doctor.ID, at)

		resp, err := f.booking.ClaimSlot(authContext(patient), slot.ID)
		if err != nil {
			t.Fatalf("ClaimSlot: %v", err)
		}
		if resp.PatientID != patient.ID {
			t.Errorf("patient_id = %s, want %s", resp.PatientID, patient.ID)
		}
		if resp.DoctorID != doctor.ID {
			t.Errorf("doctor_id = %s, want %s", resp.DoctorID, doctor.ID)
		}
		if resp.SlotID != slot.ID {
			t.Errorf("slot_id = %d, want %d", resp.SlotID, slot.ID)
		}
		if resp.Status != string(entity.AppointmentStatusBooked) {
			t.Errorf("status = %q, want %q", resp.Status, entity.AppointmentStatusBooked)
		}

		if got := f.reloadSlot(t, slot.ID); !got.IsBooked {
			t.Error("slot not flagged booked after claim")
		}
		if n := f.countAppointments(t, doctor.ID, at); n != 1 {
			t.Errorf("appointments for claimed slot = %d, want 1", n)
		}
		if n := f.countAuditLogs(t, entity.AuditActionAppointmentClaim); n != 1 {
			t.Errorf("claim audit entries = %d, want 1", n)
		}
	})

	t.Run("SlotNotFound", func(t *testing.T) {
		_, err := f.booking.ClaimSlot(authContext(patient), 999999)
		if !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("err = %v, want ErrSlotNotFound", err)
		}
	})

	t.Run("AlreadyBooked", func(t *testing.T) {
		at := futureTime(25)
		slot := f.createSlot(t, doctor.ID, at)
		other := f.createPatient(t)

		if _, err := f.booking.ClaimSlot(authContext(patient), slot.ID); err != nil {
			t.Fatalf("first claim: %v", err)
		}

		_, err := f.booking.ClaimSlot(authContext(other), slot.ID)
		if !errors.Is(err, ErrSlotAlreadyBooked) {
			t.Fatalf("second claim err = %v, want ErrSlotAlreadyBooked", err)
		}
		if n := f.countAppointments(t, doctor.ID, at); n != 1 {
			t.Errorf("appointments after double claim = %d, want 1", n)
		}
	})

	t.Run("RejectedWhenAppointmentExistsForSamePair", func(t *testing.T) {
		// Slot bookkeeping drift: the flag says free but an appointment
		// already holds the doctor/time pair. The unique index must win and
		// the rollback must leave the slot unclaimed.
		at := futureTime(26)
		slot := f.createSlot(t, doctor.ID, at)

		stale := &entity.Appointment{
			PatientID:     f.createPatient(t).ID,
			DoctorID:      doctor.ID,
			ScheduledTime: at,
			Status:        entity.AppointmentStatusBooked,
		}
		if err := f.db.Create(stale).Error; err != nil {
			t.Fatalf("seed stale appointment: %v", err)
		}

		_, err := f.booking.ClaimSlot(authContext(patient), slot.ID)
		if !errors.Is(err, ErrSlotAlreadyBooked) {
			t.Fatalf("err = %v, want ErrSlotAlreadyBooked", err)
		}
		if got := f.reloadSlot(t, slot.ID); got.IsBooked {
			t.Error("slot left claimed after rolled-back insert")
		}
	})
}

func TestClaimSlotAuditFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)
	at := futureTime(24)
	slot := f.createSlot(t, doctor.ID, at)

	// With the audit table gone the audit insert fails, and the claim must
	// fail with it: slot unclaimed, no appointment row.
	if err := f.db.Migrator().DropTable(&entity.AuditLog{}); err != nil {
		t.Fatalf("drop audit table: %v", err)
	}

	if _, err := f.booking.ClaimSlot(authContext(patient), slot.ID); err == nil {
		t.Fatal("claim succeeded without an audit row")
	}

	if got := f.reloadSlot(t, slot.ID); got.IsBooked {
		t.Error("slot left claimed after failed audit write")
	}
	if n := f.countAppointments(t, doctor.ID, at); n != 0 {
		t.Errorf("appointment rows = %d, want 0", n)
	}
}

func TestClaimSlotConcurrent(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	at := futureTime(24)
	slot := f.createSlot(t, doctor.ID, at)

	const racers = 8
	patients := make([]*entity.User, racers)
	for i := range patients {
		patients[i] = f.createPatient(t)
	}

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.booking.ClaimSlot(authContext(patients[i]), slot.ID)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotAlreadyBooked):
			conflicts++
		default:
			t.Errorf("racer %d: unexpected error %v", i, err)
		}
	}

	if wins != 1 {
		t.Errorf("winners = %d, want exactly 1", wins)
	}
	if conflicts != racers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, racers-1)
	}
	if n := f.countAppointments(t, doctor.ID, at); n != 1 {
		t.Errorf("appointments after race = %d, want 1", n)
	}
	if got := f.reloadSlot(t, slot.ID); !got.IsBooked {
		t.Error("slot not booked after race")
	}
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)

	claim := func(t *testing.T, at int) (slotID int, appointmentID uuid.UUID) {
		t.Helper()
		slot := f.createSlot(t, doctor.ID, futureTime(at))
		resp, err := f.booking.ClaimSlot(authContext(patient), slot.ID)
		if err != nil {
			t.Fatalf("claim: %v", err)
		}
		return slot.ID, resp.ID
	}

	t.Run("PatientCancelReleasesSlot", func(t *testing.T) {
		slotID, appointmentID := claim(t, 24)

		if err := f.booking.CancelAppointment(authContext(patient), appointmentID); err != nil {
			t.Fatalf("CancelAppointment: %v", err)
		}

		if got := f.reloadSlot(t, slotID); got.IsBooked {
			t.Error("slot still booked after cancel")
		}
		var n int64
		f.db.Model(&entity.Appointment{}).Where("id = ?", appointmentID).Count(&n)
		if n != 0 {
			t.Errorf("appointment rows after cancel = %d, want 0", n)
		}
	})

	t.Run("DoctorMayCancel", func(t *testing.T) {
		slotID, appointmentID := claim(t, 25)

		if err := f.booking.CancelAppointment(authContext(doctor), appointmentID); err != nil {
			t.Fatalf("doctor cancel: %v", err)
		}
		if got := f.reloadSlot(t, slotID); got.IsBooked {
			t.Error("slot still booked after doctor cancel")
		}
	})

	t.Run("ForbiddenForStranger", func(t *testing.T) {
		_, appointmentID := claim(t, 26)
		stranger := f.createPatient(t)

		err := f.booking.CancelAppointment(authContext(stranger), appointmentID)
		if !errors.Is(err, ErrAppointmentNotOwned) {
			t.Fatalf("stranger cancel err = %v, want ErrAppointmentNotOwned", err)
		}

		otherDoctor := f.createDoctor(t)
		err = f.booking.CancelAppointment(authContext(otherDoctor), appointmentID)
		if !errors.Is(err, ErrAppointmentNotOwned) {
			t.Fatalf("other doctor cancel err = %v, want ErrAppointmentNotOwned", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := f.booking.CancelAppointment(authContext(patient), uuid.New())
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
		}
	})

	t.Run("SlotReclaimableAfterCancel", func(t *testing.T) {
		slotID, appointmentID := claim(t, 27)

		if err := f.booking.CancelAppointment(authContext(patient), appointmentID); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		next := f.createPatient(t)
		resp, err := f.booking.ClaimSlot(authContext(next), slotID)
		if err != nil {
			t.Fatalf("reclaim after cancel: %v", err)
		}
		if resp.PatientID != next.ID {
			t.Errorf("reclaimed by %s, want %s", resp.PatientID, next.ID)
		}
	})
}

func TestGetAppointments(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)
	otherPatient := f.createPatient(t)

	for _, h := range []int{24, 48, 72} {
		slot := f.createSlot(t, doctor.ID, futureTime(h))
		if _, err := f.booking.ClaimSlot(authContext(patient), slot.ID); err != nil {
			t.Fatalf("claim slot at +%dh: %v", h, err)
		}
	}
	slot := f.createSlot(t, doctor.ID, futureTime(96))
	if _, err := f.booking.ClaimSlot(authContext(otherPatient), slot.ID); err != nil {
		t.Fatalf("claim for other patient: %v", err)
	}

	t.Run("PatientSeesOnlyOwn", func(t *testing.T) {
		resp, err := f.booking.GetMyAppointments(authContext(patient))
		if err != nil {
			t.Fatalf("GetMyAppointments: %v", err)
		}
		if resp.Total != 3 {
			t.Fatalf("total = %d, want 3", resp.Total)
		}
		for _, a := range resp.Appointments {
			if a.PatientID != patient.ID {
				t.Errorf("foreign appointment %s in patient listing", a.ID)
			}
		}
	})

	t.Run("DoctorSeesAll", func(t *testing.T) {
		resp, err := f.booking.GetDoctorAppointments(authContext(doctor))
		if err != nil {
			t.Fatalf("GetDoctorAppointments: %v", err)
		}
		if resp.Total != 4 {
			t.Fatalf("total = %d, want 4", resp.Total)
		}
	})
}
