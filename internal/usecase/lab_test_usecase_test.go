package usecase

import (
	"errors"
	"testing"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

func TestCreateLabTest(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)
	ctx := authContext(patient)

	t.Run("Success", func(t *testing.T) {
		resp, err := f.labs.CreateLabTest(ctx, &dto.CreateLabTestRequest{
			DoctorID:      doctor.ID,
			TestName:      "Complete Blood Count",
			ScheduledDate: "2026-09-15",
		})
		if err != nil {
			t.Fatalf("CreateLabTest: %v", err)
		}
		if resp.Status != string(entity.LabTestStatusOrdered) {
			t.Errorf("status = %q, want %q", resp.Status, entity.LabTestStatusOrdered)
		}
		if resp.PatientID != patient.ID {
			t.Errorf("patient_id = %s, want %s", resp.PatientID, patient.ID)
		}
		if n := f.countAuditLogs(t, entity.AuditActionLabTestCreate); n != 1 {
			t.Errorf("audit entries = %d, want 1", n)
		}
	})

	t.Run("UnknownDoctor", func(t *testing.T) {
		_, err := f.labs.CreateLabTest(ctx, &dto.CreateLabTestRequest{
			DoctorID:      uuid.New(),
			TestName:      "Lipid Panel",
			ScheduledDate: "2026-09-15",
		})
		if !errors.Is(err, ErrDoctorNotFound) {
			t.Fatalf("err = %v, want ErrDoctorNotFound", err)
		}
	})

	t.Run("PatientIsNotADoctor", func(t *testing.T) {
		_, err := f.labs.CreateLabTest(ctx, &dto.CreateLabTestRequest{
			DoctorID:      f.createPatient(t).ID,
			TestName:      "Lipid Panel",
			ScheduledDate: "2026-09-15",
		})
		if !errors.Is(err, ErrDoctorNotFound) {
			t.Fatalf("err = %v, want ErrDoctorNotFound", err)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := f.labs.CreateLabTest(ctx, &dto.CreateLabTestRequest{
			DoctorID:      doctor.ID,
			TestName:      "Lipid Panel",
			ScheduledDate: "15/09/2026",
		})
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
		}
	})
}

func TestRecordResult(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patient := f.createPatient(t)

	created, err := f.labs.CreateLabTest(authContext(patient), &dto.CreateLabTestRequest{
		DoctorID:      doctor.ID,
		TestName:      "Thyroid Panel",
		ScheduledDate: "2026-09-20",
	})
	if err != nil {
		t.Fatalf("seed lab test: %v", err)
	}

	t.Run("OnlyAssignedDoctor", func(t *testing.T) {
		other := f.createDoctor(t)
		_, err := f.labs.RecordResult(authContext(other), created.ID, &dto.RecordLabResultRequest{Result: "TSH 2.1"})
		if !errors.Is(err, ErrLabTestNotFound) {
			t.Fatalf("err = %v, want ErrLabTestNotFound", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		resp, err := f.labs.RecordResult(authContext(doctor), created.ID, &dto.RecordLabResultRequest{Result: "TSH 2.1 mIU/L, within range"})
		if err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
		if resp.Status != string(entity.LabTestStatusCompleted) {
			t.Errorf("status = %q, want %q", resp.Status, entity.LabTestStatusCompleted)
		}
		if resp.Result == "" {
			t.Error("result empty after recording")
		}
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		_, err := f.labs.RecordResult(authContext(doctor), created.ID, &dto.RecordLabResultRequest{Result: "second attempt"})
		if !errors.Is(err, ErrLabTestCompleted) {
			t.Fatalf("err = %v, want ErrLabTestCompleted", err)
		}
	})
}

func TestGetMyLabTests(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t)
	patientA := f.createPatient(t)
	patientB := f.createPatient(t)

	for _, p := range []*entity.User{patientA, patientA, patientB} {
		_, err := f.labs.CreateLabTest(authContext(p), &dto.CreateLabTestRequest{
			DoctorID:      doctor.ID,
			TestName:      "Glucose",
			ScheduledDate: "2026-09-25",
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("PatientSeesOwn", func(t *testing.T) {
		resp, err := f.labs.GetMyLabTests(authContext(patientA))
		if err != nil {
			t.Fatalf("GetMyLabTests: %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("total = %d, want 2", resp.Total)
		}
	})

	t.Run("DoctorSeesAssigned", func(t *testing.T) {
		resp, err := f.labs.GetMyLabTests(authContext(doctor))
		if err != nil {
			t.Fatalf("GetMyLabTests: %v", err)
		}
		if resp.Total != 3 {
			t.Errorf("total = %d, want 3", resp.Total)
		}
	})
}
