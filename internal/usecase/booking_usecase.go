package usecase

import (
	"context"
	"errors"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotAlreadyBooked   = errors.New("slot is already booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
)

type BookingUsecase interface {
	ClaimSlot(ctx context.Context, slotID int) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	eventService    *service.BookingEventService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	eventService *service.BookingEventService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		eventService:    eventService,
	}
}

// ClaimSlot converts a free slot into a booked one paired with a new
// appointment, atomically under concurrent demand.
//
// Flow:
// 1. Load the slot; absent -> not found
// 2. Reject if already booked (optimistic fast path, not the authority)
// 3. Open a transaction
// 4. TryClaim: conditional UPDATE on is_booked; 0 rows -> lost the race
// 5. Insert the appointment; duplicated (doctor_id, scheduled_time) -> conflict
// 6. Commit
//
// At every commit boundary a slot is booked iff exactly one appointment
// matches its (doctor_id, scheduled_time). Concurrent claims on the same
// slot are serialized by step 4 alone; no in-process locking exists, so the
// protocol stays correct across multiple server processes.
func (u *bookingUsecase) ClaimSlot(ctx context.Context, slotID int) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	// Step 1: slot must exist
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	// Step 2: cheap rejection before opening a transaction
	if slot.IsBooked {
		return nil, ErrSlotAlreadyBooked
	}

	// Steps 3-6: claim and insert must commit or roll back together
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	claimed, err := u.slotRepo.TryClaim(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to claim slot %d: %+v", slotID, err)
		return nil, err
	}
	if claimed == 0 {
		// Another patient won the conditional update since step 2
		return nil, ErrSlotAlreadyBooked
	}

	appointment := &entity.Appointment{
		PatientID:     patientID,
		DoctorID:      slot.DoctorID,
		ScheduledTime: slot.ScheduledTime,
		Status:        entity.AppointmentStatusBooked,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Slot bookkeeping drifted: an appointment already holds this
			// doctor/time pair. The rollback un-claims the slot.
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to create appointment for slot %d: %+v", slotID, err)
		return nil, err
	}

	err = u.auditService.Log(tx, &patientID, entity.AuditActionAppointmentClaim, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"slot_id":        slotID,
		"doctor_id":      slot.DoctorID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.eventService.PublishClaimed(appointment)

	u.log.Infof("Slot claimed: slot=%d, appointment=%s, patient=%s", slotID, appointment.ID, patientID)
	return converter.AppointmentToResponse(appointment, slotID), nil
}

// CancelAppointment deletes the appointment and frees the paired slot.
//
// The slot is found by the appointment's own (doctor_id, scheduled_time);
// appointments hold no slot foreign key. Releasing 0 rows is accepted: the
// slot may have been deleted since, and the cancellation still stands.
func (u *bookingUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return errors.New("role not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	// Only the appointment's own patient or doctor may cancel it
	switch roleID {
	case entity.RoleIDPatient:
		if appointment.PatientID != callerID {
			return ErrAppointmentNotOwned
		}
	case entity.RoleIDDoctor:
		if appointment.DoctorID != callerID {
			return ErrAppointmentNotOwned
		}
	default:
		return ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.appointmentRepo.Delete(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}
	if deleted == 0 {
		// Cancelled concurrently between the read and the delete
		return ErrAppointmentNotFound
	}

	released, err := u.slotRepo.Release(tx, appointment.DoctorID, appointment.ScheduledTime)
	if err != nil {
		u.log.Warnf("Failed to release slot for appointment %s: %+v", appointmentID, err)
		return err
	}
	if released == 0 {
		u.log.Warnf("No slot row matched release for appointment %s (doctor=%s)", appointmentID, appointment.DoctorID)
	}

	err = u.auditService.Log(tx, &callerID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID.String(),
		"doctor_id":      appointment.DoctorID.String(),
		"patient_id":     appointment.PatientID.String(),
		"status":         string(appointment.Status),
	})
	if err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.eventService.PublishCancelled(appointment)

	u.log.Infof("Appointment cancelled: id=%s, by=%s", appointmentID, callerID)
	return nil
}

// GetMyAppointments returns the logged-in patient's appointments, newest first
func (u *bookingUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments returns the logged-in doctor's appointments, newest first
func (u *bookingUsecase) GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
