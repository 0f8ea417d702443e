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
	"go-clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotBooked        = errors.New("slot is booked")
	ErrInvalidTimeFormat = errors.New("invalid time format, use YYYY-MM-DD HH:MM:SS")
)

// slotTimeLayout is the wire format for slot timestamps
const slotTimeLayout = "2006-01-02 15:04:05"

type SlotUsecase interface {
	PublishSlots(ctx context.Context, req *dto.PublishSlotsRequest) (*dto.PublishSlotsResponse, error)
	GetMySlots(ctx context.Context) (*dto.SlotListResponse, error)
	GetDoctorSlots(ctx context.Context, doctorID uuid.UUID) (*dto.SlotListResponse, error)
	DeleteSlot(ctx context.Context, slotID int) error
}

type slotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	slotRepo     repository.SlotRepository
	auditService service.AuditService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	auditService service.AuditService,
) SlotUsecase {
	return &slotUsecase{
		db:           db,
		log:          log,
		slotRepo:     slotRepo,
		auditService: auditService,
	}
}

// PublishSlots bulk-inserts availability for the logged-in doctor.
// Every timestamp is validated before any store access; pairs that already
// exist are skipped, so re-sending the same payload is harmless.
func (u *slotUsecase) PublishSlots(ctx context.Context, req *dto.PublishSlotsRequest) (*dto.PublishSlotsResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	times := make([]time.Time, 0, len(req.Times))
	for _, raw := range req.Times {
		t, err := time.Parse(slotTimeLayout, raw)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		times = append(times, t)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	inserted, err := u.slotRepo.BulkCreate(tx, doctorID, times)
	if err != nil {
		u.log.Warnf("Failed to publish slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	err = u.auditService.Log(tx, &doctorID, entity.AuditActionSlotPublish, entity.JSON{
		"requested": len(times),
		"inserted":  inserted,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.PublishSlotsResponse{
		Inserted: int(inserted),
		Skipped:  len(times) - int(inserted),
	}, nil
}

// GetMySlots returns the logged-in doctor's future slots, soonest first
func (u *slotUsecase) GetMySlots(ctx context.Context) (*dto.SlotListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return u.listFutureSlots(ctx, doctorID)
}

// GetDoctorSlots returns a doctor's future slots for patients browsing availability
func (u *slotUsecase) GetDoctorSlots(ctx context.Context, doctorID uuid.UUID) (*dto.SlotListResponse, error) {
	return u.listFutureSlots(ctx, doctorID)
}

func (u *slotUsecase) listFutureSlots(ctx context.Context, doctorID uuid.UUID) (*dto.SlotListResponse, error) {
	slots, err := u.slotRepo.FindFutureByDoctorID(u.db.WithContext(ctx), doctorID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to find slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// DeleteSlot removes one of the doctor's own unbooked slots.
// A booked slot is never deleted: the conditional delete only matches free
// rows. A 0-row result is re-read to distinguish a slot claimed in the
// meantime (conflict) from one removed in the meantime (not found).
func (u *slotUsecase) DeleteSlot(ctx context.Context, slotID int) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return err
	}
	if slot == nil || slot.DoctorID != doctorID {
		// Not revealing other doctors' slot ids: not-owned reads as absent
		return ErrSlotNotFound
	}
	if slot.IsBooked {
		return ErrSlotBooked
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.slotRepo.DeleteIfFree(tx, doctorID, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete slot %d: %+v", slotID, err)
		return err
	}
	if affected == 0 {
		// Either a claim won between the read above and the delete, or the
		// row is gone entirely. Re-read to tell the two apart.
		current, err := u.slotRepo.FindByID(tx, slotID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrSlotNotFound
		}
		return ErrSlotBooked
	}

	err = u.auditService.Log(tx, &doctorID, entity.AuditActionSlotDelete, entity.JSON{
		"slot_id":        slotID,
		"scheduled_time": slot.ScheduledTime.Format(slotTimeLayout),
	})
	if err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
