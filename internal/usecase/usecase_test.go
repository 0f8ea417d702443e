package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"go-clinic-booking/config"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/repository"
	"go-clinic-booking/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with a single connection so
// concurrent usecase calls are serialized by the pool, the same way row locks
// serialize them on Postgres. TranslateError keeps the duplicate-key
// detection path identical to production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.Slot{},
		&entity.Appointment{},
		&entity.LabTest{},
		&entity.CalendarNote{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fixture wires the usecases against a fresh in-memory database with a
// no-op event publisher and a real audit trail.
type fixture struct {
	db      *gorm.DB
	booking BookingUsecase
	slots   SlotUsecase
	labs    LabTestUsecase
	notes   CalendarNoteUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()

	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	labTestRepo := repository.NewLabTestRepository()
	noteRepo := repository.NewCalendarNoteRepository()
	userRepo := repository.NewUserRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditRepo)
	eventService := service.NewBookingEventService(config.KafkaConfig{}, log)

	return &fixture{
		db:      db,
		booking: NewBookingUsecase(db, log, slotRepo, appointmentRepo, auditService, eventService),
		slots:   NewSlotUsecase(db, log, slotRepo, auditService),
		labs:    NewLabTestUsecase(db, log, labTestRepo, userRepo, auditService),
		notes:   NewCalendarNoteUsecase(db, log, noteRepo),
	}
}

var testUserSeq int

func (f *fixture) createUser(t *testing.T, roleID int) *entity.User {
	t.Helper()

	testUserSeq++
	user := &entity.User{
		RoleID:   roleID,
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Password: "not-a-real-hash",
		FullName: fmt.Sprintf("Test User %d", testUserSeq),
	}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func (f *fixture) createDoctor(t *testing.T) *entity.User {
	return f.createUser(t, entity.RoleIDDoctor)
}

func (f *fixture) createPatient(t *testing.T) *entity.User {
	return f.createUser(t, entity.RoleIDPatient)
}

func (f *fixture) createSlot(t *testing.T, doctorID uuid.UUID, at time.Time) *entity.Slot {
	t.Helper()

	slot := &entity.Slot{DoctorID: doctorID, ScheduledTime: at}
	if err := f.db.Create(slot).Error; err != nil {
		t.Fatalf("create test slot: %v", err)
	}
	return slot
}

func (f *fixture) reloadSlot(t *testing.T, id int) *entity.Slot {
	t.Helper()

	var slot entity.Slot
	if err := f.db.First(&slot, "id = ?", id).Error; err != nil {
		t.Fatalf("reload slot %d: %v", id, err)
	}
	return &slot
}

func (f *fixture) countAppointments(t *testing.T, doctorID uuid.UUID, at time.Time) int64 {
	t.Helper()

	var n int64
	err := f.db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND scheduled_time = ?", doctorID, at).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	return n
}

func (f *fixture) countAuditLogs(t *testing.T, action string) int64 {
	t.Helper()

	var n int64
	if err := f.db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&n).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	return n
}

// authContext builds a context the way the auth middleware does after
// validating a token.
func authContext(user *entity.User) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, user.ID)
	return context.WithValue(ctx, middleware.RoleIDKey, user.RoleID)
}

func futureTime(hours int) time.Time {
	return time.Now().UTC().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
}
