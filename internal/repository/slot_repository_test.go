package repository

import (
	"testing"
	"time"

	"go-clinic-booking/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

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

	if err := db.AutoMigrate(&entity.Slot{}, &entity.Appointment{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

func TestTryClaim(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository()
	doctorID := uuid.New()

	slot := &entity.Slot{DoctorID: doctorID, ScheduledTime: time.Now().Add(time.Hour)}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	t.Run("FirstClaimWins", func(t *testing.T) {
		affected, err := repo.TryClaim(db, slot.ID)
		if err != nil {
			t.Fatalf("TryClaim: %v", err)
		}
		if affected != 1 {
			t.Fatalf("affected = %d, want 1", affected)
		}
	})

	t.Run("SecondClaimLoses", func(t *testing.T) {
		affected, err := repo.TryClaim(db, slot.ID)
		if err != nil {
			t.Fatalf("TryClaim: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 on already-booked slot", affected)
		}
	})

	t.Run("MissingSlot", func(t *testing.T) {
		affected, err := repo.TryClaim(db, 999999)
		if err != nil {
			t.Fatalf("TryClaim: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 on missing slot", affected)
		}
	})
}

func TestRelease(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository()
	doctorID := uuid.New()
	at := time.Now().Add(time.Hour).Truncate(time.Second)

	slot := &entity.Slot{DoctorID: doctorID, ScheduledTime: at, IsBooked: true}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	t.Run("ReleasesByCompositeKey", func(t *testing.T) {
		affected, err := repo.Release(db, doctorID, at)
		if err != nil {
			t.Fatalf("Release: %v", err)
		}
		if affected != 1 {
			t.Fatalf("affected = %d, want 1", affected)
		}

		var got entity.Slot
		if err := db.First(&got, "id = ?", slot.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if got.IsBooked {
			t.Error("slot still booked after release")
		}
	})

	t.Run("FreeSlotNotMatched", func(t *testing.T) {
		affected, err := repo.Release(db, doctorID, at)
		if err != nil {
			t.Fatalf("Release: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 on already-free slot", affected)
		}
	})

	t.Run("NoMatchingRow", func(t *testing.T) {
		affected, err := repo.Release(db, uuid.New(), at)
		if err != nil {
			t.Fatalf("Release: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 for unknown doctor", affected)
		}
	})
}

func TestBulkCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository()
	doctorID := uuid.New()

	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	times := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)}

	inserted, err := repo.BulkCreate(db, doctorID, times)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("inserted = %d, want 3", inserted)
	}

	t.Run("ConflictingRowsSkipped", func(t *testing.T) {
		overlap := []time.Time{base, base.Add(3 * time.Hour)}
		inserted, err := repo.BulkCreate(db, doctorID, overlap)
		if err != nil {
			t.Fatalf("BulkCreate overlap: %v", err)
		}
		if inserted != 1 {
			t.Fatalf("inserted = %d, want 1", inserted)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		inserted, err := repo.BulkCreate(db, doctorID, nil)
		if err != nil {
			t.Fatalf("BulkCreate empty: %v", err)
		}
		if inserted != 0 {
			t.Fatalf("inserted = %d, want 0", inserted)
		}
	})

	t.Run("OtherDoctorUnaffected", func(t *testing.T) {
		inserted, err := repo.BulkCreate(db, uuid.New(), []time.Time{base})
		if err != nil {
			t.Fatalf("BulkCreate other doctor: %v", err)
		}
		if inserted != 1 {
			t.Fatalf("inserted = %d, want 1", inserted)
		}
	})
}

func TestDeleteIfFree(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository()
	doctorID := uuid.New()

	free := &entity.Slot{DoctorID: doctorID, ScheduledTime: time.Now().Add(time.Hour)}
	booked := &entity.Slot{DoctorID: doctorID, ScheduledTime: time.Now().Add(2 * time.Hour), IsBooked: true}
	if err := db.Create(free).Error; err != nil {
		t.Fatalf("seed free slot: %v", err)
	}
	if err := db.Create(booked).Error; err != nil {
		t.Fatalf("seed booked slot: %v", err)
	}

	t.Run("FreeSlotDeleted", func(t *testing.T) {
		affected, err := repo.DeleteIfFree(db, doctorID, free.ID)
		if err != nil {
			t.Fatalf("DeleteIfFree: %v", err)
		}
		if affected != 1 {
			t.Fatalf("affected = %d, want 1", affected)
		}
	})

	t.Run("BookedSlotKept", func(t *testing.T) {
		affected, err := repo.DeleteIfFree(db, doctorID, booked.ID)
		if err != nil {
			t.Fatalf("DeleteIfFree: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 on booked slot", affected)
		}
	})

	t.Run("WrongDoctor", func(t *testing.T) {
		other := &entity.Slot{DoctorID: doctorID, ScheduledTime: time.Now().Add(3 * time.Hour)}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
		affected, err := repo.DeleteIfFree(db, uuid.New(), other.ID)
		if err != nil {
			t.Fatalf("DeleteIfFree: %v", err)
		}
		if affected != 0 {
			t.Fatalf("affected = %d, want 0 for non-owner", affected)
		}
	})
}
