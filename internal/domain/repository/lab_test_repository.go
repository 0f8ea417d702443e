package repository

import (
	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabTestRepository interface {
	Create(db *gorm.DB, test *entity.LabTest) error
	FindByID(db *gorm.DB, id int) (*entity.LabTest, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.LabTest, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.LabTest, error)
	Update(db *gorm.DB, test *entity.LabTest) error
}
