package repository

import (
	"errors"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labTestRepository struct{}

func NewLabTestRepository() domainRepo.LabTestRepository {
	return &labTestRepository{}
}

func (r *labTestRepository) Create(db *gorm.DB, test *entity.LabTest) error {
	return db.Create(test).Error
}

func (r *labTestRepository) FindByID(db *gorm.DB, id int) (*entity.LabTest, error) {
	var test entity.LabTest
	err := db.Where("id = ?", id).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (r *labTestRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("scheduled_date DESC, id DESC").
		Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *labTestRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("scheduled_date DESC, id DESC").
		Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *labTestRepository) Update(db *gorm.DB, test *entity.LabTest) error {
	return db.Omit("Patient", "Doctor").Save(test).Error
}
