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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLabTestNotFound  = errors.New("lab test not found")
	ErrLabTestCompleted = errors.New("lab test already has a result")
	ErrDoctorNotFound   = errors.New("doctor not found")
)

type LabTestUsecase interface {
	CreateLabTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error)
	GetMyLabTests(ctx context.Context) (*dto.LabTestListResponse, error)
	RecordResult(ctx context.Context, testID int, req *dto.RecordLabResultRequest) (*dto.LabTestResponse, error)
}

type labTestUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	labTestRepo  repository.LabTestRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewLabTestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labTestRepo repository.LabTestRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) LabTestUsecase {
	return &labTestUsecase{
		db:           db,
		log:          log,
		labTestRepo:  labTestRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// CreateLabTest books a lab test for the logged-in patient with a chosen doctor
func (u *labTestUsecase) CreateLabTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	test := &entity.LabTest{
		PatientID:     patientID,
		DoctorID:      req.DoctorID,
		TestName:      req.TestName,
		Status:        entity.LabTestStatusOrdered,
		ScheduledDate: scheduledDate,
	}

	if err := u.labTestRepo.Create(tx, test); err != nil {
		u.log.Warnf("Failed to create lab test: %+v", err)
		return nil, err
	}

	err = u.auditService.Log(tx, &patientID, entity.AuditActionLabTestCreate, entity.JSON{
		"lab_test_id": test.ID,
		"doctor_id":   req.DoctorID.String(),
		"test_name":   req.TestName,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabTestToResponse(test), nil
}

// GetMyLabTests lists the caller's tests: patients see the tests they booked,
// doctors see the tests assigned to them
func (u *labTestUsecase) GetMyLabTests(ctx context.Context) (*dto.LabTestListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, errors.New("role not found in context")
	}

	var (
		tests []entity.LabTest
		err   error
	)
	if roleID == entity.RoleIDDoctor {
		tests, err = u.labTestRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	} else {
		tests, err = u.labTestRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to find lab tests for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.LabTestListResponse{
		LabTests: converter.LabTestsToResponses(tests),
		Total:    len(tests),
	}, nil
}

// RecordResult stores the result for a test assigned to the logged-in doctor
func (u *labTestUsecase) RecordResult(ctx context.Context, testID int, req *dto.RecordLabResultRequest) (*dto.LabTestResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	test, err := u.labTestRepo.FindByID(u.db.WithContext(ctx), testID)
	if err != nil {
		u.log.Warnf("Failed to find lab test %d: %+v", testID, err)
		return nil, err
	}
	if test == nil || test.DoctorID != doctorID {
		return nil, ErrLabTestNotFound
	}
	if test.IsCompleted() {
		return nil, ErrLabTestCompleted
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	test.Result = req.Result
	test.Status = entity.LabTestStatusCompleted

	if err := u.labTestRepo.Update(tx, test); err != nil {
		u.log.Warnf("Failed to update lab test %d: %+v", testID, err)
		return nil, err
	}

	err = u.auditService.Log(tx, &doctorID, entity.AuditActionLabTestResult, entity.JSON{
		"lab_test_id": testID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabTestToResponse(test), nil
}
