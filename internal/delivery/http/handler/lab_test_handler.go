package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type LabTestHandler struct {
	labTestUsecase usecase.LabTestUsecase
	validator      *validator.CustomValidator
}

func NewLabTestHandler(labTestUsecase usecase.LabTestUsecase, validator *validator.CustomValidator) *LabTestHandler {
	return &LabTestHandler{
		labTestUsecase: labTestUsecase,
		validator:      validator,
	}
}

func (h *LabTestHandler) CreateLabTest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	test, err := h.labTestUsecase.CreateLabTest(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid scheduled date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create lab test")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab test created successfully", test)
}

func (h *LabTestHandler) GetMyLabTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.labTestUsecase.GetMyLabTests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Lab tests retrieved successfully", tests)
}

func (h *LabTestHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	testID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab test ID", nil)
		return
	}

	var req dto.RecordLabResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	test, err := h.labTestUsecase.RecordResult(r.Context(), testID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabTestNotFound:
			response.NotFound(w, "Lab test not found")
		case usecase.ErrLabTestCompleted:
			response.Conflict(w, "Lab test already has a result")
		default:
			response.InternalServerError(w, "Failed to record result")
		}
		return
	}

	response.Success(w, http.StatusOK, "Result recorded successfully", test)
}
