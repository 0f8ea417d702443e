package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) PublishSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.slotUsecase.PublishSlots(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use YYYY-MM-DD HH:MM:SS", nil)
		default:
			response.InternalServerError(w, "Failed to publish slots")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slots published successfully", result)
}

func (h *SlotHandler) GetMySlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slotUsecase.GetMySlots(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	slots, err := h.slotUsecase.GetDoctorSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), slotID); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotBooked:
			response.Conflict(w, "Slot is booked and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}
