package service

import (
	"context"
	"encoding/json"
	"time"

	"go-clinic-booking/config"
	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Booking event types
const (
	EventAppointmentClaimed   = "appointment.claimed"
	EventAppointmentCancelled = "appointment.cancelled"
)

const publishTimeout = 5 * time.Second

// BookingEvent is the message published for downstream consumers
// (notifications, analytics) on every booking lifecycle change.
type BookingEvent struct {
	Type          string    `json:"type"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingEventService publishes booking lifecycle events to Kafka.
// Publishing happens after the database transaction commits and is strictly
// best-effort: failures are logged and never surfaced to the caller.
// A service built with an empty broker address is a no-op.
type BookingEventService struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

func NewBookingEventService(cfg config.KafkaConfig, log *logrus.Logger) *BookingEventService {
	svc := &BookingEventService{log: log}
	if cfg.Broker == "" {
		return svc
	}

	svc.writer = kafka.NewWriter(kafka.WriterConfig{
		Brokers:  []string{cfg.Broker},
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	})
	return svc
}

// PublishClaimed emits an appointment.claimed event
func (s *BookingEventService) PublishClaimed(appointment *entity.Appointment) {
	s.publish(EventAppointmentClaimed, appointment)
}

// PublishCancelled emits an appointment.cancelled event
func (s *BookingEventService) PublishCancelled(appointment *entity.Appointment) {
	s.publish(EventAppointmentCancelled, appointment)
}

func (s *BookingEventService) publish(eventType string, appointment *entity.Appointment) {
	if s.writer == nil {
		return
	}

	event := BookingEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		ScheduledTime: appointment.ScheduledTime,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Warnf("Failed to marshal booking event %s: %+v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(appointment.ID.String()),
		Value: payload,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.log.Warnf("Failed to publish booking event %s for appointment %s: %+v", eventType, appointment.ID, err)
	}
}

// Close releases the underlying Kafka writer
func (s *BookingEventService) Close() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}
