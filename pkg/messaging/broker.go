package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the envelope published on appointment lifecycle changes.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Appointment lifecycle event types
const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentDeleted  = "appointment.deleted"
	EventRescheduleMarked    = "appointment.reschedule_marked"
	EventRescheduleCommitted = "appointment.reschedule_committed"

	AppointmentsChannel = "appointments"
)
