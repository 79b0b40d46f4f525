package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled         AppointmentStatus = "scheduled"
	AppointmentStatusPendingReschedule AppointmentStatus = "pending_reschedule"
	AppointmentStatusRescheduled       AppointmentStatus = "rescheduled"
)

// Appointment is the central scheduling entity. Date and TimeSlot are
// wall-clock strings ("2006-01-02" and "HH:00"); no time zone is modeled.
type Appointment struct {
	Base
	Date           string            `db:"date" json:"date"`
	TimeSlot       string            `db:"time_slot" json:"time_slot"`
	PatientID      uuid.UUID         `db:"patient_id" json:"patient_id"`
	ServiceID      uuid.UUID         `db:"service_id" json:"service_id"`
	PractitionerID uuid.UUID         `db:"practitioner_id" json:"practitioner_id"`
	Status         AppointmentStatus `db:"status" json:"status"`
	Notes          string            `db:"notes" json:"notes,omitempty"`

	// Reschedule lifecycle metadata. OriginAppointmentID is set only on
	// appointments spawned by a commit-reschedule and points at the
	// appointment they replace; it is an audit back-reference, not an
	// ownership link.
	OriginAppointmentID *uuid.UUID `db:"origin_appointment_id" json:"origin_appointment_id,omitempty"`
	RescheduleReason    *string    `db:"reschedule_reason" json:"reschedule_reason,omitempty"`
	RescheduledAt       *time.Time `db:"rescheduled_at" json:"rescheduled_at,omitempty"`
	FinalRescheduledAt  *time.Time `db:"final_rescheduled_at" json:"final_rescheduled_at,omitempty"`
	NewDate             *string    `db:"new_date" json:"new_date,omitempty"`
	NewTimeSlot         *string    `db:"new_time_slot" json:"new_time_slot,omitempty"`

	CreatedBy     uuid.UUID  `db:"created_by" json:"created_by"`
	RescheduledBy *uuid.UUID `db:"rescheduled_by" json:"rescheduled_by,omitempty"`
}

// Normalize applies the explicit default for rows written before the
// status column existed: no status means scheduled.
func (a *Appointment) Normalize() {
	if a.Status == "" {
		a.Status = AppointmentStatusScheduled
	}
}

// Occupies reports whether the appointment claims its slot for the
// uniqueness rule. Pending and rescheduled appointments free their slot.
func (a *Appointment) Occupies() bool {
	return a.Status == AppointmentStatusScheduled
}

type CreateAppointmentRequest struct {
	Date           string    `json:"date" binding:"required,datetime=2006-01-02"`
	TimeSlot       string    `json:"time_slot" binding:"required,timeslot"`
	PatientID      uuid.UUID `json:"patient_id" binding:"required"`
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	PractitionerID uuid.UUID `json:"practitioner_id" binding:"required"`
	Notes          string    `json:"notes" binding:"max=1000"`
}

type MarkRescheduleRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type CommitRescheduleRequest struct {
	NewDate           string    `json:"new_date" binding:"required,datetime=2006-01-02"`
	NewTimeSlot       string    `json:"new_time_slot" binding:"required,timeslot"`
	NewPractitionerID uuid.UUID `json:"new_practitioner_id" binding:"required"`
	Notes             string    `json:"notes" binding:"max=1000"`
}

type AppointmentFilters struct {
	DateFrom       string
	DateThrough    string
	PractitionerID uuid.UUID
	Status         AppointmentStatus
}
