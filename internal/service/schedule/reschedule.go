package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/messaging"
)

// The reschedule lifecycle is deliberately two-phase: marking says
// "this slot needs to move" and frees it immediately; committing says
// "this is where it moved to" and spawns the replacement appointment.

// MarkForReschedule flips an appointment to pending_reschedule,
// recording the reason and timestamp. The slot is free for new bookings
// from this point on.
func (s *Service) MarkForReschedule(ctx context.Context, actorID, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	apt.Status = model.AppointmentStatusPendingReschedule
	apt.RescheduleReason = &reason
	apt.RescheduledAt = &now
	apt.RescheduledBy = &actorID

	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.metrics.ReschedulesMarked.Inc()
	s.publish(ctx, messaging.EventRescheduleMarked, apt)
	s.notifyMarked(ctx, apt, reason)
	return apt, nil
}

// RescheduleQueue lists the appointments waiting for a new slot, as
// display-ready rows.
func (s *Service) RescheduleQueue(ctx context.Context) ([]model.RescheduleItem, error) {
	pending, err := s.appointments.ListByStatus(ctx, model.AppointmentStatusPendingReschedule)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reschedules: %w", err)
	}

	items := make([]model.RescheduleItem, 0, len(pending))
	for _, apt := range pending {
		items = append(items, s.proj.rescheduleItem(ctx, apt))
	}
	return items, nil
}

// RescheduleOptions gathers what the reschedule form needs: a summary
// of the pending appointment, free slots for the chosen date and
// practitioner, and the roster minus the current practitioner. Date
// defaults to tomorrow, practitioner to the appointment's own.
func (s *Service) RescheduleOptions(ctx context.Context, id uuid.UUID, date string, practitionerID uuid.UUID) (*model.RescheduleOptions, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status != model.AppointmentStatusPendingReschedule {
		return nil, apperrors.Validation("appointment is not pending reschedule")
	}

	today := time.Now()
	suggested := today.AddDate(0, 0, 1).Format(model.DateLayout)
	if date == "" {
		date = suggested
	}
	if practitionerID == uuid.Nil {
		practitionerID = apt.PractitionerID
	}

	roster, err := s.Practitioners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list practitioners: %w", err)
	}
	options := make([]model.PractitionerOption, 0, len(roster))
	for _, u := range roster {
		if u.ID == apt.PractitionerID {
			continue
		}
		options = append(options, model.PractitionerOption{ID: u.ID, Name: u.Name})
	}

	return &model.RescheduleOptions{
		Original:       s.proj.rescheduleItem(ctx, apt),
		AvailableSlots: s.AvailableSlots(ctx, date, practitionerID),
		Practitioners:  options,
		MinDate:        today.Format(model.DateLayout),
		SuggestedDate:  suggested,
	}, nil
}

// CommitReschedule moves a pending appointment to its new slot: a new
// scheduled appointment is created with a provenance note and a
// back-reference to the original, and the original becomes an immutable
// rescheduled record carrying the new coordinates. Conflict check
// failure aborts before any write.
func (s *Service) CommitReschedule(ctx context.Context, actorID, id uuid.UUID, req *model.CommitRescheduleRequest) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status != model.AppointmentStatusPendingReschedule {
		return nil, apperrors.Validation("appointment is not pending reschedule")
	}

	if req.NewDate == "" || req.NewTimeSlot == "" || req.NewPractitionerID == uuid.Nil {
		return nil, apperrors.Validation("new date, time slot and practitioner are required")
	}

	conflict, err := s.hasConflict(ctx, req.NewDate, req.NewTimeSlot, req.NewPractitionerID)
	if err != nil {
		return nil, err
	}
	if conflict {
		s.metrics.BookingConflicts.Inc()
		return nil, apperrors.Conflict("slot already booked for this practitioner")
	}

	successor := &model.Appointment{
		Date:                req.NewDate,
		TimeSlot:            req.NewTimeSlot,
		PatientID:           apt.PatientID,
		ServiceID:           apt.ServiceID,
		PractitionerID:      req.NewPractitionerID,
		Status:              model.AppointmentStatusScheduled,
		Notes:               fmt.Sprintf("Reprogramada desde %s %s. %s", apt.Date, apt.TimeSlot, req.Notes),
		OriginAppointmentID: &apt.ID,
		CreatedBy:           actorID,
	}

	now := time.Now()
	apt.Status = model.AppointmentStatusRescheduled
	apt.FinalRescheduledAt = &now
	apt.NewDate = &req.NewDate
	apt.NewTimeSlot = &req.NewTimeSlot
	apt.RescheduledBy = &actorID

	if err := s.appointments.Reschedule(ctx, apt, successor); err != nil {
		return nil, err
	}

	s.metrics.ReschedulesDone.Inc()
	s.publish(ctx, messaging.EventRescheduleCommitted, successor)
	s.notifyCommitted(ctx, successor)
	return successor, nil
}

func (s *Service) notifyMarked(ctx context.Context, apt *model.Appointment, reason string) {
	patient, err := s.patients.Get(ctx, apt.PatientID)
	if err != nil || patient.Email == "" {
		return
	}
	if err := s.mailer.SendRescheduleMarked(ctx, patient.Email, patient.Name, apt.Date, apt.TimeSlot, reason); err != nil {
		s.logger.Warn("failed to send reschedule notification", "error", err.Error())
	}
}

func (s *Service) notifyCommitted(ctx context.Context, successor *model.Appointment) {
	patient, err := s.patients.Get(ctx, successor.PatientID)
	if err != nil || patient.Email == "" {
		return
	}
	if err := s.mailer.SendRescheduleCommitted(ctx, patient.Email, patient.Name, successor.Date, successor.TimeSlot); err != nil {
		s.logger.Warn("failed to send reschedule notification", "error", err.Error())
	}
}
