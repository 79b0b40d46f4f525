package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/email"
	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/logger"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/messaging"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/metrics"
)

// Service is the scheduling engine: week grid assembly, conflict-gated
// booking and the reschedule lifecycle.
type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	catalog      repository.ServiceRepository
	users        repository.UserRepository
	settings     repository.SettingsRepository
	grid         *GridGenerator
	proj         *projector
	mailer       email.Service
	broker       messaging.Broker
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	catalog repository.ServiceRepository,
	users repository.UserRepository,
	settings repository.SettingsRepository,
	grid *GridGenerator,
	mailer email.Service,
	broker messaging.Broker,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		catalog:      catalog,
		users:        users,
		settings:     settings,
		grid:         grid,
		proj:         newProjector(patients, catalog, users),
		mailer:       mailer,
		broker:       broker,
		metrics:      m,
		logger:       logger,
	}
}

// hasConflict is the conflict detector. On detector failure the error
// propagates so no write proceeds while conflict status is unknown.
func (s *Service) hasConflict(ctx context.Context, date, timeSlot string, practitionerID uuid.UUID) (bool, error) {
	start := time.Now()
	conflict, err := s.appointments.HasConflict(ctx, date, timeSlot, practitionerID)
	s.metrics.ConflictCheckTime.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.StoreErrors.WithLabelValues("conflict_check").Inc()
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return conflict, nil
}

// BookAppointment creates a scheduled appointment at the requested slot
// after the conflict gate passes.
func (s *Service) BookAppointment(ctx context.Context, actorID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req.Date == "" || req.TimeSlot == "" {
		return nil, apperrors.Validation("date and time slot are required")
	}
	if req.PatientID == uuid.Nil || req.ServiceID == uuid.Nil || req.PractitionerID == uuid.Nil {
		return nil, apperrors.Validation("patient, service and practitioner are required")
	}

	conflict, err := s.hasConflict(ctx, req.Date, req.TimeSlot, req.PractitionerID)
	if err != nil {
		return nil, err
	}
	if conflict {
		s.metrics.BookingConflicts.Inc()
		return nil, apperrors.Conflict("slot already booked for this practitioner")
	}

	apt := &model.Appointment{
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		PatientID:      req.PatientID,
		ServiceID:      req.ServiceID,
		PractitionerID: req.PractitionerID,
		Status:         model.AppointmentStatusScheduled,
		Notes:          req.Notes,
		CreatedBy:      actorID,
	}
	if err := s.appointments.Create(ctx, apt); err != nil {
		return nil, err
	}

	s.metrics.BookingsTotal.Inc()
	s.publish(ctx, messaging.EventAppointmentCreated, apt)
	return apt, nil
}

// GetAppointment returns one appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

// DeleteAppointment removes an appointment permanently, any status.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.AppointmentsFreed.Inc()
	s.publish(ctx, messaging.EventAppointmentDeleted, apt)
	return nil
}

// ListScheduled returns scheduled appointments with date in
// [from, through]; pending and rescheduled rows never appear.
func (s *Service) ListScheduled(ctx context.Context, from, through string) ([]*model.Appointment, error) {
	all, err := s.appointments.ListRange(ctx, from, through)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	scheduled := make([]*model.Appointment, 0, len(all))
	for _, apt := range all {
		if apt.Occupies() {
			scheduled = append(scheduled, apt)
		}
	}
	return scheduled, nil
}

// CalendarWeek builds the weekly calendar view for the week containing
// weekOf (today when empty). The occupied map is best-effort: a store
// failure yields an empty map, never a failed view.
func (s *Service) CalendarWeek(ctx context.Context, weekOf string) (*model.CalendarView, error) {
	anchor := time.Now()
	if weekOf != "" {
		parsed, err := time.Parse(model.DateLayout, weekOf)
		if err != nil {
			return nil, apperrors.Validation("invalid week date")
		}
		anchor = parsed
	}

	grid := s.grid.BuildGrid(ctx, anchor)
	view := &model.CalendarView{
		Grid:    grid,
		Entries: make(map[string]model.CalendarEntry),
	}

	appointments, err := s.appointments.ListRange(ctx, grid.Days[0].Date, grid.Days[6].Date)
	if err != nil {
		s.logger.Error(err, "failed to load week appointments, rendering empty calendar")
		s.metrics.StoreErrors.WithLabelValues("calendar_list").Inc()
		return view, nil
	}

	for _, apt := range appointments {
		if !apt.Occupies() {
			continue
		}
		view.Entries[model.CellKey(apt.Date, apt.TimeSlot)] = s.proj.entry(ctx, apt)
	}
	return view, nil
}

// AvailableSlots computes the free slots for a date and practitioner by
// subtracting occupied slots from the full range. Falls back to the
// full range when the store is unreachable; availability display is
// best-effort.
func (s *Service) AvailableSlots(ctx context.Context, date string, practitionerID uuid.UUID) []string {
	slots := s.grid.Slots(ctx)

	booked, err := s.appointments.ListForDay(ctx, date, practitionerID)
	if err != nil {
		s.logger.Error(err, "failed to load day appointments, offering full slot range")
		return slots
	}

	occupied := make(map[string]bool, len(booked))
	for _, apt := range booked {
		occupied[apt.TimeSlot] = true
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if !occupied[slot] {
			available = append(available, slot)
		}
	}
	return available
}

// Practitioners returns the professional roster.
func (s *Service) Practitioners(ctx context.Context) ([]*model.User, error) {
	return s.users.ListByRole(ctx, model.UserRoleProfessional)
}

// OperatingHours returns the singleton, lazily created with defaults.
func (s *Service) OperatingHours(ctx context.Context) (*model.OperatingHours, error) {
	return s.settings.GetOperatingHours(ctx, s.grid.defaults)
}

// UpdateOperatingHours replaces the clinic hours.
func (s *Service) UpdateOperatingHours(ctx context.Context, req *model.UpdateOperatingHoursRequest) (*model.OperatingHours, error) {
	open, errOpen := hourOf(req.OpenTime)
	closeH, errClose := hourOf(req.CloseTime)
	if errOpen != nil || errClose != nil {
		return nil, apperrors.Validation("times must be HH:MM")
	}
	if open >= closeH {
		return nil, apperrors.Validation("opening time must be before closing time")
	}

	hours := &model.OperatingHours{OpenTime: req.OpenTime, CloseTime: req.CloseTime}
	if err := s.settings.UpdateOperatingHours(ctx, hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	event := messaging.Event{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, messaging.AppointmentsChannel, event); err != nil {
		s.logger.Warn("failed to publish event", "type", eventType, "error", err.Error())
	}
}
