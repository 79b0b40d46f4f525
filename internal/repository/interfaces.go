package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository is the read/query/write contract the
	// scheduling engine consumes. Each call is independently atomic at
	// the single-row level; Reschedule is the one multi-row operation
	// and implementations must make it transactional.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error

		// ListRange returns appointments with date in [from, through],
		// inclusive on both ends, any status.
		ListRange(ctx context.Context, from, through string) ([]*model.Appointment, error)
		// ListByStatus returns all appointments in the given status.
		ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error)
		// ListForDay returns scheduled appointments for one date and
		// practitioner, used for free-slot computation.
		ListForDay(ctx context.Context, date string, practitionerID uuid.UUID) ([]*model.Appointment, error)
		// HasConflict reports whether a scheduled appointment already
		// occupies (date, timeSlot, practitionerID).
		HasConflict(ctx context.Context, date, timeSlot string, practitionerID uuid.UUID) (bool, error)
		// Reschedule creates the successor and marks the original
		// rescheduled as one unit.
		Reschedule(ctx context.Context, original, successor *model.Appointment) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, status string) ([]*model.Service, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.User, error)
		ListByRole(ctx context.Context, role string) ([]*model.User, error)
	}

	// SettingsRepository manages the operating-hours singleton.
	SettingsRepository interface {
		// GetOperatingHours returns the singleton, creating it with the
		// supplied defaults on first access.
		GetOperatingHours(ctx context.Context, defaults model.OperatingHours) (*model.OperatingHours, error)
		UpdateOperatingHours(ctx context.Context, hours *model.OperatingHours) error
	}
)
