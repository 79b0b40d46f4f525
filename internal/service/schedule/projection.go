package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
)

// Display fallbacks: a missing referenced record renders as "N/A", a
// failed lookup as "Error". The view stays best-effort either way.
const (
	displayMissing = "N/A"
	displayError   = "Error"
)

// projector resolves appointment foreign keys to display names once per
// list operation, keeping the conflict detector and state machine free
// of display concerns. Names are cached briefly since the calendar
// re-reads the same handful of records on every request.
type projector struct {
	patients repository.PatientRepository
	services repository.ServiceRepository
	users    repository.UserRepository
	cache    *gocache.Cache
}

func newProjector(patients repository.PatientRepository, services repository.ServiceRepository, users repository.UserRepository) *projector {
	return &projector{
		patients: patients,
		services: services,
		users:    users,
		cache:    gocache.New(2*time.Minute, 10*time.Minute),
	}
}

func (p *projector) lookup(key string, fetch func() (string, error)) string {
	if name, ok := p.cache.Get(key); ok {
		return name.(string)
	}
	name, err := fetch()
	if err != nil {
		if apperrors.IsNotFound(err) {
			p.cache.Set(key, displayMissing, gocache.DefaultExpiration)
			return displayMissing
		}
		return displayError
	}
	p.cache.Set(key, name, gocache.DefaultExpiration)
	return name
}

func (p *projector) patientName(ctx context.Context, id uuid.UUID) string {
	return p.lookup("patient:"+id.String(), func() (string, error) {
		patient, err := p.patients.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return patient.Name, nil
	})
}

func (p *projector) serviceName(ctx context.Context, id uuid.UUID) string {
	return p.lookup("service:"+id.String(), func() (string, error) {
		service, err := p.services.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return service.Name, nil
	})
}

func (p *projector) practitionerName(ctx context.Context, id uuid.UUID) string {
	return p.lookup("user:"+id.String(), func() (string, error) {
		user, err := p.users.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return user.Name, nil
	})
}

// entry builds the display-ready calendar cell for an appointment.
func (p *projector) entry(ctx context.Context, apt *model.Appointment) model.CalendarEntry {
	return model.CalendarEntry{
		ID:           apt.ID,
		Patient:      p.patientName(ctx, apt.PatientID),
		Service:      p.serviceName(ctx, apt.ServiceID),
		Practitioner: p.practitionerName(ctx, apt.PractitionerID),
		Status:       apt.Status,
		Notes:        apt.Notes,
	}
}

// rescheduleItem builds one display-ready queue row.
func (p *projector) rescheduleItem(ctx context.Context, apt *model.Appointment) model.RescheduleItem {
	reason := "Sin motivo especificado"
	if apt.RescheduleReason != nil && *apt.RescheduleReason != "" {
		reason = *apt.RescheduleReason
	}
	return model.RescheduleItem{
		ID:           apt.ID,
		Patient:      p.patientName(ctx, apt.PatientID),
		Service:      p.serviceName(ctx, apt.ServiceID),
		Practitioner: p.practitionerName(ctx, apt.PractitionerID),
		OriginalDate: apt.Date,
		OriginalTime: apt.TimeSlot,
		Reason:       reason,
	}
}
