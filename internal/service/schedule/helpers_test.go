package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/email"
	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/logger"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/metrics"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.NewMetrics("schedule_test")

var errStoreDown = errors.New("store unreachable")

// fakeAppointmentRepo is an in-memory AppointmentRepository with failure
// toggles for exercising the degraded paths.
type fakeAppointmentRepo struct {
	byID  map[uuid.UUID]*model.Appointment
	order []uuid.UUID

	failList     bool
	failConflict bool
	failCreate   bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) clone(apt *model.Appointment) *model.Appointment {
	copied := *apt
	return &copied
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	if r.failCreate {
		return apperrors.Unavailable(errStoreDown)
	}
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	apt.Normalize()
	if apt.Occupies() {
		for _, existing := range r.byID {
			if existing.Occupies() && existing.Date == apt.Date &&
				existing.TimeSlot == apt.TimeSlot && existing.PractitionerID == apt.PractitionerID {
				return apperrors.Conflict("slot already booked for this practitioner")
			}
		}
	}
	r.byID[apt.ID] = r.clone(apt)
	r.order = append(r.order, apt.ID)
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", fmt.Errorf("id %s", id))
	}
	return r.clone(apt), nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.byID[apt.ID]; !ok {
		return apperrors.NotFound("appointment", fmt.Errorf("id %s", apt.ID))
	}
	r.byID[apt.ID] = r.clone(apt)
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.NotFound("appointment", fmt.Errorf("id %s", id))
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) ListRange(_ context.Context, from, through string) ([]*model.Appointment, error) {
	if r.failList {
		return nil, apperrors.Unavailable(errStoreDown)
	}
	var out []*model.Appointment
	for _, id := range r.order {
		apt := r.byID[id]
		if apt.Date >= from && apt.Date <= through {
			out = append(out, r.clone(apt))
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByStatus(_ context.Context, status model.AppointmentStatus) ([]*model.Appointment, error) {
	if r.failList {
		return nil, apperrors.Unavailable(errStoreDown)
	}
	var out []*model.Appointment
	for _, id := range r.order {
		if apt := r.byID[id]; apt.Status == status {
			out = append(out, r.clone(apt))
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForDay(_ context.Context, date string, practitionerID uuid.UUID) ([]*model.Appointment, error) {
	if r.failList {
		return nil, apperrors.Unavailable(errStoreDown)
	}
	var out []*model.Appointment
	for _, id := range r.order {
		apt := r.byID[id]
		if apt.Occupies() && apt.Date == date && apt.PractitionerID == practitionerID {
			out = append(out, r.clone(apt))
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) HasConflict(_ context.Context, date, timeSlot string, practitionerID uuid.UUID) (bool, error) {
	if r.failConflict {
		return false, apperrors.Unavailable(errStoreDown)
	}
	for _, apt := range r.byID {
		if apt.Occupies() && apt.Date == date && apt.TimeSlot == timeSlot && apt.PractitionerID == practitionerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) Reschedule(ctx context.Context, original, successor *model.Appointment) error {
	if err := r.Update(ctx, original); err != nil {
		return err
	}
	return r.Create(ctx, successor)
}

type fakePatientRepo struct {
	byID map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("patient", fmt.Errorf("id %s", id))
	}
	return p, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error    { return nil }

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

type fakeServiceRepo struct {
	byID map[uuid.UUID]*model.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, s *model.Service) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("service", fmt.Errorf("id %s", id))
	}
	return s, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *model.Service) error { return nil }
func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error     { return nil }

func (r *fakeServiceRepo) List(_ context.Context, status string) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range r.byID {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID  map[uuid.UUID]*model.User
	order []uuid.UUID
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user", fmt.Errorf("id %s", id))
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", fmt.Errorf("email %s", email))
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error  { return nil }

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*model.User, error) {
	var out []*model.User
	for _, id := range r.order {
		if u := r.byID[id]; u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	hours   *model.OperatingHours
	failGet bool
}

func (r *fakeSettingsRepo) GetOperatingHours(_ context.Context, defaults model.OperatingHours) (*model.OperatingHours, error) {
	if r.failGet {
		return nil, apperrors.Unavailable(errStoreDown)
	}
	if r.hours == nil {
		stored := defaults
		r.hours = &stored
	}
	return r.hours, nil
}

func (r *fakeSettingsRepo) UpdateOperatingHours(_ context.Context, hours *model.OperatingHours) error {
	r.hours = hours
	return nil
}

// fixture bundles the service under test with its fakes and seeded IDs.
type fixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	settings     *fakeSettingsRepo

	actorID       uuid.UUID
	patientID     uuid.UUID
	serviceID     uuid.UUID
	practitioner1 uuid.UUID
	practitioner2 uuid.UUID
}

func newFixture() *fixture {
	appointments := newFakeAppointmentRepo()
	patients := &fakePatientRepo{byID: make(map[uuid.UUID]*model.Patient)}
	services := &fakeServiceRepo{byID: make(map[uuid.UUID]*model.Service)}
	users := &fakeUserRepo{byID: make(map[uuid.UUID]*model.User)}
	settings := &fakeSettingsRepo{}

	f := &fixture{
		appointments:  appointments,
		settings:      settings,
		actorID:       uuid.New(),
		patientID:     uuid.New(),
		serviceID:     uuid.New(),
		practitioner1: uuid.New(),
		practitioner2: uuid.New(),
	}

	ctx := context.Background()
	patients.Create(ctx, &model.Patient{
		Base:         model.Base{ID: f.patientID},
		Name:         "Martina Soto",
		BirthDate:    "2018-05-12",
		GuardianName: "Paula Soto",
		Email:        "paula.soto@example.com",
	})
	services.Create(ctx, &model.Service{
		Base:   model.Base{ID: f.serviceID},
		Name:   "Fonoaudiología",
		Status: "active",
	})
	users.Create(ctx, &model.User{
		Base: model.Base{ID: f.practitioner1},
		Name: "Carla Núñez", Role: model.UserRoleProfessional, Status: model.UserStatusActive,
	})
	users.Create(ctx, &model.User{
		Base: model.Base{ID: f.practitioner2},
		Name: "Diego Rojas", Role: model.UserRoleProfessional, Status: model.UserStatusActive,
	})
	users.Create(ctx, &model.User{
		Base: model.Base{ID: f.actorID},
		Name: "Admin", Role: model.UserRoleAdmin, Status: model.UserStatusActive,
	})

	grid := NewGridGenerator(settings, model.OperatingHours{}, logger.NewLogger(nil))
	f.svc = NewService(appointments, patients, services, users, settings, grid,
		email.NoopService{}, nil, testMetrics, logger.NewLogger(nil))
	return f
}

func (f *fixture) book(ctx context.Context, date, slot string, practitionerID uuid.UUID) (*model.Appointment, error) {
	return f.svc.BookAppointment(ctx, f.actorID, &model.CreateAppointmentRequest{
		Date:           date,
		TimeSlot:       slot,
		PatientID:      f.patientID,
		ServiceID:      f.serviceID,
		PractitionerID: practitionerID,
	})
}
