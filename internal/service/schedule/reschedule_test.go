package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
)

func TestMarkForReschedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	marked, err := f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "patient request")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPendingReschedule, marked.Status)
	require.NotNil(t, marked.RescheduleReason)
	assert.Equal(t, "patient request", *marked.RescheduleReason)
	assert.NotNil(t, marked.RescheduledAt)
	require.NotNil(t, marked.RescheduledBy)
	assert.Equal(t, f.actorID, *marked.RescheduledBy)
}

func TestMarkForRescheduleFreesSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "patient request")
	require.NoError(t, err)

	// The freed slot accepts a new booking immediately.
	_, err = f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	assert.NoError(t, err)
}

func TestMarkForRescheduleNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.MarkForReschedule(context.Background(), f.actorID, uuid.New(), "x")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestRescheduleQueue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "vacaciones")
	require.NoError(t, err)

	_, err = f.book(ctx, "2025-03-11", "11:00", f.practitioner2)
	require.NoError(t, err)

	queue, err := f.svc.RescheduleQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, apt.ID, queue[0].ID)
	assert.Equal(t, "Martina Soto", queue[0].Patient)
	assert.Equal(t, "2025-03-10", queue[0].OriginalDate)
	assert.Equal(t, "10:00", queue[0].OriginalTime)
	assert.Equal(t, "vacaciones", queue[0].Reason)
}

func TestRescheduleQueueDefaultReason(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "")
	require.NoError(t, err)

	queue, err := f.svc.RescheduleQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "Sin motivo especificado", queue[0].Reason)
}

func TestRescheduleOptions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "vacaciones")
	require.NoError(t, err)

	opts, err := f.svc.RescheduleOptions(ctx, apt.ID, "2025-03-11", uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, apt.ID, opts.Original.ID)
	assert.Len(t, opts.AvailableSlots, 10, "the target day is empty")
	require.Len(t, opts.Practitioners, 1, "current practitioner is excluded")
	assert.Equal(t, f.practitioner2, opts.Practitioners[0].ID)
	assert.NotEmpty(t, opts.MinDate)
	assert.NotEmpty(t, opts.SuggestedDate)
}

func TestRescheduleOptionsRequiresPendingStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	_, err = f.svc.RescheduleOptions(ctx, apt.ID, "", uuid.Nil)

	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestCommitReschedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "vacaciones")
	require.NoError(t, err)

	successor, err := f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewDate:           "2025-03-11",
		NewTimeSlot:       "11:00",
		NewPractitionerID: f.practitioner2,
		Notes:             "trae informes previos",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, successor.Status)
	assert.Equal(t, "2025-03-11", successor.Date)
	assert.Equal(t, "11:00", successor.TimeSlot)
	assert.Equal(t, f.practitioner2, successor.PractitionerID)
	assert.Equal(t, apt.PatientID, successor.PatientID)
	require.NotNil(t, successor.OriginAppointmentID)
	assert.Equal(t, apt.ID, *successor.OriginAppointmentID)
	assert.Equal(t, "Reprogramada desde 2025-03-10 10:00. trae informes previos", successor.Notes)

	original, err := f.svc.GetAppointment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusRescheduled, original.Status)
	assert.NotNil(t, original.FinalRescheduledAt)
	require.NotNil(t, original.NewDate)
	assert.Equal(t, "2025-03-11", *original.NewDate)
	require.NotNil(t, original.NewTimeSlot)
	assert.Equal(t, "11:00", *original.NewTimeSlot)
}

func TestCommitRescheduleRequiresPendingStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	_, err = f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewDate: "2025-03-11", NewTimeSlot: "11:00", NewPractitionerID: f.practitioner1,
	})

	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestCommitRescheduleValidatesTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "")
	require.NoError(t, err)

	_, err = f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewTimeSlot: "11:00", NewPractitionerID: f.practitioner1,
	})
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	_, err = f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewDate: "2025-03-11", NewTimeSlot: "11:00",
	})
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestCommitRescheduleConflictOnTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.book(ctx, "2025-03-11", "11:00", f.practitioner2)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "")
	require.NoError(t, err)

	_, err = f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewDate: "2025-03-11", NewTimeSlot: "11:00", NewPractitionerID: f.practitioner2,
	})

	assert.True(t, apperrors.IsConflict(err))

	// The original is untouched.
	original, err := f.svc.GetAppointment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPendingReschedule, original.Status)
}

func TestCommitRescheduleConflictCheckFailureAborts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)
	_, err = f.svc.MarkForReschedule(ctx, f.actorID, apt.ID, "")
	require.NoError(t, err)
	f.appointments.failConflict = true

	_, err = f.svc.CommitReschedule(ctx, f.actorID, apt.ID, &model.CommitRescheduleRequest{
		NewDate: "2025-03-11", NewTimeSlot: "11:00", NewPractitionerID: f.practitioner2,
	})

	require.Error(t, err)
	f.appointments.failConflict = false
	original, err := f.svc.GetAppointment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPendingReschedule, original.Status)
	assert.Len(t, f.appointments.byID, 1, "no successor was written")
}

// Full lifecycle: book, collide, mark, rebook the freed slot, commit to
// a new practitioner and slot, verify linkage on both records.
func TestRescheduleLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	_, err = f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.True(t, apperrors.IsConflict(err))

	_, err = f.svc.MarkForReschedule(ctx, f.actorID, first.ID, "patient request")
	require.NoError(t, err)

	replacement, err := f.book(ctx, "2025-03-10", "10:00", f.practitioner1)
	require.NoError(t, err)

	successor, err := f.svc.CommitReschedule(ctx, f.actorID, first.ID, &model.CommitRescheduleRequest{
		NewDate:           "2025-03-11",
		NewTimeSlot:       "11:00",
		NewPractitionerID: f.practitioner2,
	})
	require.NoError(t, err)

	// Three live records: the replacement booking, the successor, and
	// the original as an immutable audit row.
	listed, err := f.svc.ListScheduled(ctx, "2025-03-10", "2025-03-16")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	original, err := f.svc.GetAppointment(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusRescheduled, original.Status)
	assert.Equal(t, "2025-03-11", *original.NewDate)
	assert.Equal(t, "11:00", *original.NewTimeSlot)
	assert.Equal(t, first.ID, *successor.OriginAppointmentID)
	assert.Equal(t, replacement.PractitionerID, f.practitioner1)
	assert.Equal(t, "Reprogramada desde 2025-03-10 10:00. ", successor.Notes)
}
