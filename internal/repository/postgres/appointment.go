package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
	apperrors "github.com/Debye-Igor/centro-paye-sistema/pkg/errors"
)

const appointmentColumns = `
	id, date, time_slot, patient_id, service_id, practitioner_id,
	status, notes, origin_appointment_id, reschedule_reason,
	rescheduled_at, final_rescheduled_at, new_date, new_time_slot,
	created_by, rescheduled_by, created_at, updated_at
`

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, date, time_slot, patient_id, service_id, practitioner_id,
			status, notes, origin_appointment_id, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.Date,
		appointment.TimeSlot,
		appointment.PatientID,
		appointment.ServiceID,
		appointment.PractitionerID,
		appointment.Status,
		appointment.Notes,
		appointment.OriginAppointmentID,
		appointment.CreatedBy,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return storeErr("appointment", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, storeErr("appointment", err)
	}
	appointment.Normalize()
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, notes = $2, reschedule_reason = $3,
			rescheduled_at = $4, final_rescheduled_at = $5,
			new_date = $6, new_time_slot = $7, rescheduled_by = $8,
			updated_at = $9
		WHERE id = $10
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Status,
		appointment.Notes,
		appointment.RescheduleReason,
		appointment.RescheduledAt,
		appointment.FinalRescheduledAt,
		appointment.NewDate,
		appointment.NewTimeSlot,
		appointment.RescheduledBy,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return storeErr("appointment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("appointment", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return storeErr("appointment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("appointment", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) ListRange(ctx context.Context, from, through string) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= $1 AND date <= $2
		ORDER BY date, time_slot
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, from, through); err != nil {
		return nil, storeErr("appointments", err)
	}
	for _, a := range appointments {
		a.Normalize()
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = $1
		ORDER BY date, time_slot
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, status); err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDay(ctx context.Context, date string, practitionerID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date = $1 AND practitioner_id = $2 AND status = $3
		ORDER BY time_slot
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, date, practitionerID, model.AppointmentStatusScheduled)
	if err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasConflict(ctx context.Context, date, timeSlot string, practitionerID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE date = $1
			AND time_slot = $2
			AND practitioner_id = $3
			AND status = $4
		)
	`
	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, date, timeSlot, practitionerID, model.AppointmentStatusScheduled)
	if err != nil {
		return false, storeErr("appointments", err)
	}
	return hasConflict, nil
}

// Reschedule inserts the successor and flips the original to rescheduled
// inside one transaction, so a crash between the two writes cannot leave
// a half-committed reschedule behind.
func (r *appointmentRepository) Reschedule(ctx context.Context, original, successor *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("appointment", err)
	}
	defer tx.Rollback()

	if successor.ID == uuid.Nil {
		successor.ID = uuid.New()
	}
	successor.CreatedAt = time.Now()
	successor.UpdatedAt = time.Now()

	insert := `
		INSERT INTO appointments (
			id, date, time_slot, patient_id, service_id, practitioner_id,
			status, notes, origin_appointment_id, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, insert,
		successor.ID,
		successor.Date,
		successor.TimeSlot,
		successor.PatientID,
		successor.ServiceID,
		successor.PractitionerID,
		successor.Status,
		successor.Notes,
		successor.OriginAppointmentID,
		successor.CreatedBy,
		successor.CreatedAt,
		successor.UpdatedAt,
	)
	if err != nil {
		return storeErr("appointment", err)
	}

	update := `
		UPDATE appointments
		SET status = $1, final_rescheduled_at = $2, new_date = $3,
			new_time_slot = $4, rescheduled_by = $5, updated_at = $6
		WHERE id = $7
	`
	original.UpdatedAt = time.Now()
	result, err := tx.ExecContext(ctx, update,
		original.Status,
		original.FinalRescheduledAt,
		original.NewDate,
		original.NewTimeSlot,
		original.RescheduledBy,
		original.UpdatedAt,
		original.ID,
	)
	if err != nil {
		return storeErr("appointment", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("appointment", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("appointment", err)
	}
	return nil
}
