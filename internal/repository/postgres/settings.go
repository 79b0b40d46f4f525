package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
)

// The operating-hours singleton lives in a one-row table keyed by a
// fixed id, lazily created with defaults on first read.
const settingsKey = "clinic_hours"

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetOperatingHours(ctx context.Context, defaults model.OperatingHours) (*model.OperatingHours, error) {
	query := `
		SELECT open_time, close_time, updated_at
		FROM settings
		WHERE key = $1
	`
	var hours model.OperatingHours
	err := r.db.GetContext(ctx, &hours, query, settingsKey)
	if err == nil {
		return &hours, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeErr("operating hours", err)
	}

	defaults.UpdatedAt = time.Now()
	insert := `
		INSERT INTO settings (key, open_time, close_time, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, settingsKey, defaults.OpenTime, defaults.CloseTime, defaults.UpdatedAt); err != nil {
		return nil, storeErr("operating hours", err)
	}
	return &defaults, nil
}

func (r *settingsRepository) UpdateOperatingHours(ctx context.Context, hours *model.OperatingHours) error {
	hours.UpdatedAt = time.Now()
	query := `
		INSERT INTO settings (key, open_time, close_time, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, settingsKey, hours.OpenTime, hours.CloseTime, hours.UpdatedAt); err != nil {
		return storeErr("operating hours", err)
	}
	return nil
}
