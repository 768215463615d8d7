package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/errors"
)

func (r *unavailabilityRepository) Create(ctx context.Context, period *model.UnavailabilityPeriod) error {
	query := `
		INSERT INTO unavailability_periods (
			id, doctor_id, start_time, end_time, reason, created_at, updated_at
		) VALUES (
			:id, :doctor_id, :start_time, :end_time, :reason, :created_at, :updated_at
		)
	`
	period.ID = uuid.New()
	period.CreatedAt = time.Now()
	period.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("failed to create unavailability period: %w", err)
	}
	return nil
}

func (r *unavailabilityRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.UnavailabilityPeriod, error) {
	query := `
		SELECT * FROM unavailability_periods
		WHERE doctor_id = $1
		ORDER BY start_time ASC
	`
	var periods []*model.UnavailabilityPeriod
	if err := r.db.SelectContext(ctx, &periods, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list unavailability periods: %w", err)
	}
	return periods, nil
}

func (r *unavailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM unavailability_periods WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete unavailability period: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("unavailability period", nil)
	}
	return nil
}
