package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/errors"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	// The overlap re-check inside the insert transaction narrows the
	// check-then-act race window between concurrent bookings for the
	// same doctor. It is a mitigation, not a serialization guarantee.
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, start_time, end_time,
			status, prescription, notes, created_at, updated_at
		)
		SELECT :id, :patient_id, :doctor_id, :start_time, :end_time,
			   :status, :prescription, :notes, :created_at, :updated_at
		WHERE NOT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = :doctor_id
			AND status = 'confirmed'
			AND start_time < :end_time
			AND end_time > :start_time
		)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, apt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.Conflict("doctor already booked at this time")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = :status, prescription = :prescription, notes = :notes,
			cancel_reason = :cancel_reason, payment_ref = :payment_ref,
			updated_at = :updated_at
		WHERE id = :id
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, apt)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}
	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if !filters.From.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.From)
		argCount++
	}
	if !filters.To.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argCount)
		args = append(args, filters.To)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT * FROM appointments
		WHERE doctor_id = $1 AND status = 'confirmed'
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list active appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListActiveByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT * FROM appointments
		WHERE doctor_id = $1 AND status = 'confirmed'
		AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list appointments in range: %w", err)
	}
	return appointments, nil
}
