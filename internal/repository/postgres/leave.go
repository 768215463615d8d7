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

func (r *leaveRepository) Create(ctx context.Context, req *model.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (
			id, doctor_id, start_date, end_date, reason, status,
			created_at, updated_at
		) VALUES (
			:id, :doctor_id, :start_date, :end_date, :reason, :status,
			:created_at, :updated_at
		)
	`
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (r *leaveRepository) Get(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	query := `SELECT * FROM leave_requests WHERE id = $1`

	var req model.LeaveRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("leave request", err)
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	return &req, nil
}

func (r *leaveRepository) Update(ctx context.Context, req *model.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET status = :status, updated_at = :updated_at
		WHERE id = :id
	`
	req.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, req)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("leave request", nil)
	}
	return nil
}

func (r *leaveRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LeaveRequest, error) {
	query := `
		SELECT * FROM leave_requests
		WHERE doctor_id = $1
		ORDER BY created_at DESC
	`
	var requests []*model.LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

func (r *leaveRepository) ListPending(ctx context.Context) ([]*model.LeaveRequest, error) {
	query := `
		SELECT * FROM leave_requests
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`
	var requests []*model.LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return requests, nil
}
