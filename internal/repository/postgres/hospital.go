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

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (
			id, name, address, contact, departments, specializations,
			admin_id, license_number, latitude, longitude, created_at, updated_at
		) VALUES (
			:id, :name, :address, :contact, :departments, :specializations,
			:admin_id, :license_number, :latitude, :longitude, :created_at, :updated_at
		)
	`
	hospital.ID = uuid.New()
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, hospital); err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE id = $1`

	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("hospital", err)
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByAdmin(ctx context.Context, adminID uuid.UUID) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE admin_id = $1`

	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, adminID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("hospital", err)
		}
		return nil, fmt.Errorf("failed to get hospital by admin: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	query := `
		UPDATE hospitals
		SET name = :name, address = :address, contact = :contact,
			departments = :departments, specializations = :specializations,
			license_number = :license_number, latitude = :latitude,
			longitude = :longitude, updated_at = :updated_at
		WHERE id = :id
	`
	hospital.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, hospital)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("hospital", nil)
	}
	return nil
}

func (r *hospitalRepository) CreateAnnouncement(ctx context.Context, a *model.Announcement) error {
	query := `
		INSERT INTO announcements (
			id, hospital_id, title, body, broadcast_to, category,
			created_at, updated_at
		) VALUES (
			:id, :hospital_id, :title, :body, :broadcast_to, :category,
			:created_at, :updated_at
		)
	`
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *hospitalRepository) ListAnnouncements(ctx context.Context, hospitalID uuid.UUID) ([]*model.Announcement, error) {
	query := `
		SELECT * FROM announcements
		WHERE hospital_id = $1
		ORDER BY created_at DESC
	`
	var announcements []*model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}
