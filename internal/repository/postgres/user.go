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

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, phone,
			role, status, hospital_id, specialization, department,
			license_id, on_leave, active, created_at, updated_at
		) VALUES (
			:id, :email, :password_hash, :first_name, :last_name, :phone,
			:role, :status, :hospital_id, :specialization, :department,
			:license_id, :on_leave, :active, :created_at, :updated_at
		)
	`
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, phone = :phone,
			status = :status, hospital_id = :hospital_id,
			specialization = :specialization, department = :department,
			on_leave = :on_leave, active = :active,
			login_attempts = :login_attempts,
			last_login_attempt = :last_login_attempt,
			last_login_at = :last_login_at,
			updated_at = :updated_at
		WHERE id = :id
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET active = false, updated_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) ListStaff(ctx context.Context, hospitalID *uuid.UUID, limit int) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE role = $1 AND active = true`
	args := []interface{}{model.RoleStaff}

	if hospitalID != nil {
		query += ` AND hospital_id = $2`
		args = append(args, *hospitalID)
	}
	query += fmt.Sprintf(" ORDER BY last_name ASC LIMIT %d", limit)

	var staff []*model.User
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *userRepository) SearchStaffByName(ctx context.Context, query string, limit int) ([]*model.User, error) {
	q := `
		SELECT * FROM users
		WHERE role = $1 AND active = true
		AND (first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%')
		ORDER BY last_name ASC
		LIMIT $3
	`
	var staff []*model.User
	if err := r.db.SelectContext(ctx, &staff, q, model.RoleStaff, query, limit); err != nil {
		return nil, fmt.Errorf("failed to search staff by name: %w", err)
	}
	return staff, nil
}

func (r *userRepository) SearchStaffBySpecialization(ctx context.Context, query string, limit int) ([]*model.User, error) {
	q := `
		SELECT * FROM users
		WHERE role = $1 AND active = true
		AND specialization ILIKE '%' || $2 || '%'
		ORDER BY last_name ASC
		LIMIT $3
	`
	var staff []*model.User
	if err := r.db.SelectContext(ctx, &staff, q, model.RoleStaff, query, limit); err != nil {
		return nil, fmt.Errorf("failed to search staff by specialization: %w", err)
	}
	return staff, nil
}

func (r *userRepository) ListSpecializations(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT specialization FROM users
		WHERE role = $1 AND active = true AND specialization <> ''
		ORDER BY specialization ASC
	`
	var specializations []string
	if err := r.db.SelectContext(ctx, &specializations, query, model.RoleStaff); err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specializations, nil
}
