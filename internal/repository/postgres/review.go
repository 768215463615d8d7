package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, patient_id, doctor_id, review, stars, created_at, updated_at
		) VALUES (
			:id, :patient_id, :doctor_id, :review, :stars, :created_at, :updated_at
		)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT * FROM reviews
		WHERE doctor_id = $1
		ORDER BY created_at DESC
	`
	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(stars), 0) FROM reviews WHERE doctor_id = $1`

	var rating float64
	if err := r.db.GetContext(ctx, &rating, query, doctorID); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return rating, nil
}
