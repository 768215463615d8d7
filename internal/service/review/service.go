package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/pkg/errors"
)

type Service struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
}

func NewService(reviews repository.ReviewRepository, users repository.UserRepository) *Service {
	return &Service{reviews: reviews, users: users}
}

// Create files a star rating and review text against a doctor.
func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	doctor, err := s.users.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != model.RoleStaff {
		return nil, errors.NotFound("doctor", nil)
	}

	r := &model.Review{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Review:    req.Review,
		Stars:     req.Stars,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error) {
	return s.reviews.ListByDoctor(ctx, doctorID)
}

// AverageRating returns the doctor's mean star rating, 0 when unrated.
func (s *Service) AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	return s.reviews.AverageRating(ctx, doctorID)
}
