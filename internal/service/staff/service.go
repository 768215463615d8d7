package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/security"
)

const defaultSearchLimit = 25

type Service struct {
	users   repository.UserRepository
	unavail repository.UnavailabilityRepository
	leaves  repository.LeaveRepository
}

func NewService(users repository.UserRepository, unavail repository.UnavailabilityRepository, leaves repository.LeaveRepository) *Service {
	return &Service{users: users, unavail: unavail, leaves: leaves}
}

// Create provisions a staff account under the given hospital.
func (s *Service) Create(ctx context.Context, hospitalID *uuid.UUID, req *model.CreateUserRequest) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.Conflict("email already registered")
	} else if !errors.IsCode(err, errors.ErrNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          req.Email,
		PasswordHash:   hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Role:           model.RoleStaff,
		Status:         model.UserStatusActive,
		HospitalID:     hospitalID,
		Specialization: req.Specialization,
		Department:     req.Department,
		LicenseID:      req.LicenseID,
		Active:         true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleStaff {
		return nil, errors.NotFound("staff member", nil)
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Specialization != nil {
		user.Specialization = *req.Specialization
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes a staff account; records are retained.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, hospitalID *uuid.UUID) ([]*model.User, error) {
	return s.users.ListStaff(ctx, hospitalID, defaultSearchLimit)
}

func (s *Service) SearchByName(ctx context.Context, query string) ([]*model.User, error) {
	if query == "" {
		return nil, errors.BadRequest("search query is required", nil)
	}
	return s.users.SearchStaffByName(ctx, query, defaultSearchLimit)
}

func (s *Service) SearchBySpecialization(ctx context.Context, query string) ([]*model.User, error) {
	if query == "" {
		return nil, errors.BadRequest("search query is required", nil)
	}
	return s.users.SearchStaffBySpecialization(ctx, query, defaultSearchLimit)
}

func (s *Service) ListSpecializations(ctx context.Context) ([]string, error) {
	return s.users.ListSpecializations(ctx)
}

// AddUnavailability records a period during which the doctor takes no
// appointments. Existing bookings are not touched; only new bookings
// check against the period.
func (s *Service) AddUnavailability(ctx context.Context, doctorID uuid.UUID, req *model.CreateUnavailabilityRequest) (*model.UnavailabilityPeriod, error) {
	if _, err := s.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	period := &model.UnavailabilityPeriod{
		DoctorID:  doctorID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Reason:    req.Reason,
	}
	if err := s.unavail.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *Service) ListUnavailability(ctx context.Context, doctorID uuid.UUID) ([]*model.UnavailabilityPeriod, error) {
	return s.unavail.ListByDoctor(ctx, doctorID)
}

func (s *Service) RemoveUnavailability(ctx context.Context, id uuid.UUID) error {
	return s.unavail.Delete(ctx, id)
}

// RequestLeave files a pending leave request for the doctor.
func (s *Service) RequestLeave(ctx context.Context, doctorID uuid.UUID, req *model.CreateLeaveRequest) (*model.LeaveRequest, error) {
	if _, err := s.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	leave := &model.LeaveRequest{
		DoctorID:  doctorID,
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
		Reason:    req.Reason,
		Status:    model.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *Service) ListLeaves(ctx context.Context, doctorID uuid.UUID) ([]*model.LeaveRequest, error) {
	return s.leaves.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListPendingLeaves(ctx context.Context) ([]*model.LeaveRequest, error) {
	return s.leaves.ListPending(ctx)
}
