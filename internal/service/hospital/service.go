package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
)

type Service struct {
	hospitals repository.HospitalRepository
}

func NewService(hospitals repository.HospitalRepository) *Service {
	return &Service{hospitals: hospitals}
}

func (s *Service) Create(ctx context.Context, req *model.CreateHospitalRequest) (*model.Hospital, error) {
	h := &model.Hospital{
		Name:            req.Name,
		Address:         req.Address,
		Contact:         req.Contact,
		Departments:     req.Departments,
		Specializations: req.Specializations,
		AdminID:         req.AdminID,
		LicenseNumber:   req.LicenseNumber,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}
	if err := s.hospitals.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	return s.hospitals.Get(ctx, id)
}

func (s *Service) GetByAdmin(ctx context.Context, adminID uuid.UUID) (*model.Hospital, error) {
	return s.hospitals.GetByAdmin(ctx, adminID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	h, err := s.hospitals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.Contact != nil {
		h.Contact = *req.Contact
	}
	if req.Departments != nil {
		h.Departments = req.Departments
	}
	if req.Specializations != nil {
		h.Specializations = req.Specializations
	}
	if err := s.hospitals.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Announce publishes a hospital-scoped announcement to the given roles.
func (s *Service) Announce(ctx context.Context, hospitalID uuid.UUID, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	if _, err := s.hospitals.Get(ctx, hospitalID); err != nil {
		return nil, err
	}

	roles := make([]string, len(req.BroadcastTo))
	for i, r := range req.BroadcastTo {
		roles[i] = string(r)
	}

	a := &model.Announcement{
		HospitalID:  hospitalID,
		Title:       req.Title,
		Body:        req.Body,
		BroadcastTo: roles,
		Category:    req.Category,
	}
	if err := s.hospitals.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Announcements returns the hospital's announcements visible to role.
func (s *Service) Announcements(ctx context.Context, hospitalID uuid.UUID, role model.Role) ([]*model.Announcement, error) {
	all, err := s.hospitals.ListAnnouncements(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	visible := make([]*model.Announcement, 0, len(all))
	for _, a := range all {
		if a.VisibleTo(role) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}
