package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/pkg/errors"
)

type Service struct {
	users   repository.UserRepository
	records repository.MedicalRecordRepository
}

func NewService(users repository.UserRepository, records repository.MedicalRecordRepository) *Service {
	return &Service{users: users, records: records}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RolePatient {
		return nil, errors.NotFound("patient", nil)
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
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes the patient account. Medical records and
// appointment history are retained.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Deactivate(ctx, id)
}

// AddPrescription files a prescription written by doctorID for the patient.
func (s *Service) AddPrescription(ctx context.Context, patientID, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return nil, err
	}
	p := &model.Prescription{
		PatientID: patientID,
		DoctorID:  doctorID,
		Content:   req.Content,
	}
	if err := s.records.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPrescriptions(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return s.records.ListPrescriptions(ctx, patientID)
}

func (s *Service) AddReport(ctx context.Context, patientID uuid.UUID, req *model.CreateMedicalReportRequest) (*model.MedicalReport, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return nil, err
	}
	r := &model.MedicalReport{
		PatientID:   patientID,
		Description: req.Description,
		ReportDate:  req.ReportDate.UTC(),
		ReportType:  req.ReportType,
		ImageData:   req.ImageData,
	}
	if err := s.records.CreateReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListReports(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error) {
	return s.records.ListReports(ctx, patientID)
}
