package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListStaff(ctx context.Context, hospitalID *uuid.UUID, limit int) ([]*model.User, error)
	SearchStaffByName(ctx context.Context, query string, limit int) ([]*model.User, error)
	SearchStaffBySpecialization(ctx context.Context, query string, limit int) ([]*model.User, error)
	ListSpecializations(ctx context.Context) ([]string, error)
}

type UnavailabilityRepository interface {
	Create(ctx context.Context, period *model.UnavailabilityPeriod) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.UnavailabilityPeriod, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
	ListActiveByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
	GetByAdmin(ctx context.Context, adminID uuid.UUID) (*model.Hospital, error)
	Update(ctx context.Context, hospital *model.Hospital) error
	CreateAnnouncement(ctx context.Context, a *model.Announcement) error
	ListAnnouncements(ctx context.Context, hospitalID uuid.UUID) ([]*model.Announcement, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error)
	AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error)
}

type LeaveRepository interface {
	Create(ctx context.Context, req *model.LeaveRequest) error
	Get(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	Update(ctx context.Context, req *model.LeaveRequest) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LeaveRequest, error)
	ListPending(ctx context.Context) ([]*model.LeaveRequest, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	GetByOrderID(ctx context.Context, orderID string) (*model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Invoice, error)
}

type MedicalRecordRepository interface {
	CreatePrescription(ctx context.Context, p *model.Prescription) error
	ListPrescriptions(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
	CreateReport(ctx context.Context, r *model.MedicalReport) error
	ListReports(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error)
}
