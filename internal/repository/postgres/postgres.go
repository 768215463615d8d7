package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/hms-backend/hms-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type unavailabilityRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type hospitalRepository struct {
	db *sqlx.DB
}

type reviewRepository struct {
	db *sqlx.DB
}

type leaveRepository struct {
	db *sqlx.DB
}

type invoiceRepository struct {
	db *sqlx.DB
}

type medicalRecordRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewUnavailabilityRepository(db *sqlx.DB) repository.UnavailabilityRepository {
	return &unavailabilityRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{db: db}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func NewLeaveRepository(db *sqlx.DB) repository.LeaveRepository {
	return &leaveRepository{db: db}
}

func NewInvoiceRepository(db *sqlx.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}
