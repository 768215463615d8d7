package model

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Content   string    `db:"content" json:"content"`
}

type MedicalReport struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Description string    `db:"description" json:"description"`
	ReportDate  time.Time `db:"report_date" json:"report_date"`
	ReportType  string    `db:"report_type" json:"report_type"`
	ImageData   []byte    `db:"image_data" json:"image_data,omitempty"`
}

type CreatePrescriptionRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateMedicalReportRequest struct {
	Description string    `json:"description" binding:"required"`
	ReportDate  time.Time `json:"report_date" binding:"required"`
	ReportType  string    `json:"report_type" binding:"required"`
	ImageData   []byte    `json:"image_data"`
}
