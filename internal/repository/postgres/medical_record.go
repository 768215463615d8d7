package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
)

func (r *medicalRecordRepository) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, patient_id, doctor_id, content, created_at, updated_at
		) VALUES (
			:id, :patient_id, :doctor_id, :content, :created_at, :updated_at
		)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) ListPrescriptions(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	query := `
		SELECT * FROM prescriptions
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *medicalRecordRepository) CreateReport(ctx context.Context, report *model.MedicalReport) error {
	query := `
		INSERT INTO medical_reports (
			id, patient_id, description, report_date, report_type,
			image_data, created_at, updated_at
		) VALUES (
			:id, :patient_id, :description, :report_date, :report_type,
			:image_data, :created_at, :updated_at
		)
	`
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("failed to create medical report: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) ListReports(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error) {
	query := `
		SELECT * FROM medical_reports
		WHERE patient_id = $1
		ORDER BY report_date DESC
	`
	var reports []*model.MedicalReport
	if err := r.db.SelectContext(ctx, &reports, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medical reports: %w", err)
	}
	return reports, nil
}
