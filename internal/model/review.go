package model

import "github.com/google/uuid"

type Review struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Review    string    `db:"review" json:"review"`
	Stars     int       `db:"stars" json:"stars"`
}

type CreateReviewRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Review   string    `json:"review" binding:"required,max=2000"`
	Stars    int       `json:"stars" binding:"required,min=1,max=5"`
}
