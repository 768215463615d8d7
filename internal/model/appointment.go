package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is one scheduled consultation. The [StartTime, EndTime)
// interval is half-open: back-to-back bookings do not conflict.
type Appointment struct {
	Base
	PatientID    uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	StartTime    time.Time         `db:"start_time" json:"start_time"`
	EndTime      time.Time         `db:"end_time" json:"end_time"`
	Status       AppointmentStatus `db:"status" json:"status"`
	Prescription string            `db:"prescription" json:"prescription,omitempty"`
	Notes        string            `db:"notes" json:"notes,omitempty"`
	CancelReason *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	PaymentRef   *string           `db:"payment_ref" json:"payment_ref,omitempty"`
}

// Active reports whether the appointment counts toward overlap checks.
func (a *Appointment) Active() bool {
	return a.Status == AppointmentStatusConfirmed
}

// Overlaps reports whether [start, end) overlaps the appointment's own
// half-open interval. Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime) && end.After(a.StartTime)
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	From      time.Time
	To        time.Time
}
