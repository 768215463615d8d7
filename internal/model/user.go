package model

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusLocked   UserStatus = "locked"
)

// User is the shared identity record for admins, staff and patients.
type User struct {
	Base
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	Role             Role       `db:"role" json:"role"`
	Status           UserStatus `db:"status" json:"status"`
	HospitalID       *uuid.UUID `db:"hospital_id" json:"hospital_id,omitempty"`
	Specialization   string     `db:"specialization" json:"specialization,omitempty"`
	Department       string     `db:"department" json:"department,omitempty"`
	LicenseID        string     `db:"license_id" json:"license_id,omitempty"`
	OnLeave          bool       `db:"on_leave" json:"on_leave"`
	Active           bool       `db:"active" json:"active"`
	LoginAttempts    int        `db:"login_attempts" json:"-"`
	LastLoginAttempt time.Time  `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

// UnavailabilityPeriod is a doctor-declared interval during which no
// appointments may start. Timestamps are UTC, interval is [start, end).
type UnavailabilityPeriod struct {
	Base
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
}

// Contains reports whether t falls inside the period.
func (p UnavailabilityPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartTime) && t.Before(p.EndTime)
}

type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
	LicenseID      string `json:"license_id"`
}

type UpdateUserRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	Department     *string `json:"department"`
}

type CreateUnavailabilityRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Reason    string    `json:"reason"`
}
