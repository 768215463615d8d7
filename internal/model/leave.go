package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
)

// LeaveRequest covers an inclusive range of calendar days. Approval
// cascades cancellation over every active appointment on a covered day.
type LeaveRequest struct {
	Base
	DoctorID  uuid.UUID   `db:"doctor_id" json:"doctor_id"`
	StartDate time.Time   `db:"start_date" json:"start_date"`
	EndDate   time.Time   `db:"end_date" json:"end_date"`
	Reason    string      `db:"reason" json:"reason"`
	Status    LeaveStatus `db:"status" json:"status"`
}

// CoveredDates returns every UTC calendar day in [StartDate, EndDate],
// truncated to midnight.
func (l *LeaveRequest) CoveredDates() []time.Time {
	start := truncateToDay(l.StartDate)
	end := truncateToDay(l.EndDate)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Covers reports whether t falls on one of the request's calendar days.
func (l *LeaveRequest) Covers(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(truncateToDay(l.StartDate)) && !day.After(truncateToDay(l.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

type CreateLeaveRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required,gtefield=StartDate"`
	Reason    string    `json:"reason" binding:"required,max=500"`
}
