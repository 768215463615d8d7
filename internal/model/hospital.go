package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Hospital struct {
	Base
	Name            string         `db:"name" json:"name"`
	Address         string         `db:"address" json:"address"`
	Contact         string         `db:"contact" json:"contact"`
	Departments     pq.StringArray `db:"departments" json:"departments"`
	Specializations pq.StringArray `db:"specializations" json:"specializations"`
	AdminID         uuid.UUID      `db:"admin_id" json:"admin_id"`
	LicenseNumber   string         `db:"license_number" json:"license_number,omitempty"`
	Latitude        float64        `db:"latitude" json:"latitude"`
	Longitude       float64        `db:"longitude" json:"longitude"`
}

type AnnouncementCategory string

const (
	AnnouncementCategoryGeneral     AnnouncementCategory = "general"
	AnnouncementCategoryEmergency   AnnouncementCategory = "emergency"
	AnnouncementCategoryAppointment AnnouncementCategory = "appointment"
	AnnouncementCategoryHoliday     AnnouncementCategory = "holiday"
)

// Announcement is a hospital-scoped broadcast, filtered per reader role.
type Announcement struct {
	Base
	HospitalID  uuid.UUID            `db:"hospital_id" json:"hospital_id"`
	Title       string               `db:"title" json:"title"`
	Body        string               `db:"body" json:"body"`
	BroadcastTo pq.StringArray       `db:"broadcast_to" json:"broadcast_to"`
	Category    AnnouncementCategory `db:"category" json:"category"`
}

// VisibleTo reports whether the announcement is broadcast to the given role.
func (a *Announcement) VisibleTo(role Role) bool {
	for _, r := range a.BroadcastTo {
		if Role(r) == role {
			return true
		}
	}
	return false
}

type CreateHospitalRequest struct {
	Name            string    `json:"name" binding:"required"`
	Address         string    `json:"address" binding:"required"`
	Contact         string    `json:"contact" binding:"required"`
	Departments     []string  `json:"departments"`
	Specializations []string  `json:"specializations"`
	AdminID         uuid.UUID `json:"admin_id" binding:"required"`
	LicenseNumber   string    `json:"license_number"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
}

type UpdateHospitalRequest struct {
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	Contact         *string  `json:"contact"`
	Departments     []string `json:"departments"`
	Specializations []string `json:"specializations"`
}

type CreateAnnouncementRequest struct {
	Title       string               `json:"title" binding:"required,max=200"`
	Body        string               `json:"body" binding:"required"`
	BroadcastTo []Role               `json:"broadcast_to" binding:"required,min=1,dive,role"`
	Category    AnnouncementCategory `json:"category" binding:"required,oneof=general emergency appointment holiday"`
}
