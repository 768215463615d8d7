package model

// Capability names a single permitted action, e.g. "read:patient".
// The set of valid capabilities is fixed at compile time.
type Capability string

const (
	CapabilityAll Capability = "all"

	CapabilityCreatePatient Capability = "create:patient"
	CapabilityReadPatient   Capability = "read:patient"
	CapabilityUpdatePatient Capability = "update:patient"
	CapabilityDeletePatient Capability = "delete:patient"

	CapabilityCreateStaff Capability = "create:staff"
	CapabilityReadStaff   Capability = "read:staff"
	CapabilityUpdateStaff Capability = "update:staff"
	CapabilityDeleteStaff Capability = "delete:staff"

	CapabilityCreateMedicalRecord Capability = "create:medical_record"
	CapabilityReadMedicalRecord   Capability = "read:medical_record"
	CapabilityUpdateMedicalRecord Capability = "update:medical_record"
	CapabilityDeleteMedicalRecord Capability = "delete:medical_record"

	CapabilityCreateAppointment Capability = "create:appointment"
	CapabilityReadAppointment   Capability = "read:appointment"
	CapabilityUpdateAppointment Capability = "update:appointment"
	CapabilityDeleteAppointment Capability = "delete:appointment"

	CapabilityCreatePayment Capability = "create:payment"
	CapabilityReadPayment   Capability = "read:payment"
	CapabilityUpdatePayment Capability = "update:payment"
	CapabilityDeletePayment Capability = "delete:payment"

	CapabilityUpdateAdmin Capability = "update:admin"

	CapabilityCreateHospital      Capability = "create:hospital"
	CapabilityReadHospital        Capability = "read:hospital"
	CapabilityUpdateHospital      Capability = "update:hospital"
	CapabilityDeleteHospital      Capability = "delete:hospital"
	CapabilityCreateHospitalAdmin Capability = "create:hospital_admin"

	CapabilityReadAnnouncement Capability = "read:announcement"
)

// Role names an actor category with a fixed capability set.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RolePatient:
		return true
	}
	return false
}
