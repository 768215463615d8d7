package rbac

import (
	"github.com/hms-backend/hms-api/internal/model"
)

// staffCapabilities is the fixed grant for the doctor role.
var staffCapabilities = []model.Capability{
	model.CapabilityCreateStaff,
	model.CapabilityReadStaff,
	model.CapabilityUpdateStaff,
	model.CapabilityCreateMedicalRecord,
	model.CapabilityReadMedicalRecord,
	model.CapabilityUpdateMedicalRecord,
	model.CapabilityDeleteMedicalRecord,
	model.CapabilityCreateAppointment,
	model.CapabilityReadAppointment,
	model.CapabilityUpdateAppointment,
	model.CapabilityDeleteAppointment,
	model.CapabilityCreatePayment,
	model.CapabilityReadPayment,
	model.CapabilityUpdatePayment,
	model.CapabilityDeletePayment,
	model.CapabilityReadAnnouncement,
}

// patientCapabilities is the fixed grant for the patient role.
var patientCapabilities = []model.Capability{
	model.CapabilityReadStaff,
	model.CapabilityCreatePatient,
	model.CapabilityReadPatient,
	model.CapabilityUpdatePatient,
	model.CapabilityDeletePatient,
	model.CapabilityCreateMedicalRecord,
	model.CapabilityReadMedicalRecord,
	model.CapabilityUpdateMedicalRecord,
	model.CapabilityDeleteMedicalRecord,
	model.CapabilityCreateAppointment,
	model.CapabilityReadAppointment,
	model.CapabilityUpdateAppointment,
	model.CapabilityDeleteAppointment,
	model.CapabilityCreatePayment,
	model.CapabilityReadPayment,
	model.CapabilityUpdatePayment,
	model.CapabilityDeletePayment,
	model.CapabilityReadAnnouncement,
}

// adminExtraCapabilities are admin-only grants on top of the union of
// the staff and patient sets.
var adminExtraCapabilities = []model.Capability{
	model.CapabilityAll,
	model.CapabilityDeleteStaff,
	model.CapabilityUpdateAdmin,
	model.CapabilityCreateHospital,
	model.CapabilityReadHospital,
	model.CapabilityUpdateHospital,
	model.CapabilityDeleteHospital,
	model.CapabilityCreateHospitalAdmin,
}

// adminCapabilities is built by explicit union so the three role grants
// cannot drift apart.
var adminCapabilities = union(adminExtraCapabilities, staffCapabilities, patientCapabilities)

// policyTable maps each role to its issued capability set. The table is
// immutable; tokens embed a copy at issuance and are never re-derived.
var policyTable = map[model.Role][]model.Capability{
	model.RoleAdmin:   adminCapabilities,
	model.RoleStaff:   staffCapabilities,
	model.RolePatient: patientCapabilities,
}

// CapabilitiesFor returns a copy of the capability set granted to role.
// Unknown roles get nothing.
func CapabilitiesFor(role model.Role) []model.Capability {
	caps, ok := policyTable[role]
	if !ok {
		return nil
	}
	out := make([]model.Capability, len(caps))
	copy(out, caps)
	return out
}

// union concatenates capability sets preserving first-seen order and
// dropping duplicates.
func union(sets ...[]model.Capability) []model.Capability {
	seen := make(map[model.Capability]struct{})
	var out []model.Capability
	for _, set := range sets {
		for _, c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
