package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/auth"
)

func principalWith(caps ...model.Capability) *auth.Principal {
	return &auth.Principal{Capabilities: caps}
}

func TestAuthorizeContainment(t *testing.T) {
	svc := NewService()

	p := principalWith(model.CapabilityReadPatient, model.CapabilityCreateAppointment)

	assert.True(t, svc.Authorize(p, model.CapabilityReadPatient))
	assert.True(t, svc.Authorize(p, model.CapabilityReadPatient, model.CapabilityCreateAppointment))
	assert.False(t, svc.Authorize(p, model.CapabilityDeleteStaff))
	assert.False(t, svc.Authorize(p, model.CapabilityReadPatient, model.CapabilityDeleteStaff))
}

func TestAuthorizeEmptyRequirement(t *testing.T) {
	svc := NewService()

	// No required capabilities means any authenticated principal passes.
	assert.True(t, svc.Authorize(principalWith()))
	assert.False(t, svc.Authorize(nil))
}

func TestAuthorizeAllIsNotWildcard(t *testing.T) {
	svc := NewService()

	p := principalWith(model.CapabilityAll)
	assert.True(t, svc.Authorize(p, model.CapabilityAll))
	assert.False(t, svc.Authorize(p, model.CapabilityReadPatient))
}

func TestCapabilitiesForRoles(t *testing.T) {
	adminCaps := CapabilitiesFor(model.RoleAdmin)
	staffCaps := CapabilitiesFor(model.RoleStaff)
	patientCaps := CapabilitiesFor(model.RolePatient)

	assert.Contains(t, adminCaps, model.CapabilityAll)
	assert.Contains(t, adminCaps, model.CapabilityDeleteStaff)
	assert.Contains(t, adminCaps, model.CapabilityCreateHospital)

	assert.Contains(t, staffCaps, model.CapabilityCreateAppointment)
	assert.NotContains(t, staffCaps, model.CapabilityDeleteStaff)
	assert.NotContains(t, staffCaps, model.CapabilityAll)

	assert.Contains(t, patientCaps, model.CapabilityReadStaff)
	assert.NotContains(t, patientCaps, model.CapabilityCreateHospital)

	// Admin carries everything staff and patient carry.
	for _, c := range staffCaps {
		assert.Contains(t, adminCaps, c)
	}
	for _, c := range patientCaps {
		assert.Contains(t, adminCaps, c)
	}
}

func TestCapabilitiesForUnknownRole(t *testing.T) {
	assert.Nil(t, CapabilitiesFor(model.Role("receptionist")))
}

func TestCapabilitiesForReturnsCopy(t *testing.T) {
	first := CapabilitiesFor(model.RolePatient)
	first[0] = model.Capability("mutated")

	second := CapabilitiesFor(model.RolePatient)
	assert.NotEqual(t, model.Capability("mutated"), second[0])
}
