package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms-backend/hms-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "doctor@example.com",
		Role:  model.RoleStaff,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()
	caps := []model.Capability{model.CapabilityReadPatient, model.CapabilityCreateAppointment}

	token, expiresAt, err := svc.Issue(user, caps)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, user.Email, principal.Email)
	assert.Equal(t, model.RoleStaff, principal.Role)
	assert.Equal(t, caps, principal.Capabilities)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	for _, token := range []string{
		"",
		"not-a-token",
		"aaaa.bbbb.cccc",
	} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one", time.Hour)
	verifier := NewJWTService("secret-two", time.Hour)

	token, _, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := &jwtService{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := svc.Issue(testUser(), nil)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, _, err := svc.Issue(testUser(), []model.Capability{model.CapabilityReadPatient})
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "XXXX"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// The capability set embedded at issuance is what comes back, not
// whatever the policy for the role is later.
func TestCapabilitiesFrozenAtIssuance(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	issued := []model.Capability{model.CapabilityReadPatient}
	token, _, err := svc.Issue(user, issued)
	require.NoError(t, err)

	// Mutating the caller's slice after issuance must not change the
	// token contents.
	issued[0] = model.CapabilityAll

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, []model.Capability{model.CapabilityReadPatient}, principal.Capabilities)
}

func TestHasCapability(t *testing.T) {
	p := &Principal{Capabilities: []model.Capability{
		model.CapabilityReadPatient,
		model.CapabilityCreateAppointment,
	}}

	assert.True(t, p.HasCapability(model.CapabilityReadPatient))
	assert.False(t, p.HasCapability(model.CapabilityDeleteStaff))
	// "all" is not a wildcard, only a literal member.
	assert.False(t, p.HasCapability(model.CapabilityAll))
}
