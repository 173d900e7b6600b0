package session_service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

func newService(verifier CredentialVerifier) *SessionService {
	return NewSessionService(verifier, AdminAccount{Username: "admin", Password: "admin"}, "test-secret", time.Hour, logger.NewNopLogger())
}

func TestAuthenticateDoctor(t *testing.T) {
	service := newService(PlaintextVerifier{})

	principal, err := service.Authenticate("  SARAH ", "123", domain.FallbackSpecialists())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, principal.Role)
	assert.Equal(t, "Dr. Sarah Chen", principal.Name)
	assert.Equal(t, json_types.FlexID("1"), principal.SpecialistID)
}

func TestAuthenticateSecretIsCaseSensitive(t *testing.T) {
	service := NewSessionService(PlaintextVerifier{}, AdminAccount{}, "test-secret", time.Hour, logger.NewNopLogger())
	roster := []domain.Specialist{{ID: "1", Name: "Dr. Sarah Chen", Username: "sarah", Password: "Secret"}}

	_, err := service.Authenticate("sarah", "secret", roster)
	assert.True(t, domain.IsType(err, domain.ErrorTypeUnauthorized))
}

func TestAuthenticateAdmin(t *testing.T) {
	service := newService(PlaintextVerifier{})

	principal, err := service.Authenticate("Admin", "admin", domain.FallbackSpecialists())
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin())
}

func TestAuthenticateRejectsUnknown(t *testing.T) {
	service := newService(PlaintextVerifier{})

	for _, creds := range [][2]string{{"sarah", "1234"}, {"nobody", "123"}, {"admin", ""}} {
		_, err := service.Authenticate(creds[0], creds[1], domain.FallbackSpecialists())
		assert.True(t, domain.IsType(err, domain.ErrorTypeUnauthorized), creds[0])
	}
}

func TestAuthenticateWithBcrypt(t *testing.T) {
	hash, err := HashSecret("123")
	require.NoError(t, err)

	roster := []domain.Specialist{{ID: "1", Name: "Dr. Sarah Chen", Username: "sarah", Password: hash}}
	service := NewSessionService(NewVerifier("bcrypt"), AdminAccount{}, "test-secret", time.Hour, logger.NewNopLogger())

	_, err = service.Authenticate("sarah", "123", roster)
	assert.NoError(t, err)

	_, err = service.Authenticate("sarah", "124", roster)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	service := newService(nil)
	principal := domain.Principal{Role: domain.RoleDoctor, Name: "Dr. Lisa Park", SpecialistID: "4"}

	token, err := service.IssueToken(principal)
	require.NoError(t, err)

	parsed, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, *parsed)
}

func TestParseTokenRejectsTamperedAndExpired(t *testing.T) {
	service := newService(nil)
	token, err := service.IssueToken(domain.Principal{Role: domain.RoleAdmin, Name: "Admin"})
	require.NoError(t, err)

	other := NewSessionService(nil, AdminAccount{}, "another-secret", time.Hour, logger.NewNopLogger())
	_, err = other.ParseToken(token)
	assert.Error(t, err)

	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := service.IssueToken(domain.Principal{Role: domain.RoleAdmin, Name: "Admin"})
	require.NoError(t, err)
	_, err = service.ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
