package matcher_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

func TestSessionStartsInAIMode(t *testing.T) {
	assert.Equal(t, domain.SearchModeAI, NewSession().Mode())
}

func TestSessionSwitchToKeywordNeedsConfirmation(t *testing.T) {
	session := NewSession()

	changed, err := session.SwitchMode(domain.SearchModeKeyword, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.False(t, changed)
	assert.Equal(t, domain.SearchModeAI, session.Mode())

	changed, err = session.SwitchMode(domain.SearchModeKeyword, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.SearchModeKeyword, session.Mode())
}

func TestSessionSwitchBackToAIIsUnconditional(t *testing.T) {
	session := NewSession()
	_, err := session.SwitchMode(domain.SearchModeKeyword, true)
	require.NoError(t, err)

	changed, err := session.SwitchMode(domain.SearchModeAI, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.SearchModeAI, session.Mode())

	changed, err = session.SwitchMode(domain.SearchModeAI, false)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSessionsKeepStatePerID(t *testing.T) {
	sessions, err := NewSessions(8)
	require.NoError(t, err)

	_, err = sessions.Get("a").SwitchMode(domain.SearchModeKeyword, true)
	require.NoError(t, err)

	assert.Equal(t, domain.SearchModeKeyword, sessions.Get("a").Mode())
	assert.Equal(t, domain.SearchModeAI, sessions.Get("b").Mode())
}
