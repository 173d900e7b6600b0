package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/session_service"
)

func TestHashCommand(t *testing.T) {
	var output bytes.Buffer
	cmd := hashCmd()
	cmd.SetOut(&output)
	cmd.SetArgs([]string{"123"})

	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(output.String())
	assert.True(t, session_service.BcryptVerifier{}.Verify(hash, "123"))
	assert.False(t, session_service.BcryptVerifier{}.Verify(hash, "1234"))
}

func TestHashCommandRequiresSecret(t *testing.T) {
	cmd := hashCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	assert.Error(t, cmd.Execute())
}
