package reports

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

func TestRedisAdapter(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	ctx := context.Background()
	adapter, err := NewRedisAdapter(ctx, redisURL, logger.NewNopLogger())
	require.NoError(t, err)
	defer adapter.Close()

	patient := "redis-test-patient"
	defer adapter.client.Del(ctx, keyPrefix+patient)

	require.NoError(t, adapter.StoreReport(ctx, domain.PatientReport{Patient: patient, Diagnosis: "flu"}))

	report, found, err := adapter.GetReport(ctx, patient)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "flu", report.Diagnosis)

	_, found, err = adapter.GetReport(ctx, "redis-missing-patient")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedisAdapterRejectsBadURL(t *testing.T) {
	_, err := NewRedisAdapter(context.Background(), "not a url", logger.NewNopLogger())
	assert.Error(t, err)
}
