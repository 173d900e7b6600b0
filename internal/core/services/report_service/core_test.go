package report_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/reports"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

func TestReportRoundTrip(t *testing.T) {
	store, err := reports.NewMemoryAdapter(10)
	require.NoError(t, err)
	service := NewReportService(store, logger.NewNopLogger())
	saved := time.Date(2025, time.January, 10, 9, 15, 0, 0, time.UTC)
	service.now = func() time.Time { return saved }
	ctx := context.Background()

	empty, err := service.GetReport(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, domain.PatientReport{Patient: "Ann"}, empty)

	_, err = service.SaveReport(ctx, domain.PatientReport{Patient: "Ann", Notes: "n", Diagnosis: "d", Rx: "r"})
	require.NoError(t, err)

	report, err := service.GetReport(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "d", report.Diagnosis)
	assert.Equal(t, saved, report.Timestamp)
}

func TestReportRequiresPatient(t *testing.T) {
	store, err := reports.NewMemoryAdapter(10)
	require.NoError(t, err)
	service := NewReportService(store, logger.NewNopLogger())

	_, err = service.GetReport(context.Background(), " ")
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))

	_, err = service.SaveReport(context.Background(), domain.PatientReport{})
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))
}
