package report_service

import (
	"context"
	"strings"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type ReportService struct {
	reportPort out.ReportPort
	now        func() time.Time
	logger     out.LoggerPort
}

func NewReportService(reportPort out.ReportPort, logger out.LoggerPort) *ReportService {
	return &ReportService{
		reportPort: reportPort,
		now:        time.Now,
		logger:     logger.WithModule("ReportService"),
	}
}

// GetReport returns an empty report when nothing has been saved yet.
func (s *ReportService) GetReport(ctx context.Context, patient string) (domain.PatientReport, error) {
	patient = strings.TrimSpace(patient)
	if patient == "" {
		return domain.PatientReport{}, domain.NewValidationError("patient is required")
	}

	report, found, err := s.reportPort.GetReport(ctx, patient)
	if err != nil {
		return domain.PatientReport{}, err
	}
	if !found {
		return domain.PatientReport{Patient: patient}, nil
	}
	return *report, nil
}

func (s *ReportService) SaveReport(ctx context.Context, report domain.PatientReport) (domain.PatientReport, error) {
	report.Patient = strings.TrimSpace(report.Patient)
	if report.Patient == "" {
		return domain.PatientReport{}, domain.NewValidationError("patient is required")
	}
	report.Timestamp = s.now().UTC()

	if err := s.reportPort.StoreReport(ctx, report); err != nil {
		s.logger.Error("report.save.failed", out.LogFields{
			"patient": report.Patient,
			"error":   err.Error(),
		})
		return domain.PatientReport{}, err
	}

	s.logger.Info("report.save.completed", out.LogFields{
		"patient": report.Patient,
	})
	return report, nil
}
