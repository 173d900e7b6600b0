package out

import (
	"context"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

type ReportPort interface {
	GetReport(ctx context.Context, patient string) (*domain.PatientReport, bool, error)
	StoreReport(ctx context.Context, report domain.PatientReport) error
}
