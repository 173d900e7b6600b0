package reports

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

// MemoryAdapter is used when no REDIS_URL is configured. Reports live as long
// as the process and the oldest are evicted past the size limit.
type MemoryAdapter struct {
	cache *lru.Cache[string, domain.PatientReport]
}

func NewMemoryAdapter(size int) (*MemoryAdapter, error) {
	cache, err := lru.New[string, domain.PatientReport](size)
	if err != nil {
		return nil, err
	}
	return &MemoryAdapter{cache: cache}, nil
}

func (a *MemoryAdapter) GetReport(ctx context.Context, patient string) (*domain.PatientReport, bool, error) {
	report, ok := a.cache.Get(patient)
	if !ok {
		return nil, false, nil
	}
	return &report, true, nil
}

func (a *MemoryAdapter) StoreReport(ctx context.Context, report domain.PatientReport) error {
	a.cache.Add(report.Patient, report)
	return nil
}
