package out

import (
	"context"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

type CachePort interface {
	// Кэширование слотов по врачу и дате
	GetSlots(ctx context.Context, doctor, date string) ([]domain.Slot, bool)
	StoreSlots(ctx context.Context, doctor, date string, slots []domain.Slot)
	InvalidateAllSlotsCache(ctx context.Context)
}
