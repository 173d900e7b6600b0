package mirror_service

import (
	"context"
	"sync"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

// Snapshot is an immutable copy of the mirrored collections.
type Snapshot struct {
	Specialists  []domain.Specialist
	Appointments []domain.Appointment
	Offline      bool
	LoadedAt     time.Time
}

type ReloadListener func(ctx context.Context, snapshot Snapshot)

// Mirror is the in-memory read model of the remote store.
// It is only ever replaced wholesale by Reload; there is no incremental patching.
type Mirror struct {
	storePort out.RemoteStorePort
	logger    out.LoggerPort
	now       func() time.Time

	mu        sync.RWMutex
	snapshot  Snapshot
	listeners []ReloadListener

	// Reload сериализован: параллельный reload ждёт текущий
	reloadMu sync.Mutex
}

func NewMirror(storePort out.RemoteStorePort, logger out.LoggerPort) *Mirror {
	return &Mirror{
		storePort: storePort,
		logger:    logger.WithModule("Mirror"),
		now:       time.Now,
		snapshot: Snapshot{
			Specialists:  domain.FallbackSpecialists(),
			Appointments: []domain.Appointment{},
			Offline:      true,
		},
	}
}

// OnReload registers a listener called after every successful swap.
func (m *Mirror) OnReload(listener ReloadListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

func (m *Mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Specialists:  append([]domain.Specialist(nil), m.snapshot.Specialists...),
		Appointments: append([]domain.Appointment(nil), m.snapshot.Appointments...),
		Offline:      m.snapshot.Offline,
		LoadedAt:     m.snapshot.LoadedAt,
	}
}

func (m *Mirror) Specialists() []domain.Specialist {
	return m.Snapshot().Specialists
}

func (m *Mirror) Appointments() []domain.Appointment {
	return m.Snapshot().Appointments
}

// Reload refetches both collections and replaces the mirror.
// A failing store, or one with no doctors, switches to the built-in roster with
// no appointments so the application stays navigable offline. The returned
// error reports a failed fetch; the mirror has been replaced either way.
func (m *Mirror) Reload(ctx context.Context) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	m.logger.Debug("mirror.reload.started", out.LogFields{})

	next, err := m.fetch(ctx)
	if err != nil {
		m.logger.Warn("mirror.reload.offline", out.LogFields{
			"error": err.Error(),
		})
		next = Snapshot{
			Specialists:  domain.FallbackSpecialists(),
			Appointments: []domain.Appointment{},
			Offline:      true,
		}
	}
	next.LoadedAt = m.now()

	m.mu.Lock()
	m.snapshot = next
	listeners := append([]ReloadListener(nil), m.listeners...)
	m.mu.Unlock()

	m.logger.Info("mirror.reload.completed", out.LogFields{
		"specialists":  len(next.Specialists),
		"appointments": len(next.Appointments),
		"offline":      next.Offline,
	})

	for _, listener := range listeners {
		listener(ctx, next)
	}

	return err
}

func (m *Mirror) fetch(ctx context.Context) (Snapshot, error) {
	specialists, err := m.storePort.ListSpecialists(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	appointments, err := m.storePort.ListAppointments(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	// Пустая коллекция врачей равносильна недоступной базе: встроенный список, без записей
	if len(specialists) == 0 {
		m.logger.Warn("mirror.reload.empty_roster", out.LogFields{
			"appointments": len(appointments),
		})
		return Snapshot{
			Specialists:  domain.FallbackSpecialists(),
			Appointments: []domain.Appointment{},
			Offline:      true,
		}, nil
	}
	if appointments == nil {
		appointments = []domain.Appointment{}
	}

	return Snapshot{
		Specialists:  specialists,
		Appointments: appointments,
	}, nil
}
