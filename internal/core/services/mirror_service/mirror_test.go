package mirror_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type fakeStore struct {
	specialists  []domain.Specialist
	appointments []domain.Appointment
	err          error
}

func (s *fakeStore) ListSpecialists(ctx context.Context) ([]domain.Specialist, error) {
	return s.specialists, s.err
}

func (s *fakeStore) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return s.appointments, s.err
}

func (s *fakeStore) InsertAppointment(ctx context.Context, appointment domain.NewAppointment) error {
	return s.err
}

func (s *fakeStore) DeleteAppointment(ctx context.Context, appointmentID json_types.FlexID) error {
	return s.err
}

func TestMirrorStartsOffline(t *testing.T) {
	mirror := NewMirror(&fakeStore{}, logger.NewNopLogger())

	snapshot := mirror.Snapshot()
	assert.True(t, snapshot.Offline)
	assert.Equal(t, domain.FallbackSpecialists(), snapshot.Specialists)
	assert.Empty(t, snapshot.Appointments)
}

func TestMirrorReloadReplacesCollections(t *testing.T) {
	store := &fakeStore{
		specialists: []domain.Specialist{{ID: "7", Name: "Dr. Omar Haddad", Specialty: "Orthopedist"}},
		appointments: []domain.Appointment{
			{ID: "1", Patient: "Ann", Doctor: "Dr. Omar Haddad", Date: "2025-01-10", Time: "09:00"},
		},
	}
	mirror := NewMirror(store, logger.NewNopLogger())

	require.NoError(t, mirror.Reload(context.Background()))

	snapshot := mirror.Snapshot()
	assert.False(t, snapshot.Offline)
	assert.False(t, snapshot.LoadedAt.IsZero())
	assert.Equal(t, store.specialists, snapshot.Specialists)
	assert.Equal(t, store.appointments, snapshot.Appointments)
}

func TestMirrorReloadFailureGoesOffline(t *testing.T) {
	store := &fakeStore{
		specialists:  []domain.Specialist{{ID: "7", Name: "Dr. Omar Haddad"}},
		appointments: []domain.Appointment{{ID: "1", Doctor: "Dr. Omar Haddad"}},
	}
	mirror := NewMirror(store, logger.NewNopLogger())
	require.NoError(t, mirror.Reload(context.Background()))

	store.err = domain.NewNetworkError("unreachable", nil)
	err := mirror.Reload(context.Background())

	assert.True(t, domain.IsType(err, domain.ErrorTypeNetwork))
	snapshot := mirror.Snapshot()
	assert.True(t, snapshot.Offline)
	assert.Equal(t, domain.FallbackSpecialists(), snapshot.Specialists)
	assert.Empty(t, snapshot.Appointments)
}

func TestMirrorEmptyRosterGoesOffline(t *testing.T) {
	store := &fakeStore{
		appointments: []domain.Appointment{{ID: "1", Doctor: "Dr. Sarah Chen", Date: "2025-01-10", Time: "09:00"}},
	}
	mirror := NewMirror(store, logger.NewNopLogger())

	require.NoError(t, mirror.Reload(context.Background()))

	snapshot := mirror.Snapshot()
	assert.True(t, snapshot.Offline)
	assert.Equal(t, domain.FallbackSpecialists(), snapshot.Specialists)
	assert.Empty(t, snapshot.Appointments)
}

func TestMirrorNotifiesListeners(t *testing.T) {
	mirror := NewMirror(&fakeStore{}, logger.NewNopLogger())

	var received []Snapshot
	mirror.OnReload(func(ctx context.Context, snapshot Snapshot) {
		received = append(received, snapshot)
	})

	require.NoError(t, mirror.Reload(context.Background()))
	require.NoError(t, mirror.Reload(context.Background()))

	assert.Len(t, received, 2)
}

func TestMirrorSnapshotIsACopy(t *testing.T) {
	mirror := NewMirror(&fakeStore{}, logger.NewNopLogger())

	snapshot := mirror.Snapshot()
	snapshot.Specialists[0].Name = "changed"

	assert.Equal(t, "Dr. Sarah Chen", mirror.Specialists()[0].Name)
}
