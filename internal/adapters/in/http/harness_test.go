package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/reports"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/availability_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/booking_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/dashboard_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/intake_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/matcher_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/mirror_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/report_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/session_service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryStore struct {
	mu           sync.Mutex
	appointments []domain.Appointment
	nextID       int
}

func (s *memoryStore) ListSpecialists(ctx context.Context) ([]domain.Specialist, error) {
	return domain.FallbackSpecialists(), nil
}

func (s *memoryStore) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Appointment(nil), s.appointments...), nil
}

func (s *memoryStore) InsertAppointment(ctx context.Context, appointment domain.NewAppointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.appointments {
		if existing.Occupies(appointment.Doctor, appointment.Date, appointment.Time) {
			return domain.NewConflictError("this time slot is already booked")
		}
	}
	s.nextID++
	s.appointments = append(s.appointments, domain.Appointment{
		ID:        json_types.FlexID(fmt.Sprint(s.nextID)),
		Patient:   appointment.Patient,
		Doctor:    appointment.Doctor,
		Specialty: appointment.Specialty,
		Date:      appointment.Date,
		Time:      appointment.Time,
	})
	return nil
}

func (s *memoryStore) DeleteAppointment(ctx context.Context, appointmentID json_types.FlexID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.appointments[:0]
	for _, appointment := range s.appointments {
		if appointment.ID != appointmentID {
			kept = append(kept, appointment)
		}
	}
	s.appointments = kept
	return nil
}

type noDelay struct{}

func (noDelay) Delay(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

type testApp struct {
	router *gin.Engine
	store  *memoryStore
	mirror *mirror_service.Mirror
}

// newTestApp wires the services the same way the server does, minus the
// network: an in-memory store, no classifier, no cache and no events.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.NewNopLogger()
	store := &memoryStore{}

	mirror := mirror_service.NewMirror(store, log)
	require.NoError(t, mirror.Reload(context.Background()))

	catalogue, err := availability_service.BuildCatalogue([]domain.SlotWindow{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "16:00"},
	}, 30)
	require.NoError(t, err)

	availability := availability_service.NewAvailabilityService(catalogue, 14, time.UTC, mirror, nil, log)
	matcher := matcher_service.NewMatcherService(nil, log)
	searchSessions, err := matcher_service.NewSessions(16)
	require.NoError(t, err)

	booking := booking_service.NewBookingService(store, nil, mirror, availability, log)
	sessions := session_service.NewSessionService(
		session_service.PlaintextVerifier{},
		session_service.AdminAccount{Username: "admin", Password: "admin"},
		"test-secret",
		time.Hour,
		log,
	)
	dashboard := dashboard_service.NewDashboardService(mirror, time.UTC)

	reportStore, err := reports.NewMemoryAdapter(16)
	require.NoError(t, err)
	reportService := report_service.NewReportService(reportStore, log)
	intake := intake_service.NewIntakeService(matcher, mirror, noDelay{}, log)

	router := NewRouter(log, NewHealthController(mirror, "test"),
		NewSearchController(mirror, matcher, intake, searchSessions),
		NewBookingController(mirror, availability, booking, sessions),
		NewAccountController(mirror, sessions, dashboard, reportService),
	)

	return &testApp{router: router, store: store, mirror: mirror}
}

func (a *testApp) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

// bookableDate returns the n-th date currently open for booking.
func bookableDate(n int) string {
	return availability_service.OfferableDates(time.Now().UTC(), 14)[n].Date
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
