package http

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
)

type upstreamCall struct {
	key  string
	body string
}

func newRelayRouter(t *testing.T, endpoint, apiKey string, burst int) *gin.Engine {
	t.Helper()
	cfg := &config.Config{}
	cfg.AI.Endpoint = endpoint
	cfg.AI.APIKey = apiKey
	cfg.AI.Timeout = 2 * time.Second
	cfg.Relay.RateLimitRPS = 0.001
	cfg.Relay.RateLimitBurst = burst

	relay, err := NewRelayController(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	router := gin.New()
	relay.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, chan upstreamCall) {
	t.Helper()
	calls := make(chan upstreamCall, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		calls <- upstreamCall{key: r.URL.Query().Get("key"), body: string(data)}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func relayRequest(router *gin.Engine, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/ai/relay", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRelayForwardsStatusAndBody(t *testing.T) {
	upstream, calls := newUpstream(t, http.StatusTooManyRequests, `{"error":{"message":"quota"}}`)
	router := newRelayRouter(t, upstream.URL, "secret-key", 10)

	rec := relayRequest(router, http.MethodPost, `{"contents":[]}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"quota"}}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	call := <-calls
	assert.Equal(t, "secret-key", call.key)
	assert.Equal(t, `{"contents":[]}`, call.body)
}

func TestRelayDecodesBase64Body(t *testing.T) {
	upstream, calls := newUpstream(t, http.StatusOK, `{}`)
	router := newRelayRouter(t, upstream.URL, "secret-key", 10)

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"contents":[]}`))
	rec := relayRequest(router, http.MethodPost, encoded)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"contents":[]}`, (<-calls).body)
}

func TestRelayRejectsOtherMethods(t *testing.T) {
	router := newRelayRouter(t, "http://127.0.0.1:1", "secret-key", 10)

	rec := relayRequest(router, http.MethodGet, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rec.Body.String())
}

func TestRelayWithoutKey(t *testing.T) {
	router := newRelayRouter(t, "http://127.0.0.1:1", "", 10)

	rec := relayRequest(router, http.MethodPost, `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "details")
}

func TestRelayRateLimit(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `{}`)
	router := newRelayRouter(t, upstream.URL, "secret-key", 1)

	assert.Equal(t, http.StatusOK, relayRequest(router, http.MethodPost, `{}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, relayRequest(router, http.MethodPost, `{}`).Code)
}

func TestRelayUpstreamUnreachable(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `{}`)
	endpoint := upstream.URL
	upstream.Close()
	router := newRelayRouter(t, endpoint, "secret-key", 10)

	rec := relayRequest(router, http.MethodPost, `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestDecodeRelayBody(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "json", raw: `{"a":1}`, expected: `{"a":1}`},
		{name: "base64 json", raw: base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)), expected: `{"a":1}`},
		{name: "base64 of non-json", raw: base64.StdEncoding.EncodeToString([]byte("hello")), expected: base64.StdEncoding.EncodeToString([]byte("hello"))},
		{name: "garbage", raw: "not json", expected: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(DecodeRelayBody([]byte(tt.raw))))
		})
	}
}
