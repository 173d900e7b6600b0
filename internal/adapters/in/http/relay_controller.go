package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	nurl "net/url"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
	"golang.org/x/time/rate"
)

const relayLimiterCacheSize = 4096

// RelayController forwards generateContent calls so the API key never leaves
// the server.
type RelayController struct {
	client   *http.Client
	endpoint string
	apiKey   string
	rps      rate.Limit
	burst    int
	limiters *lru.Cache[string, *rate.Limiter]
	mu       sync.Mutex
	logger   out.LoggerPort
}

func NewRelayController(cfg *config.Config, logger out.LoggerPort) (*RelayController, error) {
	limiters, err := lru.New[string, *rate.Limiter](relayLimiterCacheSize)
	if err != nil {
		return nil, err
	}

	return &RelayController{
		client:   &http.Client{Timeout: cfg.AI.Timeout},
		endpoint: cfg.AI.Endpoint,
		apiKey:   cfg.AI.APIKey,
		rps:      rate.Limit(cfg.Relay.RateLimitRPS),
		burst:    cfg.Relay.RateLimitBurst,
		limiters: limiters,
		logger:   logger.WithModule("RelayController"),
	}, nil
}

func (c *RelayController) RegisterRoutes(api *gin.RouterGroup) {
	api.Any("/ai/relay", c.relay)
}

func (c *RelayController) relay(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
		return
	}

	if c.apiKey == "" {
		c.logger.Error("relay.api_key.missing", out.LogFields{})
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "GEMINI_API_KEY is not configured.",
			"details": "Set GEMINI_API_KEY in the relay's environment.",
		})
		return
	}

	if !c.limiter(ctx.ClientIP()).Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests"})
		return
	}

	raw, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	target, err := c.targetURL()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodPost, target, bytes.NewReader(DecodeRelayBody(raw)))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("relay.upstream.failed", out.LogFields{
			"error": err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	c.logger.Debug("relay.upstream.completed", out.LogFields{
		"status": resp.StatusCode,
	})

	// Статус и тело апстрима отдаём как есть
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Data(resp.StatusCode, "application/json", body)
}

func (c *RelayController) targetURL() (string, error) {
	u, err := nurl.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *RelayController) limiter(clientIP string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, ok := c.limiters.Get(clientIP); ok {
		return limiter
	}
	limiter := rate.NewLimiter(c.rps, c.burst)
	c.limiters.Add(clientIP, limiter)
	return limiter
}

// DecodeRelayBody unwraps a base64-encoded JSON body. Anything else is
// forwarded unchanged.
func DecodeRelayBody(raw []byte) []byte {
	if json.Valid(raw) {
		return raw
	}
	decoded, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(raw)))
	if err == nil && json.Valid(decoded) {
		return decoded
	}
	return raw
}
