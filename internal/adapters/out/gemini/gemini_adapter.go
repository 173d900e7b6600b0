package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"

	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

// GeminiAdapter calls generateContent either through the relay (no key on
// this side) or directly with the API key.
type GeminiAdapter struct {
	client   *http.Client
	endpoint string
	apiKey   string
	relayURL string
	logger   out.LoggerPort
}

func NewGeminiAdapter(cfg *config.Config, logger out.LoggerPort) *GeminiAdapter {
	return &GeminiAdapter{
		client:   &http.Client{Timeout: cfg.AI.Timeout},
		endpoint: cfg.AI.Endpoint,
		apiKey:   cfg.AI.APIKey,
		relayURL: cfg.AI.RelayURL,
		logger:   logger.WithModule("GeminiAdapter"),
	}
}

func (a *GeminiAdapter) Classify(ctx context.Context, prompt string) (string, error) {
	target, err := a.targetURL()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(NewGenerateRequest(prompt))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewNetworkError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("gemini.classify.transport_failed", out.LogFields{
			"error": err.Error(),
		})
		return "", domain.NewNetworkError("classifier unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewNetworkError("read classifier response", err)
	}

	var decoded generateResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.logger.Warn("gemini.classify.bad_status", out.LogFields{
			"status": resp.StatusCode,
		})
		return "", domain.NewUpstreamError(fmt.Sprintf("classifier returned status %d", resp.StatusCode), nil)
	}
	if decodeErr != nil {
		return "", domain.NewMalformedError("decode classifier response", decodeErr)
	}
	if decoded.Error != nil {
		a.logger.Warn("gemini.classify.api_error", out.LogFields{
			"code":    decoded.Error.Code,
			"message": decoded.Error.Message,
		})
		return "", domain.NewUpstreamError(decoded.Error.Message, nil)
	}

	text, ok := decoded.firstText()
	if !ok {
		return "", domain.NewMalformedError("classifier response has no candidate text", nil)
	}

	a.logger.Debug("gemini.classify.completed", out.LogFields{
		"bytes": len(raw),
	})
	return text, nil
}

func (a *GeminiAdapter) targetURL() (string, error) {
	if a.relayURL != "" {
		return a.relayURL, nil
	}
	if a.apiKey == "" {
		return "", domain.NewNotConfiguredError("neither AI_RELAY_URL nor GEMINI_API_KEY is set")
	}

	u, err := nurl.Parse(a.endpoint)
	if err != nil {
		return "", domain.NewNotConfiguredError("invalid AI_ENDPOINT")
	}
	q := u.Query()
	q.Set("key", a.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
