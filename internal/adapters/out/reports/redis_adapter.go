package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

const keyPrefix = "report_"

// RedisAdapter keeps one JSON document per patient under report_<name>.
type RedisAdapter struct {
	client *redis.Client
	logger out.LoggerPort
}

func NewRedisAdapter(ctx context.Context, redisURL string, logger out.LoggerPort) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisAdapter{
		client: client,
		logger: logger.WithModule("RedisReportAdapter"),
	}, nil
}

func NewRedisAdapterWithClient(client *redis.Client, logger out.LoggerPort) *RedisAdapter {
	return &RedisAdapter{
		client: client,
		logger: logger.WithModule("RedisReportAdapter"),
	}
}

func (a *RedisAdapter) GetReport(ctx context.Context, patient string) (*domain.PatientReport, bool, error) {
	data, err := a.client.Get(ctx, keyPrefix+patient).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domain.NewNetworkError("get report", err)
	}

	var report domain.PatientReport
	if err := json.Unmarshal(data, &report); err != nil {
		a.logger.Warn("reports.redis.decode_failed", out.LogFields{
			"patient": patient,
			"error":   err.Error(),
		})
		return nil, false, domain.NewMalformedError("decode report", err)
	}
	return &report, true, nil
}

func (a *RedisAdapter) StoreReport(ctx context.Context, report domain.PatientReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := a.client.Set(ctx, keyPrefix+report.Patient, data, 0).Err(); err != nil {
		return domain.NewNetworkError("store report", err)
	}
	return nil
}

func (a *RedisAdapter) Close() error {
	return a.client.Close()
}
