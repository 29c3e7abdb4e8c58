package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "optimizer:report"
	reportScanBatchSize = 100
)

// ReportKey identifies one cached report variant. Reports for different
// horizons or forecast algorithms never share an entry.
type ReportKey struct {
	DaysAhead int
	Algorithm string
}

type ReportCache interface {
	GetReport(ctx context.Context, key ReportKey) (*domain.OptimizationReport, bool, error)
	SetReport(ctx context.Context, key ReportKey, report *domain.OptimizationReport) error
	InvalidateReport(ctx context.Context, key ReportKey) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, key ReportKey) (*domain.OptimizationReport, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.OptimizationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, key ReportKey, report *domain.OptimizationReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateReport(ctx context.Context, key ReportKey) error {
	return c.client.Del(ctx, buildReportKey(key)).Err()
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, key ReportKey) (*domain.OptimizationReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, key ReportKey, report *domain.OptimizationReport) error {
	return nil
}

func (n *noopReportCache) InvalidateReport(ctx context.Context, key ReportKey) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(key ReportKey) string {
	return fmt.Sprintf("%s:%d:%s", reportKeyPrefix, key.DaysAhead, key.Algorithm)
}
