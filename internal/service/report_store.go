// internal/service/report_store.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"trial-balance/internal/models"
	"trial-balance/pkg/redis"
)

// ReportStore keeps generated reports for a limited time, in memory and
// optionally in Redis so other instances can serve them.
type ReportStore struct {
	redis    *redis.Client
	logger   *zap.Logger
	memCache *MemoryCache
	ttl      time.Duration
}

// MemoryCache is the in-process layer of the report store
type MemoryCache struct {
	mu     sync.RWMutex
	data   map[string]*CacheEntry
	maxAge time.Duration
	done   chan struct{}
	once   sync.Once
}

// CacheEntry represents a cached report with timestamp
type CacheEntry struct {
	Report   *models.Report
	CachedAt time.Time
}

// NewReportStore creates a report store. redisClient may be nil.
func NewReportStore(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportStore {
	return &ReportStore{
		redis:    redisClient,
		logger:   logger,
		memCache: NewMemoryCache(ttl),
		ttl:      ttl,
	}
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(maxAge time.Duration) *MemoryCache {
	cache := &MemoryCache{
		data:   make(map[string]*CacheEntry),
		maxAge: maxAge,
		done:   make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// Save stores a report in memory and Redis
func (rs *ReportStore) Save(ctx context.Context, report *models.Report) error {
	rs.memCache.Set(report.ID, report)

	if rs.redis == nil {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := rs.redis.Set(ctx, rs.cacheKey(report.ID), data, rs.ttl); err != nil {
		rs.logger.Error("failed to store report in redis",
			zap.Error(err),
			zap.String("report_id", report.ID))
		return err
	}

	return nil
}

// Get retrieves a report, checking memory first and then Redis
func (rs *ReportStore) Get(ctx context.Context, id string) (*models.Report, error) {
	if report := rs.memCache.Get(id); report != nil {
		rs.logger.Debug("report hit (memory)", zap.String("report_id", id))
		return report, nil
	}

	if rs.redis == nil {
		return nil, models.ErrReportNotFound
	}

	data, err := rs.redis.Get(ctx, rs.cacheKey(id))
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	rs.logger.Debug("report hit (redis)", zap.String("report_id", id))
	rs.memCache.Set(id, &report)

	return &report, nil
}

// Exists reports whether a report is held in either layer
func (rs *ReportStore) Exists(ctx context.Context, id string) (bool, error) {
	if rs.memCache.Get(id) != nil {
		return true, nil
	}
	if rs.redis == nil {
		return false, nil
	}
	return rs.redis.Exists(ctx, rs.cacheKey(id))
}

// Delete removes a report from both layers
func (rs *ReportStore) Delete(ctx context.Context, id string) error {
	rs.memCache.Delete(id)

	if rs.redis == nil {
		return nil
	}
	return rs.redis.Delete(ctx, rs.cacheKey(id))
}

// Close stops the memory cache janitor
func (rs *ReportStore) Close() {
	rs.memCache.Close()
}

// GetStats returns cache statistics
func (rs *ReportStore) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"memory_cache_size": rs.memCache.Len(),
		"memory_cache_ttl":  rs.memCache.maxAge.String(),
		"redis_enabled":     rs.redis != nil,
	}
}

func (rs *ReportStore) cacheKey(id string) string {
	return fmt.Sprintf("trial-balance:report:%s", id)
}

// MemoryCache methods

// Get retrieves from memory cache
func (mc *MemoryCache) Get(key string) *models.Report {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	entry, exists := mc.data[key]
	if !exists {
		return nil
	}

	if time.Since(entry.CachedAt) > mc.maxAge {
		return nil
	}

	return entry.Report
}

// Set stores in memory cache
func (mc *MemoryCache) Set(key string, report *models.Report) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.data[key] = &CacheEntry{
		Report:   report,
		CachedAt: time.Now(),
	}
}

// Delete removes from memory cache
func (mc *MemoryCache) Delete(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.data, key)
}

func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return len(mc.data)
}

// Close stops the cleanup goroutine
func (mc *MemoryCache) Close() {
	mc.once.Do(func() { close(mc.done) })
}

// cleanup periodically removes expired entries
func (mc *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-mc.done:
			return
		case <-ticker.C:
			mc.evictExpired(time.Now())
		}
	}
}

func (mc *MemoryCache) evictExpired(now time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for key, entry := range mc.data {
		if now.Sub(entry.CachedAt) > mc.maxAge {
			delete(mc.data, key)
		}
	}
}
