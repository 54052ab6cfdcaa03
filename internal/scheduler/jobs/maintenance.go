package jobs

import (
	"context"

	"github.com/wonny/bunkerwatch/backend/internal/boardcache"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// StaleCleaner boardcache.MemoryCache 의 만료 항목 정리
type StaleCleaner interface {
	CleanStale() int
	Stats() boardcache.CacheStats
}

// CacheCleanupJob cleans expired boards from the in-process cache
type CacheCleanupJob struct {
	cache  StaleCleaner
	logger *logger.Logger
}

// NewCacheCleanupJob creates a new cache cleanup job
func NewCacheCleanupJob(cache StaleCleaner, log *logger.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache:  cache,
		logger: log,
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Schedule returns the cron schedule (every 5 minutes)
func (j *CacheCleanupJob) Schedule() string {
	return "0 */5 * * * *"
}

// Run executes the cache cleanup
func (j *CacheCleanupJob) Run(ctx context.Context) error {
	count := j.cache.CleanStale()
	stats := j.cache.Stats()

	log := j.logger.WithFields(map[string]interface{}{
		"removed": count,
		"cached":  stats.TotalCount,
		"bytes":   stats.Bytes,
	})
	if count > 0 {
		log.Info("Cache cleanup completed")
	} else {
		log.Debug("Cache cleanup completed")
	}

	return nil
}
