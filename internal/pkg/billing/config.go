package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/cache"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/recurring"
)

const configCacheTTL = 5 * time.Minute

// ConfigReader resolves store scoped configuration values.
type ConfigReader interface {
	GetValue(storeID uint, path string) (string, error)
}

// ValueCache is the subset of the cache used to memoize config lookups.
type ValueCache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
}

type redisValueCache struct{}

func (redisValueCache) Get(key string) (string, error) { return cache.Get(key) }

func (redisValueCache) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

// DefaultValueCache uses the shared Redis cache.
func DefaultValueCache() ValueCache {
	return redisValueCache{}
}

type cachedConfigReader struct {
	next  ConfigReader
	cache ValueCache
}

// NewCachedConfigReader memoizes next in c. Cache failures fall through to next.
func NewCachedConfigReader(next ConfigReader, c ValueCache) ConfigReader {
	return &cachedConfigReader{next: next, cache: c}
}

func configCacheKey(storeID uint, path string) string {
	return fmt.Sprintf("store_config:%d:%s", storeID, path)
}

func (r *cachedConfigReader) GetValue(storeID uint, path string) (string, error) {
	key := configCacheKey(storeID, path)
	if v, err := r.cache.Get(key); err == nil {
		return v, nil
	} else if !errors.Is(err, redis.Nil) {
		log.Warnf("[Billing] config cache read failed for %s: %v", key, err)
	}

	v, err := r.next.GetValue(storeID, path)
	if err != nil {
		return "", err
	}
	if err := r.cache.Set(key, v, configCacheTTL); err != nil {
		log.Warnf("[Billing] config cache write failed for %s: %v", key, err)
	}
	return v, nil
}

// recurringTypeFor resolves the contract type setting for a result.
func recurringTypeFor(cfg ConfigReader, storeID uint, pos bool) (string, error) {
	path := models.ConfigPathRecurringType
	if pos {
		path = models.ConfigPathPosCloudRecurringType
	}
	v, err := cfg.GetValue(storeID, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(v) == "" {
		return recurring.DefaultRecurringType, nil
	}
	return v, nil
}
