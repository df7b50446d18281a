package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Options returns the connection settings read from the environment.
func Options() *redis.Options {
	db, err := strconv.Atoi(env.GetEnv("CACHE_DB", "0"))
	if err != nil {
		db = 0
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379")),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       db,
	}
}

// SetupCache initializes the connection to the Redis server
func SetupCache() {
	client = redis.NewClient(Options())

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// Delete removes a value from the cache by key
func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}
