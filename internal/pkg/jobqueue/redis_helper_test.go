package jobqueue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
	"github.com/redis/go-redis/v9"
)

const isolatedJobQueueTestRedisDB = 14

func resolveTestRedis(t *testing.T) (string, string, string) {
	t.Helper()

	hosts := []string{
		env.GetEnv("CACHE_HOST", ""),
		"cache",
		"adyenbridge-cache",
		"localhost",
		"127.0.0.1",
	}
	ports := []string{
		env.GetEnv("CACHE_PORT", "6379"),
		"6379",
	}
	passwords := []string{
		env.GetEnv("CACHE_PASSWORD", ""),
		"adyenbridge",
		"",
	}

	seenHost := make(map[string]struct{})
	seenPort := make(map[string]struct{})
	seenPassword := make(map[string]struct{})
	uniqueHosts := make([]string, 0, len(hosts))
	uniquePorts := make([]string, 0, len(ports))
	uniquePasswords := make([]string, 0, len(passwords))

	for _, host := range hosts {
		if host == "" {
			continue
		}
		if _, ok := seenHost[host]; ok {
			continue
		}
		seenHost[host] = struct{}{}
		uniqueHosts = append(uniqueHosts, host)
	}
	for _, port := range ports {
		if port == "" {
			continue
		}
		if _, ok := seenPort[port]; ok {
			continue
		}
		seenPort[port] = struct{}{}
		uniquePorts = append(uniquePorts, port)
	}
	for _, password := range passwords {
		if _, ok := seenPassword[password]; ok {
			continue
		}
		seenPassword[password] = struct{}{}
		uniquePasswords = append(uniquePasswords, password)
	}

	var lastErr error
	for _, host := range uniqueHosts {
		for _, port := range uniquePorts {
			for _, password := range uniquePasswords {
				client := redis.NewClient(&redis.Options{
					Addr:     fmt.Sprintf("%s:%s", host, port),
					Password: password,
					DB:       0,
				})

				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				_, err := client.Ping(ctx).Result()
				cancel()
				_ = client.Close()
				if err == nil {
					return host, port, password
				}
				lastErr = err
			}
		}
	}

	t.Skipf("Skipping Redis-dependent test: no reachable Redis endpoint (%v)", lastErr)
	return "", "", ""
}

func newIsolatedRedisClient(t *testing.T, db int) *redis.Client {
	t.Helper()

	host, port, password := resolveTestRedis(t)
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_, err := client.Ping(ctx).Result()
	cancel()
	if err != nil {
		_ = client.Close()
		t.Skipf("Skipping Redis-dependent test: isolated DB ping failed (%v)", err)
	}

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("failed to flush isolated redis db %d: %v", db, err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
