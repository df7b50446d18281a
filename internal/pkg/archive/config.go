package archive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
)

// Config holds notification archive configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Prefix          string
	Enabled         bool
}

// LoadConfig loads S3 configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-central-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Prefix:          strings.Trim(env.GetEnv("S3_PREFIX", "notifications"), "/"),
		Enabled:         env.GetEnvBool("ARCHIVE_ENABLED", false),
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when archiving is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when archiving is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when archiving is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if notification archiving is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey builds the key for a notification item:
// <prefix>/YYYY/MM/DD/<eventCode>/<pspReference>.json
func (c *Config) ObjectKey(pspReference, eventCode string, at time.Time) string {
	at = at.UTC()
	key := fmt.Sprintf("%04d/%02d/%02d/%s/%s.json",
		at.Year(), int(at.Month()), at.Day(), strings.ToLower(eventCode), pspReference)
	if c.Prefix == "" {
		return key
	}
	return c.Prefix + "/" + key
}
