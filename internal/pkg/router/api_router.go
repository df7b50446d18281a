package router

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	apiv1 "github.com/ManuelReschke/AdyenBridge/internal/api/v1"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/cache"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/middleware"
)

// Options configures the API route group.
type Options struct {
	APIKey          string
	WebhookUser     string
	WebhookPassword string
	RateLimitMax    int
	// RedisLimiter stores limiter counters in Redis so that every instance
	// shares them. When false the limiter keeps counters in memory.
	RedisLimiter bool
	CORSOrigins  string
}

// OptionsFromEnv reads the API options from the environment.
func OptionsFromEnv() Options {
	return Options{
		APIKey:          env.GetEnv("API_KEY", ""),
		WebhookUser:     env.GetEnv("ADYEN_NOTIFICATION_USER", ""),
		WebhookPassword: env.GetEnv("ADYEN_NOTIFICATION_PASSWORD", ""),
		RateLimitMax:    env.GetEnvInt("RATE_LIMIT_MAX", 300),
		RedisLimiter:    env.GetEnvBool("RATE_LIMIT_REDIS", true),
		CORSOrigins:     env.GetEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

type ApiRouter struct {
	deps apiv1.Deps
	opts Options
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	limiterCfg := limiter.Config{
		Max:        h.opts.RateLimitMax,
		Expiration: time.Minute,
	}
	if h.opts.RedisLimiter {
		limiterCfg.Storage = newLimiterStorage()
	}

	api := app.Group("/api", cors.New(cors.Config{AllowOrigins: h.opts.CORSOrigins}), limiter.New(limiterCfg))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer(h.deps)
	apiv1.RegisterHandlers(v1, apiServer, h.routeOptions())
}

func (h ApiRouter) routeOptions() apiv1.RouteOptions {
	opts := apiv1.RouteOptions{
		APIKey: middleware.APIKeyAuthMiddleware(h.opts.APIKey),
	}
	if strings.TrimSpace(h.opts.WebhookUser) != "" {
		opts.WebhookAuth = basicauth.New(basicauth.Config{
			Users: map[string]string{
				h.opts.WebhookUser: h.opts.WebhookPassword,
			},
			Realm: "Adyen Notifications",
		})
	} else {
		log.Warn("[Router] ADYEN_NOTIFICATION_USER is not set, the notification endpoint has no basic auth")
	}
	return opts
}

// newLimiterStorage shares rate limit counters through Redis database 1
// (the cache uses database 0).
func newLimiterStorage() fiber.Storage {
	opts := cache.Options()
	host := "localhost"
	port := 6379
	if h, p, err := net.SplitHostPort(opts.Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: opts.Password,
		Database: 1,
		Reset:    false,
	})
}

func NewApiRouter(deps apiv1.Deps, opts Options) *ApiRouter {
	return &ApiRouter{deps: deps, opts: opts}
}
