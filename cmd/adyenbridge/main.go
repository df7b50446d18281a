package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/AdyenBridge/app/repository"
	apiv1 "github.com/ManuelReschke/AdyenBridge/internal/api/v1"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/archive"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/billing"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/cache"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/checkout"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/database"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/jobqueue"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/router"
)

func main() {
	app := NewApplication()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		jobqueue.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	repository.InitializeFactory(db)
	repos := repository.GetGlobalRepositories()

	agreements := billing.NewServiceFromDB(db)
	processors := jobqueue.Processors{Agreements: agreements}

	archiveEnabled := false
	archiveCfg, err := archive.LoadConfig()
	if err != nil {
		log.Printf("Notification archive disabled: %v", err)
	} else if archiveCfg.IsEnabled() {
		client, err := archive.NewClient(context.Background(), archiveCfg)
		if err != nil {
			log.Printf("Notification archive disabled: %v", err)
		} else {
			processors.Archive = client
			archiveEnabled = true
		}
	}

	manager := jobqueue.GetManager()
	manager.Configure(processors)
	manager.Start()

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app, apiv1.Deps{
		StateData:      repos.StateData,
		Giftcards:      checkout.NewGiftcardDataBuilder(repos.StateData),
		Agreements:     agreements,
		Jobs:           manager.GetQueue(),
		HMACKey:        env.GetEnv("ADYEN_HMAC_KEY", ""),
		ArchiveEnabled: archiveEnabled,
	})

	return app
}
