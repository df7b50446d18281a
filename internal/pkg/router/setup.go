package router

import (
	"github.com/gofiber/fiber/v2"

	apiv1 "github.com/ManuelReschke/AdyenBridge/internal/api/v1"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App, deps apiv1.Deps) {
	setup(app, NewApiRouter(deps, OptionsFromEnv()))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
