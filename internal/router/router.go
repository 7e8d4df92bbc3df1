package router

import (
	"net/http"

	"gear-loadout-optimiser/internal/jobs"
	"gear-loadout-optimiser/internal/optimizer"
	gear_router "gear-loadout-optimiser/internal/router/gear"
	optimise_router "gear-loadout-optimiser/internal/router/optimise"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	// Store is optional. Without it the inventory routes are not served.
	Store   gear_router.Store
	Jobs    *jobs.Manager
	// History is optional, see optimise_router.Config.
	History jobs.StatusHistory
	Options optimizer.Options
}

func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	// Set up middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	api := e.Group("/api")
	api.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	gear_router.Bind(api, config.Store)

	optimiseConfig := optimise_router.Config{
		Options: config.Options,
		Jobs:    config.Jobs,
		History: config.History,
	}
	if config.Store != nil {
		optimiseConfig.Inventory = config.Store
	}
	optimise_router.Bind(api, optimiseConfig)

	return e
}
