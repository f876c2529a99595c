// Package router assembles the echo instance: middleware, error handler and
// the routes of every resource family.
package router

import (
	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/handler"
	"github.com/forgo/madoka/api/internal/middleware"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/forgo/madoka/api/internal/repository"
	"github.com/forgo/madoka/api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Config holds what the router needs to build the API
type Config struct {
	DB             database.Database
	Logger         zerolog.Logger
	AllowedOrigins []string
	Environment    string
}

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Health       *handler.HealthHandler
	MagicalGirls *handler.ResourceHandler[model.MagicalGirl, model.MagicalGirlInput]
	Witches      *handler.ResourceHandler[model.Witch, model.WitchInput]
}

// NewHandlers wires repositories, services and handlers over db
func NewHandlers(db database.Database, environment string) *Handlers {
	magicalGirlRepo := repository.NewMagicalGirlRepository(db)
	witchRepo := repository.NewWitchRepository(db)

	magicalGirlService := service.NewMagicalGirlService(service.MagicalGirlServiceConfig{
		Repo: magicalGirlRepo,
	})
	witchService := service.NewWitchService(service.WitchServiceConfig{
		Repo:         witchRepo,
		MagicalGirls: magicalGirlRepo,
	})

	return &Handlers{
		Health: handler.NewHealthHandler(handler.HealthHandlerConfig{
			DB:          db,
			Environment: environment,
		}),
		MagicalGirls: handler.NewResourceHandler[model.MagicalGirl, model.MagicalGirlInput](magicalGirlService),
		Witches:      handler.NewResourceHandler[model.Witch, model.WitchInput](witchService),
	}
}

// New builds the echo instance serving the API
func New(cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(
		middleware.RequestID(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestLogger(),
		middleware.Recover(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	h := NewHandlers(cfg.DB, cfg.Environment)

	e.GET("/health", h.Health.CheckHealth)
	h.MagicalGirls.Register(e.Group("/magicalgirls"))
	h.Witches.Register(e.Group("/witches"))

	return e
}
