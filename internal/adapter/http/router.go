package http

import (
	"slices"
	"strings"

	"cv-generator/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber application with middleware and all routes.
func NewApp(cfg config.ServerConfig, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "MakeMeHired API",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(Observability())
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	app.Get("/", h.Root)
	app.Get("/test", h.Diagnostics)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/cv")
	api.Post("/generate", h.GenerateCV)
	api.Get("/templates", h.ListTemplates)
	api.Get("/profiles", h.ListProfiles)
	api.Get("/profiles/:id", h.GetProfile)

	return app
}

// Credentials cannot be combined with a wildcard origin, so they are only
// allowed when origins are listed explicitly.
func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}
