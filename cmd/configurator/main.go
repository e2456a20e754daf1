package main

import (
	"fmt"
	"log"
	"time"

	"cabinet-configurator/internal/common/config"
	"cabinet-configurator/internal/common/middleware"
	"cabinet-configurator/internal/configurator/handlers"
	"cabinet-configurator/internal/configurator/metrics"
	"cabinet-configurator/internal/configurator/service"
	"cabinet-configurator/internal/configurator/store"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Configurator Service
// ============================================================

func main() {
	cfg := config.Load()

	m := metrics.New()
	sessions := service.NewSessionManager(cfg.SessionLimit, store.WithRecorder(m))
	sessions.OnChange(m.SetSessions)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Cabinet Configurator",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(sessions))
	app.Get("/health/startup", handlers.StartupProbe)

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Cabinet Configurator v1",
			"status":  "ok",
		})
	})

	handlers.NewConfiguratorHandler(sessions).Register(api)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Cabinet Configurator on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Session limit: %d, CORS origins: %v", cfg.SessionLimit, cfg.CORSOrigins)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
