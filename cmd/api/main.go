package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
	"cardapio-digital/interfaces/api/middleware"
	"cardapio-digital/interfaces/api/routes"
	"cardapio-digital/pkg/di"
	"cardapio-digital/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// logger may not be initialized yet
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// request id must run before the logger
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.CorsOriginList()))

	h := handlers.NewHandlers(container.GetServices())
	routes.SetupRoutes(app, h, routes.Options{
		JWTSecret:     cfg.JWT.Secret,
		CartTTL:       cfg.Cart.TTL,
		SecureCookies: !cfg.IsDevelopment(),
	})

	setupGracefulShutdown(app, container)

	logger.Info("Server starting",
		"port", cfg.App.Port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
		"store", cfg.Store.Driver,
	)

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Error shutting down server", "error", err)
		}
		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
