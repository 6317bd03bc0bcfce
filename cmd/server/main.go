package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"nearby-places/internal/config"
	"nearby-places/internal/handler"
	"nearby-places/pkg/logger"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
	"nearby-places/pkg/search"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/dev.yaml", "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	manager := config.NewManager()
	cfg, err := manager.Load(app.configPath)
	if err != nil {
		return err
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetGlobalLogger(logger.New(cfg.Logger))
	appLog := logger.GetLogger().WithField("component", "server")
	appLog.WithFields(map[string]interface{}{
		"config":    app.configPath,
		"transport": cfg.Places.Transport,
		"api_key":   logger.MaskSecret(cfg.Places.APIKey),
	}).Info("Configuration loaded")

	client, err := places.NewClient(cfg.ClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create places client: %w", err)
	}
	defer client.Close()

	m := mapview.NewMap()
	inbox := &mapview.Inbox{}
	session := search.NewSession(client, search.NewHandler(
		m,
		mapview.Notifiers{inbox, mapview.NewLogNotifier()},
		cfg.MapCamera(),
	))

	server := fiber.New(fiber.Config{
		AppName:               "nearby-places",
		DisableStartupMessage: true,
	})
	handler.NewController(session, m, inbox, mapview.NewRaster(cfg.Render.Width, cfg.Render.Height)).Register(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLog.Info("Shutdown signal received")
		cancel()
	}()

	// The one search of this process, started as soon as the map exists.
	go func() {
		searchCtx := ctx
		if cfg.Search.Timeout > 0 {
			var searchCancel context.CancelFunc
			searchCtx, searchCancel = context.WithTimeout(ctx, cfg.Search.Timeout)
			defer searchCancel()
		}
		_, _ = session.Run(searchCtx, manager.GetConfig().SearchQuery())
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listenErr := make(chan error, 1)
	go func() {
		appLog.WithField("addr", addr).Info("HTTP server listening")
		listenErr <- server.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	appLog.Info("Shutting down gracefully")
	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	appLog.Info("Server stopped")
	return nil
}
