package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/quaresma/internal/api"
	"github.com/terraincognita07/quaresma/internal/cli"
	"github.com/terraincognita07/quaresma/internal/config"
	"github.com/terraincognita07/quaresma/internal/content"
	"github.com/terraincognita07/quaresma/internal/db"
	"github.com/terraincognita07/quaresma/internal/i18n"
	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/services"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config init failed: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	location := mustLoadLocation(cfg.Timezone, log)
	time.Local = location

	if len(os.Args) > 1 {
		runCommand(os.Args[1:], cfg, log)
		return
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}

	app, err := newApp(cfg, database, log)
	if err != nil {
		log.Fatal("app init failed", "error", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("quaresma listening", "addr", "0.0.0.0:"+cfg.Port, "db", cfg.DBPath, "tz", location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}

func runCommand(args []string, cfg *config.Config, log *logger.Logger) {
	switch args[0] {
	case "reset-journey":
		if err := cli.RunResetJourneyCommand(cfg.DBPath, log); err != nil {
			log.Fatal("reset-journey failed", "error", err)
		}
	default:
		log.Fatal("unknown command", "command", args[0], "usage", "quaresma [reset-journey]")
	}
}

func newApp(cfg *config.Config, database *gorm.DB, log *logger.Logger) (*fiber.App, error) {
	repositories := db.NewRepositories(database)
	store := services.NewStateStore(repositories.States, log)

	generator := content.NewGeminiGenerator(geminiConfig(cfg.Gemini), log)
	if !generator.HasAPIKey() {
		log.Warn("GEMINI_API_KEY is empty; content will fall back until a key is selected")
	}
	gateway := content.NewGateway(generator, log)

	controller := services.NewController(store, gateway, services.ControllerOptions{
		EncouragementDelay: cfg.Quiz.EncouragementDelay,
		DiagnosticDelay:    cfg.Quiz.DiagnosticDelay,
		BonusCheckoutURL:   cfg.BonusCheckoutURL,
	}, log)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	shares := services.NewShareService(nil, api.ResponseClipboard{}, log)
	settings := services.NewSettingsService(nil, generator, log)
	handler, err := api.NewHandler(controller, shares, settings, i18nManager, log)
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "A sua Abençoada Quaresma",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}

func geminiConfig(cfg config.Gemini) content.GeminiConfig {
	return content.GeminiConfig{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		ProModel:      cfg.ProModel,
		FlashModel:    cfg.FlashModel,
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
	}
}

func mustLoadLocation(name string, log *logger.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.OrNop(log).Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}
