package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/api"
	"github.com/terraincognita07/rhythm/internal/cli"
	"github.com/terraincognita07/rhythm/internal/config"
	"github.com/terraincognita07/rhythm/internal/db"
	"github.com/terraincognita07/rhythm/internal/logger"
	"github.com/terraincognita07/rhythm/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	command, commandArgs, err := parseCommand(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid command")
	}

	switch command {
	case "materialize":
		options := materializeOptions(cfg, commandArgs)
		if err := cli.RunMaterializeCommand(context.Background(), options, log, os.Stdout); err != nil {
			log.WithError(err).Fatal("materialize failed")
		}
	default:
		if err := serve(cfg, log); err != nil {
			log.WithError(err).Fatal("server exited")
		}
	}
}

// parseCommand splits argv into a subcommand and its arguments. No
// arguments means serve.
func parseCommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "serve", nil, nil
	}
	switch args[0] {
	case "serve":
		if len(args) > 1 {
			return "", nil, errors.New("serve takes no arguments")
		}
		return "serve", nil, nil
	case "materialize":
		if len(args) > 3 {
			return "", nil, errors.New("usage: materialize [FROM] [TO]")
		}
		return "materialize", args[1:], nil
	default:
		return "", nil, fmt.Errorf("unknown command %q", args[0])
	}
}

func materializeOptions(cfg *config.Config, args []string) cli.MaterializeOptions {
	options := cli.MaterializeOptions{
		DBPath:       cfg.DBPath,
		Location:     cfg.Location,
		MaxRangeDays: cfg.MaxRangeDays,
	}
	if len(args) > 0 {
		options.From = args[0]
	}
	if len(args) > 1 {
		options.To = args[1]
	}
	return options
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Rhythm",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	store := db.NewStore(database)
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	handler, err := api.NewHandler(database, cfg.Location, cfg.MaxRangeDays, log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler)

	warmer := scheduler.NewWarmer(handler.Calendar(), cfg.WarmupCron, cfg.WarmupHorizonDays, cfg.Location, log)
	if err := warmer.Start(); err != nil {
		return err
	}
	defer warmer.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("rhythm listening")
	return app.Listen(":" + cfg.Port)
}
