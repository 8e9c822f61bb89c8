// Package main serves the event listing views. Events, categories and users are owned by a REST
// backend reached at BACKEND_URL.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dhis2-sre/im-events/internal/handler"
	eventslog "github.com/dhis2-sre/im-events/internal/log"
	"github.com/dhis2-sre/im-events/internal/server"
	"github.com/dhis2-sre/im-events/internal/tracing"
	"github.com/dhis2-sre/im-events/pkg/client"
	"github.com/dhis2-sre/im-events/pkg/config"
	"github.com/dhis2-sre/im-events/pkg/event"
	"github.com/dhis2-sre/im-events/pkg/reference"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.ProvideConfig()

	logger := eventslog.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Pretty)

	shutdownTracing, err := tracing.Setup(cfg.Tracing.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to shut down tracing", "error", err)
		}
	}()

	backendClient := client.New(cfg.Backend.URL, nil, logger)

	store := reference.NewStore(backendClient, logger)
	go store.Load(context.Background())

	err = handler.RegisterValidation()
	if err != nil {
		return err
	}

	r := server.GetEngine(logger, cfg.BasePath, cfg.AllowedOrigins)

	eventHandler := event.NewHandler(logger, cfg.BasePath, cfg.PlaceholderImage, backendClient, store)
	event.Routes(r.Group(cfg.BasePath), eventHandler)

	logger.Info("Listening", "address", cfg.Address(), "backend", cfg.Backend.URL)
	return r.Run(cfg.Address())
}
