// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Segue serves next-track recommendations over HTTP.
//
// Startup sequence:
//  1. Load configuration (defaults, optional YAML file, SEGUE_ env vars)
//  2. Initialize structured logging
//  3. Build the catalog, transition table, selector, and simulator
//  4. Run the configured number of warm-up simulation steps
//  5. Start the supervisor tree: simulation ticker and HTTP server
//  6. Block until SIGINT/SIGTERM, then shut down gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/segue-fm/segue/internal/api"
	"github.com/segue-fm/segue/internal/catalog"
	"github.com/segue-fm/segue/internal/config"
	"github.com/segue-fm/segue/internal/logging"
	"github.com/segue-fm/segue/internal/recommend"
	"github.com/segue-fm/segue/internal/service"
	"github.com/segue-fm/segue/internal/simulator"
	"github.com/segue-fm/segue/internal/supervisor"
	"github.com/segue-fm/segue/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Int("songs", cfg.Catalog.Songs).
		Int("users", cfg.Catalog.Users).
		Msg("Starting Segue")

	svc, err := buildService(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommender")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.SeedSteps > 0 {
		result, err := svc.Advance(ctx, cfg.Simulator.SeedSteps)
		if err != nil {
			logging.Fatal().Err(err).Msg("Warm-up simulation failed")
		}
		logging.Info().
			Int("steps", result.StepsRun).
			Int64("transitions", result.TotalTransitions).
			Msg("Warm-up simulation complete")
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})

	tree.AddSimulationService(services.NewSimulatorService(
		svc, cfg.Simulator.TickInterval, logging.With().Str("component", "simulator").Logger(),
	))

	router := api.NewRouter(svc, &api.MiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped")
}

// buildService constructs the domain components and wires them into the
// orchestrator.
func buildService(cfg *config.Config) (*service.Service, error) {
	cat, err := catalog.New(cfg.Catalog.Songs, cfg.Catalog.Users)
	if err != nil {
		return nil, err
	}

	table := recommend.NewTransitionTable(cat)

	sel, err := recommend.NewSelector(cat, table, cfg.Recommender)
	if err != nil {
		return nil, err
	}

	sim, err := simulator.New(cat, table, cfg.SimulatorConfig())
	if err != nil {
		return nil, err
	}

	return service.New(cat, table, sel, sim), nil
}
