// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/segue-fm/segue/internal/service"
)

// Advancer is the simulation surface the ticker drives.
// Satisfied by *service.Service.
type Advancer interface {
	Advance(ctx context.Context, n int) (service.SimulationResult, error)
}

// SimulatorService runs one simulation step per tick as a supervised
// service. With a zero interval the service idles until shutdown, leaving
// simulation entirely to the API.
type SimulatorService struct {
	svc      Advancer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSimulatorService creates a ticker service advancing svc every interval.
func NewSimulatorService(svc Advancer, interval time.Duration, logger zerolog.Logger) *SimulatorService {
	return &SimulatorService{
		svc:      svc,
		interval: interval,
		logger:   logger,
		name:     "simulator-ticker",
	}
}

// Serve implements suture.Service.
func (s *SimulatorService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("simulator ticker disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("simulator ticker running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("simulator ticker shutting down")
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.svc.Advance(ctx, 1); err != nil {
				s.logger.Warn().Err(err).Msg("simulation step failed")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in event logs.
func (s *SimulatorService) String() string {
	return s.name
}
