// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/handler"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/realtime"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer *httpServer
	changes    ChangeSource
	hub        *realtime.Hub
	logger     *logger.Logger
}

// NewServer builds the backend. changes may be nil, in which case realtime
// subscribers receive no events.
func NewServer(handlers *handler.Handlers, changes ChangeSource, hub *realtime.Hub, cfg *config.ServerConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, cfg.ShutdownTimeout, logger),
		changes:    changes,
		hub:        hub,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.Run(context.Background()); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.hub.Close()
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	s.logger.Info().Msg("Launching HTTP server")
	g.Go(s.httpServer.Serve)

	if s.changes != nil {
		g.Go(func() error {
			return s.changes.Listen(gctx, s.hub.Publish)
		})
	}

	// stop on signal, cancellation or the failure of any part
	g.Go(func() error {
		<-gctx.Done()
		s.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
