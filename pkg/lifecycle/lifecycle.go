/*
 * Copyright 2025 RH360 SpA.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package lifecycle manages startup and shutdown of the kiosk's long-running
// services.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rh360/facekiosk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Service is a long-running component with explicit start/stop semantics.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Options configures a Run invocation.
type Options struct {
	// Services are started in order and stopped in reverse order.
	Services []Service
	// Main blocks until the foreground program (the TUI) exits. Run returns
	// when Main returns or a service fails to start.
	Main   func(ctx context.Context) error
	Logger logger.Logger
}

// Run starts the background services, executes Main, and tears everything
// down on exit or on SIGINT/SIGTERM.
func Run(ctx context.Context, opts *Options) error {
	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	started := make([]Service, 0, len(opts.Services))

	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()

		for i := len(started) - 1; i >= 0; i-- {
			if err := started[i].Stop(stopCtx); err != nil {
				log.Error().Err(err).Msg("Error stopping service")
			}
		}

		if err := logger.ShutdownOTEL(); err != nil {
			log.Error().Err(err).Msg("Error flushing log exporter")
		}
	}()

	errCh := make(chan error, len(opts.Services))

	for _, svc := range opts.Services {
		started = append(started, svc)

		go func(s Service) {
			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}(svc)
	}

	if opts.Main == nil {
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return nil
		}
	}

	mainDone := make(chan error, 1)

	go func() {
		mainDone <- opts.Main(ctx)
	}()

	select {
	case err := <-mainDone:
		return err
	case err := <-errCh:
		cancel()

		// give the foreground program a chance to unwind the terminal
		select {
		case <-mainDone:
		case <-time.After(shutdownTimeout):
		}

		return fmt.Errorf("service failed: %w", err)
	}
}

// CreateComponentLogger creates a logger tagged with a component name.
func CreateComponentLogger(ctx context.Context, component string, config *logger.Config) (logger.Logger, error) {
	base, err := logger.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	zlog := base.WithComponent(component)

	return logger.FromZerolog(zlog), nil
}
