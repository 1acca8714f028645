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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rh360/facekiosk/pkg/audio"
	"github.com/rh360/facekiosk/pkg/backend"
	"github.com/rh360/facekiosk/pkg/camera"
	"github.com/rh360/facekiosk/pkg/config"
	"github.com/rh360/facekiosk/pkg/health"
	"github.com/rh360/facekiosk/pkg/lifecycle"
	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/session"
	"github.com/rh360/facekiosk/pkg/tui"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/facekiosk/kiosk.json", "Path to kiosk config file")
	flag.Parse()

	ctx := context.Background()

	// Step 1: Load configuration over the default profile.
	cfg := defaultKioskConfig()

	cfgLoader := config.NewConfig(nil)
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	// Step 2: Logger. The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	base := logger.NewWithWriter(logFile, cfg.Logging)
	kioskLogger := logger.FromZerolog(base.WithComponent("kiosk"))

	// Step 3: Wiring.
	client := backend.NewClient(&cfg.Backend, kioskLogger)
	monitor := health.New(&cfg.Health, client, nil, kioskLogger) // nil clock defaults to the real clock
	statusCh := monitor.Subscribe()

	factory := func() camera.FrameSource {
		return camera.NewRTSPSource(cfg.Camera, kioskLogger)
	}

	player := audio.NewPlayer(cfg.Audio, kioskLogger)

	controller := session.NewController(cfg.Session, client, monitor, factory, player, kioskLogger)

	// Step 4: Run until the operator quits or a signal arrives.
	return lifecycle.Run(ctx, &lifecycle.Options{
		Services: []lifecycle.Service{monitor, controller},
		Main: func(ctx context.Context) error {
			return tui.Run(ctx, controller, statusCh)
		},
		Logger: kioskLogger,
	})
}
