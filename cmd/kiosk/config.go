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
	"github.com/rh360/facekiosk/pkg/audio"
	"github.com/rh360/facekiosk/pkg/backend"
	"github.com/rh360/facekiosk/pkg/camera"
	"github.com/rh360/facekiosk/pkg/health"
	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/session"
)

const defaultLogFile = "/var/log/facekiosk/kiosk.log"

// KioskConfig aggregates the per-package configurations loaded from the
// kiosk's JSON config file.
type KioskConfig struct {
	Backend backend.Config `json:"backend"`
	Health  health.Config  `json:"health"`
	Camera  camera.Config  `json:"camera"`
	Session session.Config `json:"session"`
	Audio   audio.Config   `json:"audio"`

	// LogFile receives structured logs. The TUI owns the terminal, so logs
	// never go to stdout.
	LogFile string `json:"log_file,omitempty"`

	Logging *logger.Config `json:"logging,omitempty"`
}

// defaultKioskConfig seeds the current workflow profile so a config file
// only needs to override what differs.
func defaultKioskConfig() *KioskConfig {
	return &KioskConfig{
		Session: session.DefaultConfig(),
		LogFile: defaultLogFile,
	}
}

// Validate checks every section and applies defaults.
func (c *KioskConfig) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if err := c.Health.Validate(); err != nil {
		return err
	}

	if err := c.Camera.Validate(); err != nil {
		return err
	}

	if err := c.Session.Validate(); err != nil {
		return err
	}

	if err := c.Audio.Validate(); err != nil {
		return err
	}

	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}

	return nil
}
