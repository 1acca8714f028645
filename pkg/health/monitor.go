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

// Package health polls the recognition backend and publishes its
// reachability.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/models"
)

const (
	defaultPollInterval = 30 * time.Second
	updateBuffer        = 8
)

// Config represents health monitor configuration.
type Config struct {
	PollInterval models.Duration `json:"poll_interval"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if time.Duration(c.PollInterval) == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	return nil
}

// Monitor periodically checks the backend and publishes SystemStatus
// transitions. It implements lifecycle.Service.
type Monitor struct {
	config  Config
	checker Checker
	clock   Clock
	logger  logger.Logger

	mu     sync.Mutex
	status models.SystemStatus
	subs   []chan models.SystemStatus

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a health monitor. A nil clock defaults to the real clock.
func New(config *Config, checker Checker, clock Clock, log logger.Logger) *Monitor {
	if clock == nil {
		clock = realClock{}
	}

	return &Monitor{
		config:  *config,
		checker: checker,
		clock:   clock,
		logger:  log,
		status:  models.StatusChecking,
		done:    make(chan struct{}),
	}
}

// Status returns the last published status.
func (m *Monitor) Status() models.SystemStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

// Subscribe returns a channel receiving every status transition. The channel
// is buffered; a slow consumer drops intermediate transitions rather than
// blocking the monitor.
func (m *Monitor) Subscribe() <-chan models.SystemStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan models.SystemStatus, updateBuffer)
	m.subs = append(m.subs, ch)

	return ch
}

// Start implements lifecycle.Service. It polls once immediately, then on the
// configured interval until Stop or context cancellation.
func (m *Monitor) Start(ctx context.Context) error {
	interval := time.Duration(m.config.PollInterval)
	ticker := m.clock.Ticker(interval)

	defer ticker.Stop()

	m.logger.Info().Dur("interval", interval).Msg("Starting health monitor")

	m.wg.Add(1)
	defer m.wg.Done()

	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-ticker.Chan():
			m.poll(ctx)
		}
	}
}

// Stop implements lifecycle.Service. Idempotent.
func (m *Monitor) Stop(_ context.Context) error {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.subs {
		close(ch)
	}

	m.subs = nil

	return nil
}

func (m *Monitor) poll(ctx context.Context) {
	err := m.checker.Health(ctx)

	next := models.StatusOnline
	if err != nil {
		next = models.StatusOffline
	}

	m.mu.Lock()
	previous := m.status
	m.status = next
	subs := m.subs
	m.mu.Unlock()

	if next == previous {
		return
	}

	if err != nil {
		m.logger.Warn().Err(err).Msg("Backend health check failed")
	} else {
		m.logger.Info().Msg("Backend is online")
	}

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
		}
	}
}
