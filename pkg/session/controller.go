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

// Package session implements the attendance capture workflow: camera
// acquisition, countdown-driven auto-capture, verification, confirmation
// gate and manual fallback, as a single configurable state machine.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rh360/facekiosk/pkg/audio"
	"github.com/rh360/facekiosk/pkg/camera"
	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/models"
)

const (
	defaultCountdownSeconds = 5
	defaultRetryDelay       = 3 * time.Second
	defaultVerifyTimeout    = 15 * time.Second
	defaultCameraReadyWait  = 10 * time.Second
	defaultAddress          = "Registro Web Facial"

	countdownInterval = time.Second
	eventBuffer       = 64

	// MaxEmployeeIDLength caps the manual identifier input.
	MaxEmployeeIDLength = 10
)

// Config selects the workflow profile. Earlier kiosk deployments ran with a
// countdown seed of 4, no confirmation gate and live-camera retry; the
// current profile uses seed 5 with the confirmation gate and manual
// fallback. DefaultConfig returns the current profile.
type Config struct {
	// CountdownSeconds is the auto-capture countdown seed.
	CountdownSeconds int `json:"countdown_seconds,omitempty"`

	// ConfirmGate requires an explicit operator confirmation after a match
	// before the session finalizes.
	ConfirmGate bool `json:"confirm_gate"`

	// ManualFallback offers manual entry after a recognition rejection.
	// Takes precedence over RetryWithCamera.
	ManualFallback bool `json:"manual_fallback"`

	// RetryWithCamera keeps the camera live after a rejection and re-arms
	// the countdown once RetryDelay elapses.
	RetryWithCamera bool `json:"retry_with_camera"`

	// RetryDelay is the pause before a live-camera retry. Defaults to 3s.
	RetryDelay models.Duration `json:"retry_delay,omitempty"`

	// VerifyTimeout bounds each verification or manual attendance call.
	// Defaults to 15s.
	VerifyTimeout models.Duration `json:"verify_timeout,omitempty"`

	// CameraReadyWait bounds the wait for the first frame before the
	// countdown may start. Defaults to 10s.
	CameraReadyWait models.Duration `json:"camera_ready_wait,omitempty"`

	// Address is the fixed location label sent with every attempt.
	Address string `json:"address,omitempty"`
}

// DefaultConfig returns the current kiosk profile.
func DefaultConfig() Config {
	return Config{
		CountdownSeconds: defaultCountdownSeconds,
		ConfirmGate:      true,
		ManualFallback:   true,
		RetryDelay:       models.Duration(defaultRetryDelay),
		VerifyTimeout:    models.Duration(defaultVerifyTimeout),
		CameraReadyWait:  models.Duration(defaultCameraReadyWait),
		Address:          defaultAddress,
	}
}

// Validate applies defaults to unset numeric fields.
func (c *Config) Validate() error {
	if c.CountdownSeconds <= 0 {
		c.CountdownSeconds = defaultCountdownSeconds
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = models.Duration(defaultRetryDelay)
	}

	if c.VerifyTimeout == 0 {
		c.VerifyTimeout = models.Duration(defaultVerifyTimeout)
	}

	if c.CameraReadyWait == 0 {
		c.CameraReadyWait = models.Duration(defaultCameraReadyWait)
	}

	if c.Address == "" {
		c.Address = defaultAddress
	}

	return nil
}

// Controller drives attendance sessions. At most one session is active at a
// time; a session's ID guards late results from repainting a superseded or
// cancelled session.
type Controller struct {
	config    Config
	verifier  Verifier
	status    StatusSource
	newSource SourceFactory
	player    audio.Player
	clock     Clock
	logger    logger.Logger

	mu         sync.Mutex
	state      State
	sessionID  uuid.UUID
	process    models.ProcessType
	countdown  int
	processing bool
	source     camera.FrameSource
	pending    *models.RecognitionResult
	cancelFn   context.CancelFunc

	events chan Event
}

// NewController creates a controller from a validated configuration.
func NewController(
	config Config,
	verifier Verifier,
	status StatusSource,
	factory SourceFactory,
	player audio.Player,
	log logger.Logger,
) *Controller {
	return &Controller{
		config:    config,
		verifier:  verifier,
		status:    status,
		newSource: factory,
		player:    player,
		clock:     realClock{},
		logger:    log,
		state:     StateIdle,
		events:    make(chan Event, eventBuffer),
	}
}

// Events returns the controller's notification stream for the presentation
// layer.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Start implements lifecycle.Service. The controller has no background loop
// of its own; sessions run on demand.
func (c *Controller) Start(_ context.Context) error {
	return nil
}

// Stop implements lifecycle.Service: it cancels any active session and
// releases the camera.
func (c *Controller) Stop(_ context.Context) error {
	c.mu.Lock()
	c.releaseSourceLocked()
	c.resetLocked()
	c.mu.Unlock()

	return nil
}

// Begin starts a new attendance session for the given process type. It is a
// no-op (with a warning) unless the backend is online and no session is
// active.
func (c *Controller) Begin(ctx context.Context, process models.ProcessType) {
	if !process.Valid() {
		return
	}

	c.mu.Lock()

	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		c.logger.Warn().Str("state", string(state)).Msg("Ignoring start request: session already active")
		c.emitBanner(SeverityWarning, MsgSessionActive)

		return
	}

	if c.status.Status() != models.StatusOnline {
		c.mu.Unlock()
		c.emitBanner(SeverityWarning, MsgOffline)

		return
	}

	sctx, cancel := context.WithCancel(ctx)
	sid := uuid.New()

	c.sessionID = sid
	c.process = process
	c.cancelFn = cancel
	c.state = StateCameraStarting
	c.mu.Unlock()

	c.emitState(StateCameraStarting)
	c.logger.Info().Str("session_id", sid.String()).Str("type", string(process)).Msg("Attendance session started")

	go c.runSession(sctx, sid, process)
}

func (c *Controller) runSession(ctx context.Context, sid uuid.UUID, process models.ProcessType) {
	source := c.newSource()

	if err := source.Start(ctx); err != nil {
		source.Stop()
		c.logger.Error().Err(err).Msg("Camera acquisition failed")
		c.failSession(sid, cameraErrorMessage(err))

		return
	}

	if !c.adoptSource(sid, source) {
		// Session was cancelled while the camera was starting.
		source.Stop()
		return
	}

	// The countdown is gated on the first frame, not on acquisition.
	readyCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.CameraReadyWait))
	err := source.WaitReady(readyCtx)

	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return
		}

		c.logger.Error().Err(err).Msg("Camera produced no frames")
		c.failSession(sid, MsgCameraNoSignal)

		return
	}

	c.runCountdown(ctx, sid, source, process)
}

// adoptSource records the session's live camera so Cancel and Stop can
// release it. Returns false when the session is no longer current.
func (c *Controller) adoptSource(sid uuid.UUID, source camera.FrameSource) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID != sid {
		return false
	}

	c.source = source

	return true
}

func (c *Controller) runCountdown(ctx context.Context, sid uuid.UUID, source camera.FrameSource, process models.ProcessType) {
	c.mu.Lock()

	if c.sessionID != sid {
		c.mu.Unlock()
		return
	}

	c.state = StateCounting
	c.countdown = c.config.CountdownSeconds
	remaining := c.countdown
	c.mu.Unlock()

	c.emitState(StateCounting)
	c.emit(Event{Kind: EventCountdown, Countdown: remaining})
	c.player.Play(ctx, audio.CueCountdown)

	ticker := c.clock.Ticker(countdownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.mu.Lock()

			if c.sessionID != sid || c.state != StateCounting {
				c.mu.Unlock()
				return
			}

			c.countdown--
			remaining = c.countdown
			c.mu.Unlock()

			c.emit(Event{Kind: EventCountdown, Countdown: remaining})

			if remaining <= 0 {
				c.capture(ctx, sid, source, process)
				return
			}

			c.player.Play(ctx, audio.CueCountdown)
		}
	}
}

func (c *Controller) capture(ctx context.Context, sid uuid.UUID, source camera.FrameSource, process models.ProcessType) {
	c.mu.Lock()

	if c.sessionID != sid || c.processing {
		c.mu.Unlock()
		return
	}

	c.processing = true
	c.countdown = 0
	c.state = StateCapturing
	c.mu.Unlock()

	c.emitState(StateCapturing)

	frame, err := source.Capture(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Frame capture failed")
		c.failSession(sid, cameraErrorMessage(err))

		return
	}

	req := &models.VerifyRequest{
		Photo:   camera.DataURL(frame),
		Type:    process,
		Address: c.config.Address,
	}

	vctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.VerifyTimeout))
	result, verr := c.verifier.VerifyFace(vctx, req)

	cancel()

	c.resolve(ctx, sid, process, result, verr, false)
}

// resolve classifies a verification or manual attendance outcome and drives
// the resulting transition. Results for superseded sessions are discarded.
func (c *Controller) resolve(ctx context.Context, sid uuid.UUID, process models.ProcessType,
	result *models.RecognitionResult, err error, manual bool) {
	c.mu.Lock()

	if c.sessionID != sid {
		c.mu.Unlock()
		c.logger.Debug().Str("session_id", sid.String()).Msg("Discarding result for superseded session")

		return
	}

	c.processing = false

	switch {
	case err != nil:
		// Transport failure resets fully, unlike a recognition rejection.
		c.releaseSourceLocked()
		c.resetLocked()
		c.mu.Unlock()

		c.logger.Error().Err(err).Msg("Attendance call failed")
		c.player.Play(context.Background(), audio.CueError)
		c.emitBanner(SeverityError, backendErrorMessage(err))
		c.emitState(StateIdle)

	case result.Matched:
		c.releaseSourceLocked()

		if c.config.ConfirmGate {
			c.pending = result
			c.state = StateConfirming
			c.mu.Unlock()

			c.emitState(StateConfirming)
			c.emit(Event{Kind: EventMatched, Result: result, Process: process})

			return
		}

		c.resetLocked()
		c.mu.Unlock()

		c.finalize(process, result)

	default:
		message := result.Message
		if message == "" {
			message = MsgConnectivity
		}

		switch {
		case c.config.ManualFallback && !manual:
			c.releaseSourceLocked()
			c.state = StateManualFallback
			c.mu.Unlock()

			c.player.Play(context.Background(), audio.CueError)
			c.emitBanner(SeverityError, message)
			c.emitState(StateManualFallback)

		case c.config.RetryWithCamera && !manual:
			c.mu.Unlock()

			c.player.Play(context.Background(), audio.CueError)
			c.emitBanner(SeverityError, message)

			go c.rearm(ctx, sid, process)

		default:
			c.releaseSourceLocked()
			c.resetLocked()
			c.mu.Unlock()

			c.player.Play(context.Background(), audio.CueError)
			c.emitBanner(SeverityError, message)
			c.emitState(StateIdle)
		}
	}
}

// rearm waits out the retry delay, then restarts the countdown on the still
// live camera.
func (c *Controller) rearm(ctx context.Context, sid uuid.UUID, process models.ProcessType) {
	ticker := c.clock.Ticker(time.Duration(c.config.RetryDelay))
	defer ticker.Stop()

	select {
	case <-ctx.Done():
		return
	case <-ticker.Chan():
	}

	c.mu.Lock()

	if c.sessionID != sid {
		c.mu.Unlock()
		return
	}

	source := c.source
	c.mu.Unlock()

	c.player.Play(ctx, audio.CueRetry)
	c.runCountdown(ctx, sid, source, process)
}

// finalize fires the success cue and result events and leaves the machine
// idle. Callers must have reset the session state already.
func (c *Controller) finalize(process models.ProcessType, result *models.RecognitionResult) {
	cue := audio.CueSuccessEntrada
	if process == models.ProcessSalida {
		cue = audio.CueSuccessSalida
	}

	c.player.Play(context.Background(), cue)
	c.emit(Event{Kind: EventResult, Result: result, Process: process})
	c.emitBanner(SeveritySuccess, successMessage(process == models.ProcessSalida))
	c.emitState(StateIdle)

	c.logger.Info().Str("type", string(process)).Bool("duplicate", result.Duplicate).Msg("Attendance registered")
}

// Confirm resolves the confirmation gate, finalizing the pending match.
func (c *Controller) Confirm() {
	c.mu.Lock()

	if c.state != StateConfirming || c.pending == nil {
		c.mu.Unlock()
		return
	}

	result := c.pending
	process := c.process

	c.resetLocked()
	c.mu.Unlock()

	c.finalize(process, result)
}

// Retry discards the pending match and re-arms the kiosk for a fresh
// entrada/salida choice.
func (c *Controller) Retry() {
	c.mu.Lock()

	if c.state != StateConfirming {
		c.mu.Unlock()
		return
	}

	c.resetLocked()
	c.mu.Unlock()

	c.emitState(StateIdle)
}

// Cancel aborts the active session: the countdown halts with no capture,
// the camera is released and the machine returns to idle. Valid in any
// non-idle state.
func (c *Controller) Cancel() {
	c.mu.Lock()

	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}

	c.releaseSourceLocked()
	c.resetLocked()
	c.mu.Unlock()

	c.emitState(StateIdle)
	c.emitBanner(SeverityWarning, MsgCancelled)
}

// SubmitManual posts a manual attendance attempt from the fallback form. The
// identifier is filtered and RUT-validated locally; the password travels
// opaque, validation is the backend's alone.
func (c *Controller) SubmitManual(ctx context.Context, employeeID, password string) {
	c.mu.Lock()

	if c.state != StateManualFallback || c.processing {
		c.mu.Unlock()
		return
	}

	id := FilterEmployeeID(employeeID)
	if !models.ValidateRUT(id) {
		c.mu.Unlock()
		c.emitBanner(SeverityWarning, MsgInvalidRUT)

		return
	}

	sid := c.sessionID
	process := c.process
	c.processing = true
	c.mu.Unlock()

	go func() {
		req := &models.ManualRequest{
			EmployeeID: models.NormalizeRUT(id),
			Password:   password,
			Type:       process,
			Address:    c.config.Address,
		}

		mctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.VerifyTimeout))
		result, err := c.verifier.MarkAttendance(mctx, req)

		cancel()

		c.resolve(ctx, sid, process, result, err, true)
	}()
}

// failSession aborts the session with an error banner. No-op when the
// session is no longer current.
func (c *Controller) failSession(sid uuid.UUID, message string) {
	c.mu.Lock()

	if c.sessionID != sid {
		c.mu.Unlock()
		return
	}

	c.releaseSourceLocked()
	c.resetLocked()
	c.mu.Unlock()

	c.player.Play(context.Background(), audio.CueError)
	c.emitBanner(SeverityError, message)
	c.emitState(StateIdle)
}

func (c *Controller) releaseSourceLocked() {
	if c.source != nil {
		c.source.Stop()
		c.source = nil
	}
}

func (c *Controller) resetLocked() {
	if c.cancelFn != nil {
		c.cancelFn()
		c.cancelFn = nil
	}

	c.state = StateIdle
	c.sessionID = uuid.Nil
	c.process = ""
	c.countdown = 0
	c.processing = false
	c.pending = nil
}

func (c *Controller) emitState(state State) {
	c.emit(Event{Kind: EventState, State: state})
}

func (c *Controller) emitBanner(severity Severity, message string) {
	c.emit(Event{Kind: EventBanner, Severity: severity, Message: message})
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn().Str("kind", string(ev.Kind)).Msg("Dropping UI event, channel full")
	}
}

// FilterEmployeeID keeps only the characters a Chilean RUT may contain
// (digits, k/K, hyphen) and caps the length. The input layer applies it on
// every keystroke so malformed identifiers never reach submission.
func FilterEmployeeID(s string) string {
	var b strings.Builder

	for _, r := range s {
		if (r >= '0' && r <= '9') || r == 'k' || r == 'K' || r == '-' {
			b.WriteRune(r)

			if b.Len() >= MaxEmployeeIDLength {
				break
			}
		}
	}

	return b.String()
}
