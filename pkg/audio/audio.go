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

// Package audio plays the kiosk's feedback cues. Playback is best effort:
// a missing sound file or player binary never interrupts the attendance flow.
package audio

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/rh360/facekiosk/pkg/logger"
)

//go:generate mockgen -destination=mock_audio.go -package=audio github.com/rh360/facekiosk/pkg/audio Player

// Cue identifies one of the kiosk's feedback sounds.
type Cue string

const (
	// CueSuccessEntrada confirms a registered clock-in.
	CueSuccessEntrada Cue = "success_entrada"

	// CueSuccessSalida confirms a registered clock-out.
	CueSuccessSalida Cue = "success_salida"

	// CueError signals a failed verification or backend error.
	CueError Cue = "error"

	// CueRetry prompts the employee to try again.
	CueRetry Cue = "retry"

	// CueCountdown ticks once per countdown second.
	CueCountdown Cue = "countdown"
)

// Player plays feedback cues.
type Player interface {
	// Play starts the given cue. It returns without waiting for playback to
	// finish and never blocks the caller on audio hardware.
	Play(ctx context.Context, cue Cue)
}

// Config holds the audio player settings.
type Config struct {
	// Enabled toggles audio feedback.
	Enabled bool `json:"enabled"`

	// PlayerCommand is the external player binary. Defaults to "aplay".
	PlayerCommand string `json:"player_command,omitempty"`

	// SoundDir is the directory holding one <cue>.wav file per cue.
	SoundDir string `json:"sound_dir,omitempty"`
}

// Validate applies defaults.
func (c *Config) Validate() error {
	if c.PlayerCommand == "" {
		c.PlayerCommand = "aplay"
	}

	if c.SoundDir == "" {
		c.SoundDir = "/usr/share/facekiosk/sounds"
	}

	return nil
}

// ExecPlayer shells out to an external audio player for each cue.
type ExecPlayer struct {
	config Config
	logger logger.Logger
}

// NewExecPlayer creates a player from a validated configuration.
func NewExecPlayer(config Config, log logger.Logger) *ExecPlayer {
	return &ExecPlayer{config: config, logger: log}
}

// Play launches the player binary for the cue's sound file in the
// background. Failures are logged and swallowed.
func (p *ExecPlayer) Play(ctx context.Context, cue Cue) {
	path := filepath.Join(p.config.SoundDir, string(cue)+".wav")

	cmd := exec.CommandContext(ctx, p.config.PlayerCommand, path)

	if err := cmd.Start(); err != nil {
		p.logger.Warn().Err(err).Str("cue", string(cue)).Msg("Failed to play audio cue")
		return
	}

	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			p.logger.Debug().Err(err).Str("cue", string(cue)).Msg("Audio cue playback failed")
		}
	}()
}

// NopPlayer is a Player that does nothing. Used when audio is disabled.
type NopPlayer struct{}

// Play implements Player.
func (NopPlayer) Play(context.Context, Cue) {}

// NewPlayer returns an ExecPlayer when audio is enabled, a NopPlayer
// otherwise.
func NewPlayer(config Config, log logger.Logger) Player {
	if !config.Enabled {
		return NopPlayer{}
	}

	return NewExecPlayer(config, log)
}
