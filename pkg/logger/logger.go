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

// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Impl implements the Logger interface without global state.
type Impl struct {
	logger zerolog.Logger
}

// New creates a logger instance from the provided configuration.
// If config is nil, the default configuration is used.
func New(ctx context.Context, config *Config) (*Impl, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
	}

	timeFormat := time.RFC3339
	if config.TimeFormat != "" {
		timeFormat = config.TimeFormat
	}

	zerolog.TimeFieldFormat = timeFormat

	if config.OTel.Enabled && config.OTel.Endpoint != "" {
		otelWriter, err := NewOTELWriter(ctx, config.OTel)
		if err != nil {
			return nil, err
		}

		output = io.MultiWriter(output, otelWriter)
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Impl{logger: zlog}, nil
}

// NewWithWriter creates a logger that writes to the given writer. Used by the
// kiosk TUI, which owns the terminal and must keep raw log lines off it.
func NewWithWriter(w io.Writer, config *Config) *Impl {
	if config == nil {
		config = DefaultConfig()
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Impl{logger: zlog}
}

// FromZerolog wraps an existing zerolog.Logger in the Logger interface.
func FromZerolog(zlog zerolog.Logger) *Impl {
	return &Impl{logger: zlog}
}

func (l *Impl) Trace() *zerolog.Event {
	return l.logger.Trace()
}

func (l *Impl) Debug() *zerolog.Event {
	return l.logger.Debug()
}

func (l *Impl) Info() *zerolog.Event {
	return l.logger.Info()
}

func (l *Impl) Warn() *zerolog.Event {
	return l.logger.Warn()
}

func (l *Impl) Error() *zerolog.Event {
	return l.logger.Error()
}

func (l *Impl) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

func (l *Impl) Panic() *zerolog.Event {
	return l.logger.Panic()
}

func (l *Impl) With() zerolog.Context {
	return l.logger.With()
}

func (l *Impl) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *Impl) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *Impl) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}
