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

// Package camera provides JPEG still capture from a live RTSP M-JPEG stream.
package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bluenviron/gortsplib/v5"
	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/bluenviron/gortsplib/v5/pkg/format"
	"github.com/pion/rtp"

	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/models"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultJPEGQuality    = 90
	defaultMaxWidth       = 1920
	defaultMaxHeight      = 1080
)

// Config holds the settings for an RTSP camera source.
type Config struct {
	// StreamURL is the rtsp:// address of the camera feed.
	StreamURL string `json:"stream_url"`

	// ConnectTimeout bounds session establishment. Defaults to 10s.
	ConnectTimeout models.Duration `json:"connect_timeout,omitempty"`

	// JPEGQuality is the re-encode quality for captured stills (1-100).
	// Defaults to 90.
	JPEGQuality int `json:"jpeg_quality,omitempty"`

	// MaxWidth and MaxHeight cap captured frame dimensions; larger frames
	// are scaled down preserving aspect ratio. Default 1920x1080.
	MaxWidth  int `json:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`
}

// Validate checks the configuration and applies defaults.
func (c *Config) Validate() error {
	if c.StreamURL == "" {
		return errStreamURLRequired
	}

	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = models.Duration(defaultConnectTimeout)
	}

	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = defaultJPEGQuality
	}

	if c.MaxWidth <= 0 {
		c.MaxWidth = defaultMaxWidth
	}

	if c.MaxHeight <= 0 {
		c.MaxHeight = defaultMaxHeight
	}

	return nil
}

// RTSPSource reads an M-JPEG RTSP stream and keeps the most recent frame
// available for capture.
type RTSPSource struct {
	config Config
	logger logger.Logger

	mu      sync.Mutex
	client  *gortsplib.Client
	frame   []byte
	started bool

	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
}

// NewRTSPSource creates a source for the given stream. The configuration
// must already be validated.
func NewRTSPSource(config Config, log logger.Logger) *RTSPSource {
	return &RTSPSource{
		config: config,
		logger: log,
		ready:  make(chan struct{}),
	}
}

// Start connects to the stream, selects the M-JPEG track and begins
// receiving frames. Starting an already-running source returns ErrBusy; a
// failed attempt leaves the source ready for another try.
func (s *RTSPSource) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrBusy
	}

	s.started = true
	s.mu.Unlock()

	u, err := base.ParseURL(s.config.StreamURL)
	if err != nil {
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	timeout := time.Duration(s.config.ConnectTimeout)

	client := &gortsplib.Client{
		Scheme:       u.Scheme,
		Host:         u.Host,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	if err := client.Start(); err != nil {
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	desc, _, err := client.Describe(u)
	if err != nil {
		client.Close()
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	var mjpeg *format.MJPEG

	media := desc.FindFormat(&mjpeg)
	if media == nil {
		client.Close()
		return s.abortStart(ErrNoVideoTrack)
	}

	decoder, err := mjpeg.CreateDecoder()
	if err != nil {
		client.Close()
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	if _, err := client.Setup(desc.BaseURL, media, 0, 0); err != nil {
		client.Close()
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	client.OnPacketRTP(media, mjpeg, func(pkt *rtp.Packet) {
		image, err := decoder.Decode(pkt)
		if err != nil {
			// Incomplete frames are normal at stream start.
			return
		}

		s.storeFrame(image)
	})

	if _, err := client.Play(nil); err != nil {
		client.Close()
		return s.abortStart(fmt.Errorf("%w: %w", ErrCameraUnavailable, err))
	}

	s.mu.Lock()
	s.client = client
	s.mu.Unlock()

	s.logger.Info().Str("stream_url", s.config.StreamURL).Msg("Camera stream started")

	return nil
}

// abortStart clears the started flag so a failed connection attempt does not
// leave the source stuck reporting ErrBusy.
func (s *RTSPSource) abortStart(err error) error {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	return err
}

func (s *RTSPSource) storeFrame(image []byte) {
	s.mu.Lock()
	s.frame = image
	s.mu.Unlock()

	s.readyOnce.Do(func() {
		close(s.ready)
	})
}

// WaitReady blocks until the first frame arrives or the context expires.
func (s *RTSPSource) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNoFrame, ctx.Err())
	}
}

// Capture returns the newest frame re-encoded at the configured quality and
// capped to the configured dimensions.
func (s *RTSPSource) Capture(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	frame := s.frame
	s.mu.Unlock()

	if frame == nil {
		return nil, ErrNoFrame
	}

	out, err := normalizeJPEG(frame, s.config.MaxWidth, s.config.MaxHeight, s.config.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("encoding captured frame: %w", err)
	}

	return out, nil
}

// Stop tears down the stream session. Safe to call more than once.
func (s *RTSPSource) Stop() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		client := s.client
		s.client = nil
		s.mu.Unlock()

		if client != nil {
			client.Close()
		}

		s.logger.Info().Msg("Camera stream stopped")
	})
}
