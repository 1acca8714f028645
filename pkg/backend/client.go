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

// Package backend is the HTTP client for the remote face-recognition and
// attendance service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/models"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultHealthPath     = "/health/"
	defaultVerifyPath     = "/verify-face/"
	defaultManualPath     = "/api/mark-attendance/"

	// The development tunnel serves an interstitial page unless this header
	// is present. It is not an auth mechanism.
	tunnelBypassHeader = "ngrok-skip-browser-warning"

	defaultConfidence = "95%"
)

// Config configures the backend client.
type Config struct {
	BaseURL        string            `json:"base_url"`
	HealthPath     string            `json:"health_path"`
	VerifyPath     string            `json:"verify_path"`
	ManualPath     string            `json:"manual_path"`
	RequestTimeout models.Duration   `json:"request_timeout"`
	Headers        map[string]string `json:"headers"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errBaseURLRequired
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.HealthPath == "" {
		c.HealthPath = defaultHealthPath
	}

	if c.VerifyPath == "" {
		c.VerifyPath = defaultVerifyPath
	}

	if c.ManualPath == "" {
		c.ManualPath = defaultManualPath
	}

	if time.Duration(c.RequestTimeout) == 0 {
		c.RequestTimeout = models.Duration(defaultRequestTimeout)
	}

	if c.Headers == nil {
		c.Headers = map[string]string{tunnelBypassHeader: "true"}
	}

	return nil
}

// Client talks to the recognition backend. All calls carry a bounded
// deadline; a hung request can never outlive its session.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a backend client from a validated config.
func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config:     *config,
		httpClient: &http.Client{},
		logger:     log,
	}
}

// Health checks the backend health endpoint. A nil error means the system
// reported itself OK.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.RequestTimeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+c.config.HealthPath, http.NoBody)
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var health models.HealthResponse

	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if health.Status != "OK" {
		return fmt.Errorf("%w: status %q", ErrSystemNotReady, health.Status)
	}

	return nil
}

// VerifyFace posts a captured photo for recognition and classifies the
// backend's verdict.
func (c *Client) VerifyFace(ctx context.Context, req *models.VerifyRequest) (*models.RecognitionResult, error) {
	return c.postAttendance(ctx, c.config.VerifyPath, req)
}

// MarkAttendance records attendance by employee identifier, bypassing face
// capture.
func (c *Client) MarkAttendance(ctx context.Context, req *models.ManualRequest) (*models.RecognitionResult, error) {
	return c.postAttendance(ctx, c.config.ManualPath, req)
}

func (c *Client) postAttendance(ctx context.Context, path string, body interface{}) (*models.RecognitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.RequestTimeout))
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return c.classify(resp.StatusCode, raw)
}

// classify maps an HTTP status plus body to a RecognitionResult. A 2xx with
// success or duplicate_found is a match; everything else is a rejection
// carrying the backend's message, or an error when the body is unusable.
func (c *Client) classify(statusCode int, raw []byte) (*models.RecognitionResult, error) {
	var parsed models.AttendanceResponse

	parseErr := json.Unmarshal(raw, &parsed)
	ok := statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices

	if parseErr != nil {
		if ok {
			c.logger.Warn().Int("status", statusCode).Msg("Backend returned 2xx with unparseable body")
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, parseErr)
		}

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
	}

	if ok && parsed.Registered() {
		result := &models.RecognitionResult{
			Matched:    true,
			Duplicate:  parsed.DuplicateFound,
			Employee:   parsed.Employee,
			Confidence: defaultConfidence,
			Message:    parsed.Message,
			Timestamp:  parsed.Timestamp,
		}

		if parsed.Verification != nil {
			if parsed.Verification.Confidence != "" {
				result.Confidence = parsed.Verification.Confidence
			}

			result.Method = parsed.Verification.Method
		}

		return result, nil
	}

	message := parsed.Message
	if message == "" {
		message = fmt.Sprintf("Error %d: %s", statusCode, http.StatusText(statusCode))
	}

	return &models.RecognitionResult{
		Matched: false,
		Message: message,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
