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

//go:generate mockgen -destination=mock_session.go -package=session github.com/rh360/facekiosk/pkg/session Verifier,StatusSource,Clock,Ticker

package session

import (
	"context"
	"time"

	"github.com/rh360/facekiosk/pkg/camera"
	"github.com/rh360/facekiosk/pkg/models"
)

// Verifier submits attendance attempts to the backend.
type Verifier interface {
	VerifyFace(ctx context.Context, req *models.VerifyRequest) (*models.RecognitionResult, error)
	MarkAttendance(ctx context.Context, req *models.ManualRequest) (*models.RecognitionResult, error)
}

// StatusSource reports the current backend availability.
type StatusSource interface {
	Status() models.SystemStatus
}

// SourceFactory creates a fresh camera source for one session. Sources are
// single-use: acquired on session start, released on every exit path.
type SourceFactory func() camera.FrameSource

// Clock provides the current time and time-based channels.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
