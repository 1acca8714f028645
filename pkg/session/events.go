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

package session

import "github.com/rh360/facekiosk/pkg/models"

// State identifies the controller's position in the attendance workflow.
type State string

const (
	// StateIdle means no session is active; entrada/salida may start one.
	StateIdle State = "idle"

	// StateCameraStarting means the camera is being acquired.
	StateCameraStarting State = "camera_starting"

	// StateCounting means the countdown toward auto-capture is running.
	StateCounting State = "counting"

	// StateCapturing means a frame was taken and verification is in flight.
	StateCapturing State = "capturing"

	// StateConfirming means a match awaits the operator's explicit
	// confirmation.
	StateConfirming State = "confirming"

	// StateManualFallback means face verification failed and the manual
	// entry form is offered.
	StateManualFallback State = "manual_fallback"
)

// EventKind discriminates controller events.
type EventKind string

const (
	// EventState announces a state transition.
	EventState EventKind = "state"

	// EventCountdown carries the remaining seconds before auto-capture.
	EventCountdown EventKind = "countdown"

	// EventMatched carries a match pending operator confirmation.
	EventMatched EventKind = "matched"

	// EventResult carries a finalized, registered attendance result.
	EventResult EventKind = "result"

	// EventBanner carries an operator-facing message.
	EventBanner EventKind = "banner"
)

// Severity selects the banner styling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is a notification from the controller to the presentation layer.
// Only the fields relevant to the Kind are set.
type Event struct {
	Kind      EventKind
	State     State
	Countdown int
	Severity  Severity
	Message   string
	Process   models.ProcessType
	Result    *models.RecognitionResult
}
