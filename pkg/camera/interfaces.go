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

//go:generate mockgen -destination=mock_camera.go -package=camera github.com/rh360/facekiosk/pkg/camera FrameSource

package camera

import "context"

// FrameSource is a live video device that can hand out still JPEG frames.
// Start and Stop bracket the device's lifetime; Stop is idempotent and must
// run on every exit path so no capture handle leaks.
type FrameSource interface {
	// Start acquires the device and begins receiving frames. It returns once
	// the session is established; the first frame may arrive later (see
	// WaitReady).
	Start(ctx context.Context) error

	// WaitReady blocks until at least one frame has been received or the
	// context expires.
	WaitReady(ctx context.Context) error

	// Capture returns the newest frame as an encoded JPEG, capped to the
	// configured dimensions.
	Capture(ctx context.Context) ([]byte, error)

	// Stop releases the device. Safe to call redundantly or before Start.
	Stop()
}
