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

package camera

import "errors"

var (
	// ErrCameraUnavailable indicates the device could not be opened or the
	// stream could not be established.
	ErrCameraUnavailable = errors.New("camera unavailable")

	// ErrNoVideoTrack indicates the stream carries no M-JPEG video track.
	ErrNoVideoTrack = errors.New("no M-JPEG video track in stream")

	// ErrBusy indicates Start was called on a source that is already running.
	ErrBusy = errors.New("camera source already started")

	// ErrNoFrame indicates no frame has been received yet.
	ErrNoFrame = errors.New("no frame received from camera")

	errStreamURLRequired = errors.New("camera stream URL is required")
)
