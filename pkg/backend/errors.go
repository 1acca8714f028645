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

package backend

import "errors"

var (
	// ErrUnexpectedStatus marks a non-2xx response with no usable body.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrMalformedResponse marks a 2xx response whose body is not valid JSON.
	ErrMalformedResponse = errors.New("response is not valid JSON")
	// ErrSystemNotReady marks a reachable backend that reports itself not OK.
	ErrSystemNotReady = errors.New("system is not ready")

	errBaseURLRequired = errors.New("backend base_url is required")
)
