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

package models

// VerifyRequest is the body posted to the verify-face endpoint. Latitude and
// longitude are reserved by the backend contract but never populated by the
// kiosk, so they always serialize as null.
type VerifyRequest struct {
	Photo     string      `json:"photo"`
	Type      ProcessType `json:"type"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
	Address   string      `json:"address"`
}

// ManualRequest is the body posted to the mark-attendance endpoint when face
// verification fell back to manual entry. The password travels opaque; the
// backend alone decides whether to honor it.
type ManualRequest struct {
	EmployeeID string      `json:"employee_id"`
	Password   string      `json:"password,omitempty"`
	Type       ProcessType `json:"type"`
	Latitude   *float64    `json:"latitude"`
	Longitude  *float64    `json:"longitude"`
	Address    string      `json:"address"`
	Notes      string      `json:"notes,omitempty"`
}

// HealthResponse is the health endpoint body. Only Status is interpreted.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VerificationDetails carries backend-side metadata about a match.
type VerificationDetails struct {
	Confidence string `json:"confidence"`
	Method     string `json:"method,omitempty"`
}

// AttendanceResponse is the shared response shape of verify-face and
// mark-attendance. Success and DuplicateFound are independent flags; either
// one set means the attendance was registered.
type AttendanceResponse struct {
	Success        bool                 `json:"success"`
	DuplicateFound bool                 `json:"duplicate_found"`
	Message        string               `json:"message,omitempty"`
	Employee       *Employee            `json:"employee,omitempty"`
	Verification   *VerificationDetails `json:"verification,omitempty"`
	Timestamp      string               `json:"timestamp,omitempty"`
}

// Registered reports whether the backend recorded the attendance.
func (r *AttendanceResponse) Registered() bool {
	return r.Success || r.DuplicateFound
}
