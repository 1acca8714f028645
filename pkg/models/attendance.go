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

// Package models holds the shared domain types of the attendance kiosk.
package models

// SystemStatus reflects the reachability of the recognition backend.
type SystemStatus string

const (
	StatusChecking SystemStatus = "checking"
	StatusOnline   SystemStatus = "online"
	StatusOffline  SystemStatus = "offline"
)

// ProcessType is the attendance event type: entrada (clock-in) or salida
// (clock-out). The backend contract uses the Spanish terms on the wire.
type ProcessType string

const (
	ProcessEntrada ProcessType = "entrada"
	ProcessSalida  ProcessType = "salida"
)

func (p ProcessType) Valid() bool {
	return p == ProcessEntrada || p == ProcessSalida
}

// Employee identity echoed back by the backend on a successful match.
type Employee struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	EmployeeID      string `json:"employee_id"`
	RUT             string `json:"rut"`
	Department      string `json:"department"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// RecognitionResult is the classified outcome of a verification or manual
// attendance call.
type RecognitionResult struct {
	Matched    bool
	Duplicate  bool
	Employee   *Employee
	Confidence string
	Message    string
	Method     string
	Timestamp  string
}
