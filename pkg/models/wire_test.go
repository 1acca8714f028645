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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyRequest_GeolocationAlwaysNull(t *testing.T) {
	body, err := json.Marshal(&VerifyRequest{
		Photo:   "data:image/jpeg;base64,xxxx",
		Type:    ProcessEntrada,
		Address: "Registro Web Facial",
	})
	require.NoError(t, err)

	var raw map[string]json.RawMessage

	require.NoError(t, json.Unmarshal(body, &raw))
	assert.JSONEq(t, "null", string(raw["latitude"]))
	assert.JSONEq(t, "null", string(raw["longitude"]))
	assert.JSONEq(t, `"entrada"`, string(raw["type"]))
}

func TestAttendanceResponse_Registered(t *testing.T) {
	assert.True(t, (&AttendanceResponse{Success: true}).Registered())
	assert.True(t, (&AttendanceResponse{DuplicateFound: true}).Registered())
	assert.False(t, (&AttendanceResponse{Message: "Rostro no reconocido"}).Registered())
}

func TestProcessType_Valid(t *testing.T) {
	assert.True(t, ProcessEntrada.Valid())
	assert.True(t, ProcessSalida.Valid())
	assert.False(t, ProcessType("almuerzo").Valid())
}
