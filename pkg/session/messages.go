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

import (
	"errors"

	"github.com/rh360/facekiosk/pkg/backend"
	"github.com/rh360/facekiosk/pkg/camera"
)

// Operator-facing messages. The kiosk speaks Spanish.
const (
	MsgOffline           = "Sin conexión con el servidor"
	MsgSessionActive     = "Ya hay un proceso en curso"
	MsgCancelled         = "Proceso cancelado"
	MsgConnectivity      = "Error de conexión con el servidor"
	MsgMalformedResponse = "Respuesta inválida del servidor"
	MsgInvalidRUT        = "RUT inválido"
	MsgEntradaRegistrada = "ENTRADA REGISTRADA"
	MsgSalidaRegistrada  = "SALIDA REGISTRADA"
	MsgCameraUnavailable = "No se pudo acceder a la cámara"
	MsgCameraBusy        = "La cámara está en uso por otra aplicación"
	MsgCameraNoVideo     = "La cámara no entrega video compatible"
	MsgCameraNoSignal    = "La cámara no responde"
)

// cameraErrorMessage maps device failures to distinct operator messages.
func cameraErrorMessage(err error) string {
	switch {
	case errors.Is(err, camera.ErrNoVideoTrack):
		return MsgCameraNoVideo
	case errors.Is(err, camera.ErrBusy):
		return MsgCameraBusy
	case errors.Is(err, camera.ErrNoFrame):
		return MsgCameraNoSignal
	default:
		return MsgCameraUnavailable
	}
}

// backendErrorMessage distinguishes malformed bodies from plain transport
// failures.
func backendErrorMessage(err error) string {
	if errors.Is(err, backend.ErrMalformedResponse) {
		return MsgMalformedResponse
	}

	return MsgConnectivity
}

// successMessage picks the finalized banner text for the process type.
func successMessage(salida bool) string {
	if salida {
		return MsgSalidaRegistrada
	}

	return MsgEntradaRegistrada
}
