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

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh360/facekiosk/pkg/audio"
	"github.com/rh360/facekiosk/pkg/camera"
	"github.com/rh360/facekiosk/pkg/logger"
	"github.com/rh360/facekiosk/pkg/models"
	"github.com/rh360/facekiosk/pkg/session"
)

type offlineStatus struct{}

func (offlineStatus) Status() models.SystemStatus { return models.StatusOffline }

type nopVerifier struct{}

func (nopVerifier) VerifyFace(context.Context, *models.VerifyRequest) (*models.RecognitionResult, error) {
	return &models.RecognitionResult{}, nil
}

func (nopVerifier) MarkAttendance(context.Context, *models.ManualRequest) (*models.RecognitionResult, error) {
	return &models.RecognitionResult{}, nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()

	cfg := session.DefaultConfig()
	require.NoError(t, cfg.Validate())

	controller := session.NewController(
		cfg,
		nopVerifier{},
		offlineStatus{},
		func() camera.FrameSource { return nil },
		audio.NopPlayer{},
		logger.NewTestLogger(),
	)

	statusCh := make(chan models.SystemStatus, 1)

	return New(context.Background(), controller, statusCh)
}

func update(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)

	next, ok := updated.(*Model)
	require.True(t, ok)

	return next, cmd
}

func TestUpdate_StatusChange(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, statusMsg(models.StatusOnline))

	assert.Equal(t, models.StatusOnline, m.status)
	assert.NotNil(t, cmd, "must keep listening for status changes")
}

func TestUpdate_CountdownEvent(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, sessionEventMsg(session.Event{Kind: session.EventCountdown, Countdown: 3}))

	assert.Equal(t, 3, m.countdown)
}

func TestUpdate_BannerDismissal(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, sessionEventMsg(session.Event{
		Kind:     session.EventBanner,
		Severity: session.SeverityError,
		Message:  "Rostro no reconocido",
	}))

	require.NotNil(t, m.banner)
	assert.Equal(t, "Rostro no reconocido", m.banner.text)
	assert.NotNil(t, cmd, "banner must arm its dismiss timer")

	// A stale dismissal leaves a newer banner alone.
	m, _ = update(t, m, bannerExpiredMsg{seq: m.bannerSeq - 1})
	assert.NotNil(t, m.banner)

	m, _ = update(t, m, bannerExpiredMsg{seq: m.bannerSeq})
	assert.Nil(t, m.banner)
}

func TestUpdate_ManualFallbackResetsForm(t *testing.T) {
	m := newTestModel(t)
	m.rutInput.SetValue("999")

	m, _ = update(t, m, sessionEventMsg(session.Event{Kind: session.EventState, State: session.StateManualFallback}))

	assert.Equal(t, session.StateManualFallback, m.state)
	assert.Empty(t, m.rutInput.Value())
	assert.Equal(t, focusedRUT, m.focused)
}

func TestUpdate_ManualInputFiltered(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, sessionEventMsg(session.Event{Kind: session.EventState, State: session.StateManualFallback}))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.Empty(t, m.rutInput.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	assert.Equal(t, "5", m.rutInput.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, "5k", m.rutInput.Value())
}

func TestView_IdleOffline(t *testing.T) {
	m := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "Registro de Asistencia")
	assert.Contains(t, view, "Verificando conexión")
	assert.Contains(t, view, "ENTRADA")
	assert.Contains(t, view, "SALIDA")
}

func TestView_StatusPill(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, statusMsg(models.StatusOnline))
	assert.Contains(t, m.View(), "Sistema listo")

	m, _ = update(t, m, statusMsg(models.StatusOffline))
	assert.Contains(t, m.View(), "Sin conexión")
}

func TestView_EmployeeCard(t *testing.T) {
	m := newTestModel(t)
	m.state = session.StateConfirming
	m.result = &models.RecognitionResult{
		Matched:    true,
		Confidence: "97.2%",
		Employee: &models.Employee{
			Name:       "María González",
			EmployeeID: "EMP-042",
			RUT:        "123456785",
			Department: "Operaciones",
		},
	}

	view := m.View()

	assert.Contains(t, view, "María González")
	assert.Contains(t, view, "12345678-5")
	assert.Contains(t, view, "97.2%")
	assert.Contains(t, view, "CONFIRMAR")
	assert.Contains(t, view, "REINTENTAR")
}

func TestView_Countdown(t *testing.T) {
	m := newTestModel(t)
	m.state = session.StateCounting
	m.countdown = 4

	assert.Contains(t, m.View(), "Capturando en 4")
}
