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

// Package tui renders the kiosk screen: status pill, entrada/salida actions,
// countdown, employee card, confirmation view and manual fallback form.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rh360/facekiosk/pkg/models"
	"github.com/rh360/facekiosk/pkg/session"
)

// bannerTTL is how long a banner stays on screen.
const bannerTTL = 3 * time.Second

const (
	focusedRUT      = 0
	focusedPassword = 1
)

type (
	// sessionEventMsg wraps a controller event for bubbletea.
	sessionEventMsg session.Event

	// statusMsg carries a backend availability change.
	statusMsg models.SystemStatus

	// bannerExpiredMsg dismisses the banner it was armed for.
	bannerExpiredMsg struct{ seq int }
)

type banner struct {
	severity session.Severity
	text     string
}

// Model is the kiosk's bubbletea model. All attendance logic lives in the
// session controller; the model translates keys to controller calls and
// controller events to screen updates.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	events     <-chan session.Event
	statusCh   <-chan models.SystemStatus
	styles     styles

	status    models.SystemStatus
	state     session.State
	countdown int
	process   models.ProcessType
	result    *models.RecognitionResult
	banner    *banner
	bannerSeq int

	rutInput  textinput.Model
	passInput textinput.Model
	focused   int

	width int
}

// New creates the kiosk model wired to a controller and a status feed.
func New(ctx context.Context, controller *session.Controller, statusCh <-chan models.SystemStatus) *Model {
	st := newStyles()

	ri := textinput.New()
	ri.Placeholder = "RUT (ej: 12345678-5)"
	ri.CharLimit = session.MaxEmployeeIDLength
	ri.Width = 24
	ri.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	ri.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	pi := textinput.New()
	pi.Placeholder = "Contraseña"
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.Width = 24
	pi.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	pi.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	return &Model{
		ctx:        ctx,
		controller: controller,
		events:     controller.Events(),
		statusCh:   statusCh,
		styles:     st,
		status:     models.StatusChecking,
		state:      session.StateIdle,
		rutInput:   ri,
		passInput:  pi,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenEvents(), m.listenStatus())
}

func (m *Model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}

		return sessionEventMsg(ev)
	}
}

func (m *Model) listenStatus() tea.Cmd {
	return func() tea.Msg {
		status, ok := <-m.statusCh
		if !ok {
			return nil
		}

		return statusMsg(status)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case statusMsg:
		m.status = models.SystemStatus(msg)
		return m, m.listenStatus()

	case sessionEventMsg:
		return m.handleEvent(session.Event(msg))

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = nil

			if m.state == session.StateIdle {
				m.result = nil
			}
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(ev session.Event) (tea.Model, tea.Cmd) {
	cmd := m.listenEvents()

	switch ev.Kind {
	case session.EventState:
		m.state = ev.State

		if ev.State == session.StateManualFallback {
			m.rutInput.SetValue("")
			m.passInput.SetValue("")
			m.focused = focusedRUT
			m.rutInput.Focus()
			m.passInput.Blur()

			return m, tea.Batch(cmd, textinput.Blink)
		}

	case session.EventCountdown:
		m.countdown = ev.Countdown

	case session.EventMatched, session.EventResult:
		m.result = ev.Result
		m.process = ev.Process

	case session.EventBanner:
		m.banner = &banner{severity: ev.Severity, text: ev.Message}
		m.bannerSeq++

		return m, tea.Batch(cmd, dismissBanner(m.bannerSeq))
	}

	return m, cmd
}

func dismissBanner(seq int) tea.Cmd {
	return tea.Tick(bannerTTL, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case session.StateIdle:
		return m.handleIdleKey(msg)
	case session.StateConfirming:
		return m.handleConfirmKey(msg)
	case session.StateManualFallback:
		return m.handleManualKey(msg)
	case session.StateCameraStarting, session.StateCounting, session.StateCapturing:
		if msg.Type == tea.KeyEsc {
			m.controller.Cancel()
		}
	}

	return m, nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e":
		m.result = nil
		m.controller.Begin(m.ctx, models.ProcessEntrada)
	case "s":
		m.result = nil
		m.controller.Begin(m.ctx, models.ProcessSalida)
	}

	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "c":
		m.controller.Confirm()
	case "r":
		m.result = nil
		m.controller.Retry()
	case "esc":
		m.result = nil
		m.controller.Cancel()
	}

	return m, nil
}

func (m *Model) handleManualKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.controller.Cancel()
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if m.focused == focusedRUT {
			m.focused = focusedPassword
			m.rutInput.Blur()
			m.passInput.Focus()
		} else {
			m.focused = focusedRUT
			m.passInput.Blur()
			m.rutInput.Focus()
		}

		return m, textinput.Blink

	case tea.KeyEnter:
		if m.focused == focusedRUT {
			m.focused = focusedPassword
			m.rutInput.Blur()
			m.passInput.Focus()

			return m, textinput.Blink
		}

		m.controller.SubmitManual(m.ctx, m.rutInput.Value(), m.passInput.Value())

		return m, nil
	}

	var cmd tea.Cmd

	if m.focused == focusedRUT {
		m.rutInput, cmd = m.rutInput.Update(msg)
		// The identifier field only ever holds RUT characters.
		m.rutInput.SetValue(session.FilterEmployeeID(m.rutInput.Value()))
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}

	return m, cmd
}
