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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rh360/facekiosk/pkg/models"
	"github.com/rh360/facekiosk/pkg/session"
)

// es-CL date layout.
const timestampLayout = "02-01-2006 15:04:05"

// View implements tea.Model.
func (m *Model) View() string {
	var content strings.Builder

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Render("⏱ "),
		m.styles.title.Render("Registro de Asistencia"),
	)
	content.WriteString(title + "\n")
	content.WriteString(m.renderStatus() + "\n\n")

	switch m.state {
	case session.StateIdle:
		content.WriteString(m.renderIdle())
	case session.StateCameraStarting:
		content.WriteString(m.styles.checking.Render("Iniciando cámara..."))
	case session.StateCounting:
		content.WriteString(m.renderCountdown())
	case session.StateCapturing:
		content.WriteString(m.styles.checking.Render("Verificando rostro..."))
	case session.StateConfirming:
		content.WriteString(m.renderConfirm())
	case session.StateManualFallback:
		content.WriteString(m.renderManual())
	}

	if m.banner != nil {
		content.WriteString("\n\n")
		content.WriteString(m.renderBanner())
	}

	return m.styles.app.Render(content.String())
}

func (m *Model) renderStatus() string {
	switch m.status {
	case models.StatusOnline:
		return m.styles.online.Render("● Sistema listo")
	case models.StatusOffline:
		return m.styles.offline.Render("● Sin conexión")
	default:
		return m.styles.checking.Render("● Verificando conexión...")
	}
}

func (m *Model) renderIdle() string {
	var content strings.Builder

	if m.result != nil {
		content.WriteString(m.renderEmployeeCard())
		content.WriteString("\n\n")
	}

	actions := m.styles.disabled
	if m.status == models.StatusOnline {
		actions = m.styles.action
	}

	content.WriteString(actions.Render("[E] ENTRADA    [S] SALIDA"))
	content.WriteString("\n\n")
	content.WriteString(m.styles.help.Render("q: salir"))

	return content.String()
}

func (m *Model) renderCountdown() string {
	var content strings.Builder

	content.WriteString(m.styles.countdown.Render(fmt.Sprintf("Capturando en %d...", m.countdown)))
	content.WriteString("\n\n")
	content.WriteString(m.styles.help.Render("esc: cancelar"))

	return content.String()
}

func (m *Model) renderConfirm() string {
	var content strings.Builder

	content.WriteString(m.renderEmployeeCard())
	content.WriteString("\n\n")
	content.WriteString(m.styles.action.Render("[Enter] CONFIRMAR    [R] REINTENTAR"))
	content.WriteString("\n")
	content.WriteString(m.styles.help.Render("esc: cancelar"))

	return content.String()
}

func (m *Model) renderManual() string {
	var content strings.Builder

	content.WriteString(m.styles.warning.Render("Registro manual"))
	content.WriteString("\n\n")
	content.WriteString(m.rutInput.View())
	content.WriteString("\n")
	content.WriteString(m.passInput.View())
	content.WriteString("\n\n")
	content.WriteString(m.styles.help.Render("tab: cambiar campo · enter: enviar · esc: cancelar"))

	return content.String()
}

func (m *Model) renderEmployeeCard() string {
	if m.result == nil || m.result.Employee == nil {
		return ""
	}

	emp := m.result.Employee

	row := func(label, value string) string {
		return m.styles.cardLabel.Render(label+": ") + m.styles.cardValue.Render(value)
	}

	timestamp := m.result.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format(timestampLayout)
	}

	lines := []string{
		row("Nombre", emp.Name),
		row("ID", emp.EmployeeID),
		row("RUT", models.FormatRUT(emp.RUT)),
		row("Departamento", emp.Department),
		row("Confianza", m.result.Confidence),
		row("Fecha", timestamp),
	}

	if m.result.Duplicate {
		lines = append(lines, m.styles.warning.Render("Registro duplicado reciente"))
	}

	return m.styles.card.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderBanner() string {
	switch m.banner.severity {
	case session.SeveritySuccess:
		return m.styles.success.Render(m.banner.text)
	case session.SeverityWarning:
		return m.styles.warning.Render(m.banner.text)
	default:
		return m.styles.errText.Render(m.banner.text)
	}
}
