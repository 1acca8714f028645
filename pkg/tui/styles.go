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

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title     lipgloss.Style
	online    lipgloss.Style
	offline   lipgloss.Style
	checking  lipgloss.Style
	action    lipgloss.Style
	disabled  lipgloss.Style
	countdown lipgloss.Style
	card      lipgloss.Style
	cardLabel lipgloss.Style
	cardValue lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errText   lipgloss.Style
	help      lipgloss.Style
	app       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		online: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true),
		offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		checking: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		action: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		countdown: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)).
			Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)).
			Padding(0, 2),
		cardLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		cardValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		app: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}
