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
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rh360/facekiosk/pkg/models"
	"github.com/rh360/facekiosk/pkg/session"
)

// Run drives the kiosk screen until the operator quits or the context is
// cancelled.
func Run(ctx context.Context, controller *session.Controller, statusCh <-chan models.SystemStatus) error {
	program := tea.NewProgram(
		New(ctx, controller, statusCh),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running kiosk screen: %w", err)
	}

	return nil
}
