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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
)

func TestNew_DefaultConfig(t *testing.T) {
	log, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(context.Background(), &Config{Level: "chatty"})
	require.Error(t, err)
}

func TestNewWithWriter_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(&buf, &Config{Debug: true})
	log.Info().Str("state", "online").Msg("system ready")

	var entry map[string]interface{}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "system ready", entry["message"])
	assert.Equal(t, "online", entry["state"])
	assert.Equal(t, "info", entry["level"])
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(&buf, nil)
	component := log.WithComponent("health")
	component.Warn().Msg("backend unreachable")

	var entry map[string]interface{}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "health", entry["component"])
}

func TestTestLogger_Discards(t *testing.T) {
	log := NewTestLogger()
	log.Error().Msg("should go nowhere")
	log.SetDebug(true)
	log.Info().Msg("still nowhere")
}

func TestSeverityFromLevel(t *testing.T) {
	assert.Equal(t, otellog.SeverityError, severityFromLevel("error"))
	assert.Equal(t, otellog.SeverityWarn, severityFromLevel("warning"))
	assert.Equal(t, otellog.SeverityInfo, severityFromLevel("unknown"))
	assert.NotEqual(t, severityFromLevel("error"), severityFromLevel("info"))
}
