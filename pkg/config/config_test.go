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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingName = errors.New("name is required")

type testConfig struct {
	Name     string `json:"name"`
	Interval int    `json:"interval"`
}

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errMissingName
	}

	if c.Interval == 0 {
		c.Interval = 30
	}

	return nil
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kiosk.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempConfig(t, `{"name": "kiosk-01"}`)

	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "kiosk-01", cfg.Name)
	assert.Equal(t, 30, cfg.Interval, "Validate should apply defaults")
}

func TestLoadAndValidate_ValidationFailure(t *testing.T) {
	path := writeTempConfig(t, `{"interval": 10}`)

	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errMissingName)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "/nonexistent/kiosk.json", &cfg)
	require.Error(t, err)
}

func TestLoadAndValidate_MalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": `)

	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
}
