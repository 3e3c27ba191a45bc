// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cliconfig_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/cliconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := cliconfig.Load()
	require.NoError(t, err)
	require.True(t, cfg.Color)
	require.Empty(t, cfg.DefaultAuthor)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := cliconfig.Load()
	require.NoError(t, err)

	require.True(t, cfg.SetField("default_author", "ada@example.com"))
	require.True(t, cfg.SetField("color", "false"))
	require.NoError(t, cfg.Save())

	reloaded, err := cliconfig.Load()
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", reloaded.DefaultAuthor)
	require.False(t, reloaded.Color)
}

func TestSetFieldRejectsUnknownKey(t *testing.T) {
	cfg := cliconfig.DefaultConfig()
	require.False(t, cfg.SetField("nonexistent", "x"))
}

func TestGetFieldRejectsUnknownKey(t *testing.T) {
	cfg := cliconfig.DefaultConfig()
	_, ok := cfg.GetField("nonexistent")
	require.False(t, ok)
}
