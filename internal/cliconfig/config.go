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

// Package cliconfig persists ojo's own CLI preferences — as opposed to
// repository state, which lives under internal/store — to a YAML file in
// the user's home directory.
package cliconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	OjoDir     = ".ojo"
	ConfigFile = "config.yaml"
)

// ValidKeys lists every config key that can be read or written through
// "ojo config get/set".
var ValidKeys = []string{
	"default_author",
	"color",
	"editor",
}

type Config struct {
	DefaultAuthor string `yaml:"default_author"`
	Color         bool   `yaml:"color"`
	Editor        string `yaml:"editor"`
}

// GetField returns the value of a config key.
func (c *Config) GetField(key string) (string, bool) {
	switch key {
	case "default_author":
		return c.DefaultAuthor, true
	case "color":
		if c.Color {
			return "true", true
		}
		return "false", true
	case "editor":
		return c.Editor, true
	default:
		return "", false
	}
}

// SetField sets the value of a config key.
func (c *Config) SetField(key, value string) bool {
	switch key {
	case "default_author":
		c.DefaultAuthor = value
	case "color":
		c.Color = value == "true" || value == "1" || value == "yes"
	case "editor":
		c.Editor = value
	default:
		return false
	}
	return true
}

// KeyValue is a simple key-value pair, used to print every field at once.
type KeyValue struct {
	Key   string
	Value string
}

// Fields returns every config key-value pair.
func (c *Config) Fields() []KeyValue {
	return []KeyValue{
		{"default_author", c.DefaultAuthor},
		{"color", boolString(c.Color)},
		{"editor", c.Editor},
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func DefaultConfig() *Config {
	return &Config{
		DefaultAuthor: "",
		Color:         true,
		Editor:        os.Getenv("EDITOR"),
	}
}

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func OjoHome() string {
	return filepath.Join(HomeDir(), OjoDir)
}

// Load reads the CLI config, falling back silently to defaults when the
// file does not yet exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(OjoHome(), ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to ~/.ojo/config.yaml, creating the directory if
// needed.
func (c *Config) Save() error {
	dir := OjoHome()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644)
}

// Reset restores the default config and persists it.
func Reset() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}
