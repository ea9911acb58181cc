// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Defaults used when no configuration file is present
const (
	DefaultFile   = "data/level12.json"
	DefaultSearch = "queue_free"
	DefaultInsert = ",\n\t\t\t\t\t\t\"start_disabled\": false"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🩹 Patch appends Insert to every line of File that contains Search
type Patch struct {
	File   string `json:"file" yaml:"file" toml:"file"`       // Path or doublestar glob
	Search string `json:"search" yaml:"search" toml:"search"` // Substring selecting lines, may be empty
	Insert string `json:"insert" yaml:"insert" toml:"insert"` // Text appended to matching lines, may be empty
}

// 📚 Config represents the complete configuration
type Config struct {
	Patches []Patch `json:"patches" yaml:"patches" toml:"patches"`
	Backup  bool    `json:"backup,omitempty" yaml:"backup,omitempty" toml:"backup"`
	DryRun  bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run"`
	Async   bool    `json:"async,omitempty" yaml:"async,omitempty" toml:"async"`

	location string
}

// Default returns the built-in configuration: a single patch that adds a
// "start_disabled" key after every queue_free method in data/level12.json.
func Default() *Config {
	return &Config{
		Patches: []Patch{
			{
				File:   DefaultFile,
				Search: DefaultSearch,
				Insert: DefaultInsert,
			},
		},
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(strings.ToLower(filepath.Base(path)))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("patches", len(cfg.Patches)).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Patches) == 0 {
		return errors.Errorf("at least one patch is required")
	}

	for i := range cfg.Patches {
		if cfg.Patches[i].File == "" {
			return errors.Errorf("patches[%d]: file is required", i)
		}
		cfg.Patches[i].File = filepath.Clean(cfg.Patches[i].File)
	}

	return nil
}

// Location returns the path the config was loaded from, or "" for built-in configs
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	parts := make([]string, 0, len(cfg.Patches))
	for _, p := range cfg.Patches {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}

func (p Patch) String() string {
	return fmt.Sprintf("%s: %q += %q", p.File, p.Search, p.Insert)
}
