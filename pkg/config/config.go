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
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/textrepair/pkg/codec"
	"github.com/walteh/textrepair/pkg/text"
	"gitlab.com/tozd/go/errors"
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

// 🔄 Replacement is one literal substitution in a config file
type Replacement struct {
	Old string `json:"old" yaml:"old"` // Exact text to find
	New string `json:"new" yaml:"new"` // Text to put in its place
}

// 📚 Config represents the complete configuration
type Config struct {
	Root     string        `json:"root,omitempty" yaml:"root,omitempty"`
	Include  []string      `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude  []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Encoding string        `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Presets  []string      `json:"presets,omitempty" yaml:"presets,omitempty"`
	Rules    []Replacement `json:"rules,omitempty" yaml:"rules,omitempty"`

	location string
}

// 🎯 Load reads and parses a config file. The parser is chosen by extension
// and a relative root is resolved against the directory of the file. The
// result is not validated so that command line values can still be merged in.
func Load(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	return cfg, nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔀 Merge returns a new config with o layered over cfg: a set root,
// encoding or include list replaces the base value, while excludes, presets
// and rules are appended.
func (cfg *Config) Merge(o *Config) *Config {
	out := &Config{
		Root:     cfg.Root,
		Include:  append([]string(nil), cfg.Include...),
		Exclude:  append([]string(nil), cfg.Exclude...),
		Encoding: cfg.Encoding,
		Presets:  append([]string(nil), cfg.Presets...),
		Rules:    append([]Replacement(nil), cfg.Rules...),
		location: cfg.location,
	}
	if o == nil {
		return out
	}

	if o.Root != "" {
		out.Root = o.Root
	}
	if len(o.Include) > 0 {
		out.Include = append([]string(nil), o.Include...)
	}
	if o.Encoding != "" {
		out.Encoding = o.Encoding
	}
	out.Exclude = append(out.Exclude, o.Exclude...)
	out.Presets = append(out.Presets, o.Presets...)
	out.Rules = append(out.Rules, o.Rules...)

	return out
}

// 📋 RuleSet expands presets and literal rules into one ordered list
func (cfg *Config) RuleSet() (text.Rules, error) {
	var rules text.Rules
	for _, name := range cfg.Presets {
		p, err := text.LookupPreset(name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, p.Rules...)
	}
	for _, r := range cfg.Rules {
		rules = append(rules, text.Rule{Old: r.Old, New: r.New})
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Codec resolves the declared encoding
func (cfg *Config) Codec() (*codec.Codec, error) {
	return codec.Lookup(cfg.Encoding)
}

// 🔍 Validate checks that the config describes a runnable repair
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}

	rules, err := cfg.RuleSet()
	if err != nil {
		return errors.Errorf("resolving rules: %w", err)
	}
	if len(rules) == 0 {
		return errors.Errorf("no rules: set presets or rules")
	}

	if _, err := cfg.Codec(); err != nil {
		return errors.Errorf("resolving encoding: %w", err)
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	return nil
}
