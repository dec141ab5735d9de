/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the ingest pipeline:
// where to find DTCG documents and Figma variable collections, and how
// to authenticate against the Figma REST API.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tokenpipe.dev/tokenpipe/internal/ingesterr"
)

// SourceType names the kind of ingest source a SourceSpec describes.
type SourceType string

const (
	SourceTypeDTCG  SourceType = "dtcg"
	SourceTypeFigma SourceType = "figma"
)

// SourceSpec describes one ingest source. A DTCG source reads either a
// local Path or a remote URL (exactly one of the two). A Figma source
// reads a variables collection by FileKey, authenticating with APIKey.
type SourceSpec struct {
	Type SourceType `yaml:"type" json:"type"`

	// DTCG fields.
	Path string `yaml:"path" json:"path"`
	URL  string `yaml:"url" json:"url"`

	// Figma fields.
	FileKey string `yaml:"fileKey" json:"fileKey"`
	APIKey  string `yaml:"apiKey" json:"apiKey"`
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`
}

// UnmarshalYAML accepts either a bare string (DTCG shorthand, treated as
// a local path) or a full object.
func (s *SourceSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Type = SourceTypeDTCG
		s.Path = node.Value
		return nil
	}

	type rawSourceSpec SourceSpec
	return node.Decode((*rawSourceSpec)(s))
}

// UnmarshalJSON mirrors UnmarshalYAML's string-or-object handling.
func (s *SourceSpec) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Type = SourceTypeDTCG
		s.Path = str
		return nil
	}

	type rawSourceSpec SourceSpec
	return json.Unmarshal(data, (*rawSourceSpec)(s))
}

// Validate checks the per-source invariants spec.md §7.1 requires:
// exactly one locator for a DTCG source, a file key for a Figma source.
func (s SourceSpec) Validate() error {
	switch s.Type {
	case SourceTypeDTCG:
		switch {
		case s.Path != "" && s.URL != "":
			return ingesterr.ErrBothLocatorsSet
		case s.Path == "" && s.URL == "":
			return ingesterr.ErrNoLocatorSet
		}
	case SourceTypeFigma:
		if s.FileKey == "" {
			return fmt.Errorf("figma source missing fileKey")
		}
	default:
		return fmt.Errorf("unknown source type %q", s.Type)
	}
	return nil
}

// Config is the top-level ingest configuration: the list of sources to
// merge into a single TokenSet.
type Config struct {
	Sources []SourceSpec `yaml:"sources" json:"sources"`
}

// Default returns an empty configuration.
func Default() *Config {
	return &Config{}
}

// Validate checks every source and overlays environment variables for
// any Figma API key left blank in the file, following the
// TOKENPIPE_FIGMA_APIKEY / TOKENPIPE_SOURCES_<N>_APIKEY precedence
// viper gives us via AutomaticEnv.
func (c *Config) Validate() error {
	for i := range c.Sources {
		c.applyEnvOverlay(i)
		if err := c.Sources[i].Validate(); err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
	}
	return nil
}

// applyEnvOverlay fills in a Figma source's APIKey from the environment
// when the config file left it blank, using viper's env binding so
// TOKENPIPE_FIGMA_APIKEY (the common case of a single Figma source) and
// the indexed TOKENPIPE_SOURCES_<N>_APIKEY form both work.
func (c *Config) applyEnvOverlay(i int) {
	src := &c.Sources[i]
	if src.Type != SourceTypeFigma || src.APIKey != "" {
		return
	}

	v := viper.New()
	v.SetEnvPrefix("TOKENPIPE")
	v.AutomaticEnv()

	if key := v.GetString("figma_apikey"); key != "" {
		src.APIKey = key
		return
	}
	if key := v.GetString(fmt.Sprintf("sources_%d_apikey", i)); key != "" {
		src.APIKey = key
	}
}
