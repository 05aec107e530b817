// Copyright (c) 2026 The RAMbrandt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rambrandt

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Config describes an FFBS experiment: model size, transition-matrix
// generator, tempering, and sampling settings.
type Config struct {
	NumStates  int              `toml:"num_states"`
	SeqLength  int              `toml:"sequence_length"`
	Seed       int64            `toml:"seed"`
	Transition TransitionConfig `toml:"transition"`
	Tempering  TemperingConfig  `toml:"tempering"`
}

// TransitionConfig selects and parameterizes a transition-matrix generator.
type TransitionConfig struct {
	Kind  string  `toml:"kind"` // one of "fixed-bias", "gaussian-1d", "gaussian-2d"
	Bias  float64 `toml:"bias"`
	Sigma float64 `toml:"sigma"`
}

// TemperingConfig holds the exponents applied to the prior (alpha) and the
// transition matrix (beta) at the first forward step.
type TemperingConfig struct {
	Alpha float64 `toml:"alpha"`
	Beta  float64 `toml:"beta"`
}

// DefaultConfig returns a config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		Seed: DefaultSeed,
		Transition: TransitionConfig{
			Kind:  "fixed-bias",
			Bias:  0.8,
			Sigma: 1.0,
		},
		Tempering: TemperingConfig{Alpha: 1, Beta: 1},
	}
}

// ReadConfig decodes a TOML experiment config and fills in defaults for
// missing fields.
func ReadConfig(r io.Reader) (*Config, error) {

	config := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
