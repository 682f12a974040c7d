// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"github.com/ironcore-dev/peripheral-registry/internal/compliance"
	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

const (
	DefaultCapacity = 64
	DefaultLevel    = 3
	DefaultPECount  = 1
)

// Config holds the settings of a compliance run.
type Config struct {
	// SkipTestNum is the global skip switch. Unset runs every test group.
	SkipTestNum *uint32 `yaml:"skipTestNum,omitempty"`
	Level       uint32  `yaml:"level"`
	PECount     uint32  `yaml:"peCount"`
	// Capacity is the number of rows allocated for the peripheral table.
	Capacity int `yaml:"capacity"`
	// Fixture is a YAML platform description used instead of probing the host.
	Fixture string `yaml:"fixture,omitempty"`
	// Image is a binary peripheral table image used instead of probing the host.
	Image string `yaml:"image,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Level:    DefaultLevel,
		PECount:  DefaultPECount,
		Capacity: DefaultCapacity,
	}
}

// Load reads a configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// SkipSwitch returns the skip switch value for the sequencer.
func (c *Config) SkipSwitch() uint32 {
	return ptr.Deref(c.SkipTestNum, compliance.SkipNone)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() field.ErrorList {
	var allErrs field.ErrorList
	if c.Capacity < 1 || c.Capacity > peripheral.MaxCapacity {
		allErrs = append(allErrs, field.Invalid(field.NewPath("capacity"), c.Capacity,
			fmt.Sprintf("must be between 1 and %d", peripheral.MaxCapacity)))
	}
	if c.PECount < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("peCount"), c.PECount, "must be at least 1"))
	}
	if c.Fixture != "" && c.Image != "" {
		allErrs = append(allErrs, field.Forbidden(field.NewPath("image"), "may not be set together with fixture"))
	}
	return allErrs
}
