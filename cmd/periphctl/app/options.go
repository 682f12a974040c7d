// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/ironcore-dev/peripheral-registry/internal/config"
	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
	"github.com/ironcore-dev/peripheral-registry/internal/probe"
)

type options struct {
	configFile string
	fixture    string
	image      string
	capacity   int
	zapOpts    zap.Options
}

func (o *options) logger(cmd *cobra.Command) logr.Logger {
	return zap.New(zap.UseFlagOptions(&o.zapOpts), zap.WriteTo(cmd.ErrOrStderr())).WithName(Name)
}

// config loads the configuration file, if any, and applies the flags set on
// the command line.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		var err error
		if cfg, err = config.Load(o.configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("fixture") {
		cfg.Fixture = o.fixture
	}
	if flags.Changed("image") {
		cfg.Image = o.image
	}
	if flags.Changed("capacity") {
		cfg.Capacity = o.capacity
	}
	return cfg, nil
}

func validate(cfg *config.Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errs.ToAggregate())
	}
	return nil
}

func newProducer(log logr.Logger, cfg *config.Config) (peripheral.Producer, error) {
	switch {
	case cfg.Image != "":
		return probe.NewImage(cfg.Image), nil
	case cfg.Fixture != "":
		fixture, err := probe.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		return fixture, nil
	default:
		return probe.NewPlatform(log.WithName("probe")), nil
	}
}

// openRegistry allocates the peripheral table and populates it. The caller
// must Release the returned registry.
func openRegistry(log logr.Logger, cfg *config.Config) (*peripheral.Registry, error) {
	producer, err := newProducer(log, cfg)
	if err != nil {
		return nil, err
	}
	registry := peripheral.NewRegistry(log.WithName("registry"), producer)
	if err := registry.Create(peripheral.NewTable(cfg.Capacity)); err != nil {
		registry.Release()
		return nil, err
	}
	return registry, nil
}
