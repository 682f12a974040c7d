// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ironcore-dev/peripheral-registry/internal/compliance"
	"github.com/ironcore-dev/peripheral-registry/internal/metrics"
)

func NewRunCommand(opts *options) *cobra.Command {
	var (
		level       uint32
		peCount     uint32
		skipTestNum uint32
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the peripheral compliance checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("level") {
				cfg.Level = level
			}
			if flags.Changed("pe-count") {
				cfg.PECount = peCount
			}
			if flags.Changed("skip-test-num") {
				cfg.SkipTestNum = &skipTestNum
			}
			if err := validate(cfg); err != nil {
				return err
			}

			log := opts.logger(cmd)
			registry, err := openRegistry(log, cfg)
			if err != nil {
				return err
			}
			defer registry.Release()

			if err := cmd.Context().Err(); err != nil {
				return err
			}

			recorder := metrics.NewCheckRecorder()
			sequencer := compliance.NewSequencer(
				log.WithName("compliance"),
				cfg.SkipSwitch(),
				compliance.PeripheralChecks(log.WithName("check"), registry),
				compliance.WithRecorder(recorder),
			)
			status := sequencer.RunAll(cfg.Level, cfg.PECount)

			if metricsFile != "" {
				reg, err := metrics.NewRegistry(recorder, metrics.NewPeripheralCollector(registry))
				if err != nil {
					return err
				}
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("failed to write metrics to %s: %w", metricsFile, err)
				}
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Peripheral tests: %s\n", status); err != nil {
				return err
			}
			if status.Failed() {
				return fmt.Errorf("one or more peripheral tests have failed")
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&level, "level", 0, "Level of compliance being tested for.")
	cmd.Flags().Uint32Var(&peCount, "pe-count", 0, "Number of PEs to run the checks on.")
	cmd.Flags().Uint32Var(&skipTestNum, "skip-test-num", 0,
		fmt.Sprintf("Skip switch. %d skips all peripheral tests.", compliance.PeripheralTestNumBase))
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write check results in the Prometheus text format to this file.")
	return cmd
}
