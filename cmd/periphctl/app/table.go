// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/ironcore-dev/peripheral-registry/internal/api/inventory"
)

func NewTableCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the peripheral table of the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}
			registry, err := openRegistry(opts.logger(cmd), cfg)
			if err != nil {
				return err
			}
			defer registry.Release()

			var data []byte
			switch output {
			case "yaml":
				data, err = yaml.Marshal(inventory.FromTable(registry.Table()))
			case "json":
				data, err = json.MarshalIndent(inventory.FromTable(registry.Table()), "", "  ")
				data = append(data, '\n')
			case "binary":
				data, err = registry.Table().MarshalBinary()
			default:
				return fmt.Errorf("unsupported output format %q", output)
			}
			if err != nil {
				return fmt.Errorf("failed to encode peripheral table: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml, json or binary.")
	return cmd
}
