// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

func NewQueryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query KIND|all [INSTANCE]",
		Short: "Query a value of the peripheral table",
		Long: "Query a value of the peripheral table. KIND is one of NUM_USB, USB_BASE0, USB_FLAGS, " +
			"USB_GSIV, USB_BDF, NUM_SATA, SATA_BASE0, SATA_BASE1, SATA_FLAGS, SATA_BDF, NUM_UART, " +
			"UART_BASE0, UART_GSIV, UART_FLAGS, or all. Absent values print as 0x0.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := peripheral.InfoKinds()
			if !strings.EqualFold(args[0], "all") {
				kind, err := peripheral.ParseInfoKind(args[0])
				if err != nil {
					return err
				}
				kinds = []peripheral.InfoKind{kind}
			}

			var instance uint32
			if len(args) == 2 {
				v, err := strconv.ParseUint(args[1], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid instance %q: %w", args[1], err)
				}
				instance = uint32(v)
			}

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

			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				if len(kinds) == 1 {
					_, err = fmt.Fprintf(out, "%#x\n", registry.Info(kind, instance))
				} else {
					_, err = fmt.Fprintf(out, "%-10s %#x\n", kind, registry.Info(kind, instance))
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
