// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"

	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const Name string = "periphctl"

func NewCommand() *cobra.Command {
	opts := &options{
		zapOpts: zap.Options{
			Development: true,
		},
	}

	root := &cobra.Command{
		Use:          Name,
		Short:        "Peripheral registry and compliance checks of a platform",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	goFlags := flag.NewFlagSet(Name, flag.ContinueOnError)
	opts.zapOpts.BindFlags(goFlags)
	root.PersistentFlags().AddGoFlagSet(goFlags)
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to the configuration file.")
	root.PersistentFlags().StringVar(&opts.fixture, "fixture", "", "YAML platform description used instead of probing the host.")
	root.PersistentFlags().StringVar(&opts.image, "image", "", "Binary peripheral table image used instead of probing the host.")
	root.PersistentFlags().IntVar(&opts.capacity, "capacity", 0, "Number of rows allocated for the peripheral table.")

	root.AddCommand(NewTableCommand(opts))
	root.AddCommand(NewQueryCommand(opts))
	root.AddCommand(NewRunCommand(opts))
	return root
}
