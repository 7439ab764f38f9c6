// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/cmd/gmm/commands/modscmd"
	"github.com/gmm-app/gmm/cmd/gmm/commands/versioncmd"
	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/doctor"
)

// examples:
// ./gmm status
// ./gmm setup
// ./gmm mods search --category tools trainer
// ./gmm mods install "Simple Trainer"
// ./gmm update --download

var (
	// Used for flags.
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:   "gmm",
		Short: "A friendly companion for managing GTA V mods",
		Long:  "GMM - detects your GTA V install, sets up ScriptHookV and an ASI loader, and manages add-on packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				versioncmd.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")

	// support '--version', '-v' to show version information
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Show version")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(modscmd.GetCmd())
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versioncmd.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	var err error
	err = config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	logConfig := config.Get().Log
	err = logx.Initialize(logConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
