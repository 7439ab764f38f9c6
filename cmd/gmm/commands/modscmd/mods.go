// SPDX-License-Identifier: Apache-2.0

// Package modscmd implements the add-on package management commands.
package modscmd

import (
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/cmd/gmm/commands/common"
	"github.com/gmm-app/gmm/internal/catalog"
	"github.com/gmm-app/gmm/internal/core"
)

var (
	flagCategory     string
	flagOutputFormat string

	modsCmd = &cobra.Command{
		Use:   "mods",
		Short: "Manage add-on packages",
		Long:  "Search the catalog and install, remove, list or audit add-on packages",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	searchCmd = &cobra.Command{
		Use:   "search [term]",
		Short: "Search the package catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := catalog.NewStaticSource()
			if err != nil {
				return err
			}

			term := ""
			if len(args) > 0 {
				term = args[0]
			}

			records, err := source.Fetch(flagCategory, term)
			if err != nil {
				return err
			}
			common.Render(cmd, records, flagOutputFormat)
			return nil
		},
	}

	installCmd = &cobra.Command{
		Use:   "install <name>",
		Short: "Install a package from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}

			deps := common.NewDeps(cmd.Context())
			result, err := deps.Installer.Install(cmd.Context(), *record)
			if err != nil {
				return err
			}

			logx.As().Info().Str("package", result.Name).Msg("Package installed")
			common.Render(cmd, result, flagOutputFormat)
			return nil
		},
	}

	uninstallCmd = &cobra.Command{
		Use:   "uninstall <name>",
		Short: "Remove an installed package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := common.NewDeps(cmd.Context())
			result, err := deps.Installer.Uninstall(args[0])
			if err != nil {
				return err
			}

			logx.As().Info().Str("package", result.Name).Msg("Package removed")
			common.Render(cmd, result, flagOutputFormat)
			return nil
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := common.NewDeps(cmd.Context())
			common.Render(cmd, deps.Installer.List(), flagOutputFormat)
			return nil
		},
	}

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Report package folders unknown to the ledger",
		Long:  "Scan the game's mods and scripts folders for packages installed outside this tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := common.NewDeps(cmd.Context())
			orphans, err := deps.Installer.ScanOrphans(cmd.Context())
			if err != nil {
				return err
			}

			if len(orphans) == 0 {
				cmd.Println("No unmanaged package folders found.")
				return nil
			}
			common.Render(cmd, orphans, flagOutputFormat)
			return nil
		},
	}
)

func init() {
	searchCmd.Flags().StringVar(&flagCategory, "category", "", "Restrict the search to one category")
	modsCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format: yaml|json")

	modsCmd.AddCommand(searchCmd)
	modsCmd.AddCommand(installCmd)
	modsCmd.AddCommand(uninstallCmd)
	modsCmd.AddCommand(listCmd)
	modsCmd.AddCommand(scanCmd)
}

func GetCmd() *cobra.Command {
	return modsCmd
}

// lookupCatalog finds a catalog record by exact, case-insensitive name.
func lookupCatalog(name string) (*catalog.Record, error) {
	source, err := catalog.NewStaticSource()
	if err != nil {
		return nil, err
	}

	record, ok := source.Lookup(name)
	if !ok {
		return nil, core.PackageNotFound.New("package %q is not in the catalog", name).
			WithProperty(errorx.PropertyPayload(), name)
	}
	return record, nil
}
