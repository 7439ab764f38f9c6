// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/cmd/gmm/commands/common"
	"github.com/gmm-app/gmm/internal/picker"
	"github.com/gmm-app/gmm/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the required runtime files",
	Long:  "Create the mods folder and place ScriptHookV and an ASI loader into the GTA V install",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := common.NewDeps(cmd.Context())
		orchestrator := setup.NewOrchestrator(deps.Resolver, picker.New(), deps.Downloader, deps.FileManager)

		result := orchestrator.InstallRequirements(cmd.Context())
		for _, line := range result.Steps {
			cmd.Println(line)
		}
		cmd.Println(result.Message)

		if !result.Success && !result.Cancelled {
			return errorx.IllegalState.New("setup did not complete")
		}
		return nil
	},
}
