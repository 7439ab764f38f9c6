// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/cmd/gmm/commands/common"
	"github.com/gmm-app/gmm/internal/gamedir"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the game install",
	Long:  "Detect the GTA V install and report the mods folder, ScriptHookV and ASI loader state",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := common.NewDeps(cmd.Context())

		gameDir, err := deps.Resolver.Resolve(cmd.Context())
		if err != nil {
			logx.As().Debug().Err(err).Msg("Game directory not found")
		}

		status := gamedir.InspectStatus(deps.FileManager, gameDir)
		common.Render(cmd, status, flagOutputFormat)
		return nil
	},
}
