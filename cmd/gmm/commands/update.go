// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/cmd/gmm/commands/common"
	"github.com/gmm-app/gmm/internal/update"
)

var (
	flagDownload bool

	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Check for a newer release",
		Long:  "Check the release feed for a newer build and optionally download it",
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := update.NewChecker()

			result, err := checker.Check(cmd.Context())
			if err != nil {
				return err
			}
			common.Render(cmd, result, flagOutputFormat)

			if !flagDownload {
				return nil
			}
			if !result.UpdateAvailable {
				logx.As().Info().Msg("Already on the latest release")
				return nil
			}

			path, err := checker.Perform(cmd.Context(), result)
			if err != nil {
				return err
			}
			cmd.Println("Downloaded update to " + path)
			return nil
		},
	}
)

func init() {
	updateCmd.Flags().BoolVar(&flagDownload, "download", false, "Download the update package when one is available")
}
