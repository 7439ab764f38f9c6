// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/pkg/launch"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the mod site in the browser",
	Long:  "Open " + core.ModSiteURL + " in the default browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch.Open(core.ModSiteURL)
	},
}
