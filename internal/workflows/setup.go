// SPDX-License-Identifier: Apache-2.0

// Package workflows assembles the automa workflows the commands execute.
package workflows

import (
	"github.com/automa-saga/automa"

	"github.com/gmm-app/gmm/internal/workflows/steps"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

// FirstTimeSetupWorkflow prepares a game directory for add-on packages: the
// mods folder, the hook library and an ASI loader, followed by a verification
// pass.
func FirstTimeSetupWorkflow(journal steps.Journal, fileManager fsx.Manager, downloader *software.Downloader, gameDir, archiveURL string) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("first-time-setup").Steps(
		steps.EnsureModsFolder(journal, fileManager, gameDir),
		steps.FetchScriptHook(journal, downloader, fileManager, gameDir, archiveURL),
		steps.VerifyRequirements(journal, fileManager, gameDir),
	)
}
