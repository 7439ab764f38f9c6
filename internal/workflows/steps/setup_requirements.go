// SPDX-License-Identifier: Apache-2.0

// Package steps contains the automa step implementations for the first-time
// setup workflow. Every step appends its user-facing progress lines to a
// Journal so the command layer can print a single coherent transcript.
package steps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"

	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/internal/workflows/notify"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

// Journal receives the user-facing progress lines of a workflow run.
type Journal interface {
	Append(line string)
}

// EnsureModsFolder creates the mods folder inside the game directory. An
// existing folder is reported, not an error.
func EnsureModsFolder(journal Journal, fileManager fsx.Manager, gameDir string) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure_mods_folder").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			modsFolder := filepath.Join(gameDir, core.ModsDirName)

			if fileManager.IsDirectory(modsFolder) {
				journal.Append("[=] Mods folder already exists.")
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					"mods_folder": modsFolder,
					"created":     "false",
				}))
			}

			if err := fileManager.CreateDirectory(modsFolder, true); err != nil {
				journal.Append("[!] Failed to create mods folder: " + rootMessage(err))
				return automa.FailureReport(stp, automa.WithError(err))
			}

			journal.Append("[+] Created mods folder.")
			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"mods_folder": modsFolder,
				"created":     "true",
			}))
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to create mods folder")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Mods folder is in place")
		})
}

// FetchScriptHook downloads the prerequisite archive and places the hook
// library and ASI loaders into the game directory. When both the hook and a
// loader are already present the download is skipped entirely so a re-run
// never rewrites files.
func FetchScriptHook(journal Journal, downloader *software.Downloader, fileManager fsx.Manager, gameDir, archiveURL string) automa.Builder {
	return automa.NewStepBuilder().WithId("fetch_scripthook").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			status := gamedir.InspectStatus(fileManager, gameDir)
			if status.ScriptHookInstalled && status.AsiLoaderInstalled {
				journal.Append("[=] ScriptHookV already installed.")
				journal.Append("[=] ASI loader already installed.")
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					"skipped": "true",
				}))
			}

			journal.Append("[+] Downloading ScriptHookV package...")

			extracted, err := downloader.FetchFiltered(ctx, archiveURL, gameDir, core.RequiredFileSuffixes)
			for _, name := range extracted {
				journal.Append("[+] Extracting " + name + "...")
			}
			if err != nil {
				journal.Append("[!] Failed to download or extract ScriptHookV: " + rootMessage(err))
				journal.Append("[!] " + core.ScriptHookSiteHint)
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"extracted": strings.Join(extracted, ", "),
			}))
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to fetch the ScriptHookV package")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "ScriptHookV package is in place")
		})
}

// VerifyRequirements re-inspects the game directory after the previous steps
// and reports whether the full set of required files is present. A partial
// result is journaled but not a step failure; the orchestrator gates overall
// success on the final status.
func VerifyRequirements(journal Journal, fileManager fsx.Manager, gameDir string) automa.Builder {
	return automa.NewStepBuilder().WithId("verify_requirements").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			status := gamedir.InspectStatus(fileManager, gameDir)
			if status.ScriptHookInstalled && status.AsiLoaderInstalled {
				journal.Append("[✓] ScriptHookV and ASI loader files placed in your GTA V folder.")
			} else {
				journal.Append("[!] Some required files may still be missing.")
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"script_hook_installed": boolString(status.ScriptHookInstalled),
				"asi_loader_installed":  boolString(status.AsiLoaderInstalled),
				"mods_folder_exists":    boolString(status.ModsFolderExists),
			}))
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Verified required files")
		})
}

// rootMessage unwraps errorx chains to the innermost message so the journal
// shows a single readable line rather than a stack of wraps.
func rootMessage(err error) string {
	if err == nil {
		return ""
	}
	if ex := errorx.Cast(err); ex != nil {
		if cause := ex.Cause(); cause != nil {
			return rootMessage(cause)
		}
	}
	return err.Error()
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
