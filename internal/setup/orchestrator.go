// SPDX-License-Identifier: Apache-2.0

// Package setup drives the first-time installation of the required runtime
// files into the game directory.
package setup

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/internal/workflows"
	"github.com/gmm-app/gmm/internal/workflows/steps"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

// Result is what a setup run reports back to the user: the ordered progress
// lines, a terminal message and whether the directory ended up fully set up.
type Result struct {
	Success   bool            `json:"success" yaml:"success"`
	Cancelled bool            `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	Steps     []string        `json:"steps" yaml:"steps"`
	Message   string          `json:"message" yaml:"message"`
	Status    *gamedir.Status `json:"status,omitempty" yaml:"status,omitempty"`
}

// Orchestrator resolves the game directory, runs the setup workflow against
// it and gates success on the resulting directory state.
type Orchestrator struct {
	resolver    *gamedir.Resolver
	picker      gamedir.DirectoryPicker
	downloader  *software.Downloader
	fileManager fsx.Manager
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(resolver *gamedir.Resolver, picker gamedir.DirectoryPicker, downloader *software.Downloader, fileManager fsx.Manager) *Orchestrator {
	return &Orchestrator{
		resolver:    resolver,
		picker:      picker,
		downloader:  downloader,
		fileManager: fileManager,
	}
}

// InstallRequirements runs the first-time setup. A declined or failed
// directory selection cancels the run with no steps performed; every other
// outcome carries the full step transcript. Success means the directory holds
// the mods folder, the hook library and an ASI loader when the run ends. The
// run is idempotent: an already-satisfied directory only yields
// "already exists" lines.
func (o *Orchestrator) InstallRequirements(ctx context.Context) *Result {
	gameDir, err := o.resolver.PromptAndResolve(ctx, o.picker)
	if err != nil {
		if !errorx.IsOfType(err, core.PickerCancelled) {
			logx.As().Warn().Err(err).Msg("Game directory selection failed")
		}
		return &Result{
			Success:   false,
			Cancelled: true,
			Steps:     []string{},
			Message:   "[!] GTA V folder not selected. Installation cancelled.",
		}
	}

	journal := &Journal{}
	builder := workflows.FirstTimeSetupWorkflow(
		journal, o.fileManager, o.downloader, gameDir, config.Get().Game.ScriptHookURL)

	workflow, err := builder.Build()
	if err != nil {
		return o.failed(journal, gameDir, err)
	}

	report := workflow.Execute(ctx)
	o.saveReport(report)
	if report.Error != nil {
		return o.failed(journal, gameDir, report.Error)
	}

	status := gamedir.InspectStatus(o.fileManager, gameDir)
	result := &Result{
		Success: status.SetupComplete,
		Steps:   journal.Lines(),
		Status:  &status,
	}
	if result.Success {
		result.Message = "[✓] Installation finished. Press Refresh to update the status."
	} else {
		result.Message = "[!] Some required files may still be missing."
	}
	return result
}

// saveReport persists the workflow execution report next to the logs so a
// failed setup can be inspected after the fact.
func (o *Orchestrator) saveReport(report *automa.Report) {
	timestamp := time.Now().Format("20060102_150405")
	reportPath := filepath.Join(core.Paths().LogsDir, fmt.Sprintf("setup_report_%s.yaml", timestamp))
	steps.PrintWorkflowReport(report, reportPath)
	logx.As().Info().Str("report_path", reportPath).Msg("Workflow report is saved")
}

func (o *Orchestrator) failed(journal *Journal, gameDir string, err error) *Result {
	logx.As().Error().Err(err).Str("game_dir", gameDir).Msg("First-time setup failed")

	// the failing step already journaled a "[!]" line; reuse it as the
	// terminal message so the transcript and the message agree
	lines := journal.Lines()
	message := "[!] Installation failed. See the log for details."
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "[!] Failed") {
			message = lines[i]
			break
		}
	}

	status := gamedir.InspectStatus(o.fileManager, gameDir)
	return &Result{
		Success: false,
		Steps:   lines,
		Message: message,
		Status:  &status,
	}
}
