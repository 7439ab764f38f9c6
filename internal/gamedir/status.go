// SPDX-License-Identifier: Apache-2.0

package gamedir

import (
	"path/filepath"

	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/pkg/fsx"
)

// Status is a point-in-time snapshot of the game install. It is computed from
// the filesystem on every call and never cached.
type Status struct {
	GamePath            string `json:"gamePath" yaml:"gamePath"`
	ModsFolderExists    bool   `json:"modsFolderExists" yaml:"modsFolderExists"`
	ScriptHookInstalled bool   `json:"scriptHookInstalled" yaml:"scriptHookInstalled"`
	AsiLoaderInstalled  bool   `json:"asiLoaderInstalled" yaml:"asiLoaderInstalled"`
	SetupComplete       bool   `json:"setupComplete" yaml:"setupComplete"`
}

// InspectStatus probes the directory for the mods folder, the hook library and
// the ASI loader. SetupComplete requires the mods folder, the hook and at
// least one loader.
func InspectStatus(fsm fsx.Manager, dir string) Status {
	status := Status{GamePath: dir}
	if dir == "" {
		return status
	}

	status.ModsFolderExists = fsm.IsDirectory(filepath.Join(dir, core.ModsDirName))
	status.ScriptHookInstalled = fsm.IsRegularFile(filepath.Join(dir, core.HookLibrary))
	status.AsiLoaderInstalled = fsm.IsRegularFile(filepath.Join(dir, core.LoaderPrimary)) ||
		fsm.IsRegularFile(filepath.Join(dir, core.LoaderFallback))
	status.SetupComplete = status.ModsFolderExists &&
		status.ScriptHookInstalled && status.AsiLoaderInstalled

	return status
}
