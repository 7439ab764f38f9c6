// SPDX-License-Identifier: Apache-2.0

package core

import (
	"os"
	"path/filepath"
	"sync"
)

// AppPaths holds the application-data directory layout. The ledger document,
// downloads and logs all live under a single per-user root.
type AppPaths struct {
	AppDataDir      string `yaml:"appDataDir" json:"appDataDir"`
	LedgerFile      string `yaml:"ledgerFile" json:"ledgerFile"`
	DownloadsDir    string `yaml:"downloadsDir" json:"downloadsDir"`
	LogsDir         string `yaml:"logsDir" json:"logsDir"`
	FallbackModsDir string `yaml:"fallbackModsDir" json:"fallbackModsDir"`
}

var (
	pathsOnce sync.Once
	appPaths  *AppPaths
)

// Paths returns the resolved application paths, computed once per process.
func Paths() *AppPaths {
	pathsOnce.Do(func() {
		root, err := os.UserConfigDir()
		if err != nil {
			// last resort, keeps the tool usable in stripped-down environments
			root = os.TempDir()
		}
		appPaths = pathsFor(filepath.Join(root, "gmm"))
	})
	return appPaths
}

// SetPathsRoot points the application-data layout at a different root.
// Intended for tests.
func SetPathsRoot(root string) {
	pathsOnce.Do(func() {})
	appPaths = pathsFor(root)
}

func pathsFor(root string) *AppPaths {
	return &AppPaths{
		AppDataDir:      root,
		LedgerFile:      filepath.Join(root, "installed_mods.json"),
		DownloadsDir:    filepath.Join(root, "downloads"),
		LogsDir:         filepath.Join(root, "logs"),
		FallbackModsDir: filepath.Join(root, "mods"),
	}
}

// Clone returns a copy so callers cannot mutate the shared layout.
func (p *AppPaths) Clone() *AppPaths {
	c := *p
	return &c
}
