// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

type stubPicker struct {
	dir string
	err error
}

func (p stubPicker) PickDirectory(context.Context, string) (string, error) {
	return p.dir, p.err
}

func scriptHookArchive(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct{ name, content string }{
		{"ScriptHookV.dll", "hook"},
		{"dinput8.dll", "loader"},
		{"readme.txt", "docs"},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entry.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newOrchestrator(t *testing.T, gameDir string, picker gamedir.DirectoryPicker, archive []byte) *Orchestrator {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if archive == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Get()
	t.Cleanup(func() { _ = config.Set(&cfg) })
	test := cfg
	test.Game.Dir = ""
	test.Game.ScriptHookURL = srv.URL + "/ScriptHookV.zip"
	require.NoError(t, config.Set(&test))

	core.SetPathsRoot(t.TempDir())

	fsm := fsx.NewManager()
	var candidates []string
	if gameDir != "" {
		candidates = []string{gameDir}
	}
	resolver := gamedir.NewResolverWithCandidates(fsm, candidates)
	return NewOrchestrator(resolver, picker, software.NewDownloader(), fsm)
}

func newGameDir(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range append([]string{core.AnchorExecutable}, files...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

// Test: a fresh game directory ends up with the mods folder, the hook library
// and a loader, and the transcript matches the install path taken.
func TestInstallRequirementsFreshDir(t *testing.T) {
	gameDir := newGameDir(t)
	o := newOrchestrator(t, gameDir, stubPicker{}, scriptHookArchive(t))

	result := o.InstallRequirements(context.Background())
	require.True(t, result.Success)
	require.Equal(t, "[✓] Installation finished. Press Refresh to update the status.", result.Message)
	require.Equal(t, []string{
		"[+] Created mods folder.",
		"[+] Downloading ScriptHookV package...",
		"[+] Extracting ScriptHookV.dll...",
		"[+] Extracting dinput8.dll...",
		"[✓] ScriptHookV and ASI loader files placed in your GTA V folder.",
	}, result.Steps)

	require.True(t, result.Status.SetupComplete)
	_, err := os.Stat(filepath.Join(gameDir, core.ModsDirName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(gameDir, "readme.txt"))
	require.True(t, os.IsNotExist(err))
}

// Test: a second run over a satisfied directory performs no work and reports
// only "already" lines.
func TestInstallRequirementsIdempotent(t *testing.T) {
	gameDir := newGameDir(t)
	o := newOrchestrator(t, gameDir, stubPicker{}, scriptHookArchive(t))

	require.True(t, o.InstallRequirements(context.Background()).Success)

	hookPath := filepath.Join(gameDir, core.HookLibrary)
	before, err := os.Stat(hookPath)
	require.NoError(t, err)

	result := o.InstallRequirements(context.Background())
	require.True(t, result.Success)
	require.Equal(t, []string{
		"[=] Mods folder already exists.",
		"[=] ScriptHookV already installed.",
		"[=] ASI loader already installed.",
		"[✓] ScriptHookV and ASI loader files placed in your GTA V folder.",
	}, result.Steps)

	after, err := os.Stat(hookPath)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

// Test: declining the directory prompt cancels the run with no steps.
func TestInstallRequirementsCancelled(t *testing.T) {
	cancelled := core.PickerCancelled.New("selection aborted")
	o := newOrchestrator(t, "", stubPicker{err: cancelled}, scriptHookArchive(t))

	result := o.InstallRequirements(context.Background())
	require.False(t, result.Success)
	require.Empty(t, result.Steps)
	require.Equal(t, "[!] GTA V folder not selected. Installation cancelled.", result.Message)
}

// Test: a failed download reports failure with the transcript up to the
// failure and the manual-install hint.
func TestInstallRequirementsDownloadFailure(t *testing.T) {
	gameDir := newGameDir(t)
	o := newOrchestrator(t, gameDir, stubPicker{}, nil)

	result := o.InstallRequirements(context.Background())
	require.False(t, result.Success)
	require.Contains(t, result.Steps, "[+] Created mods folder.")
	require.Contains(t, result.Steps, "[+] Downloading ScriptHookV package...")
	require.Contains(t, result.Steps, "[!] "+core.ScriptHookSiteHint)
	require.Contains(t, result.Message, "[!] Failed to download or extract ScriptHookV")
}

// Test: an archive missing the loader yields the partial-result line and a
// failed gate even though every step ran.
func TestInstallRequirementsPartialArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ScriptHookV.dll")
	require.NoError(t, err)
	_, err = w.Write([]byte("hook"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	gameDir := newGameDir(t)
	o := newOrchestrator(t, gameDir, stubPicker{}, buf.Bytes())

	result := o.InstallRequirements(context.Background())
	require.False(t, result.Success)
	require.Contains(t, result.Steps, "[!] Some required files may still be missing.")
	require.Equal(t, "[!] Some required files may still be missing.", result.Message)
}

// Test: the picker result is used when automatic detection finds nothing.
func TestInstallRequirementsPromptedDir(t *testing.T) {
	gameDir := newGameDir(t)
	o := newOrchestrator(t, "", stubPicker{dir: gameDir}, scriptHookArchive(t))

	result := o.InstallRequirements(context.Background())
	require.True(t, result.Success)
	require.Equal(t, gameDir, result.Status.GamePath)
}
