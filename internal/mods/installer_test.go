// SPDX-License-Identifier: Apache-2.0

package mods

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/gmm-app/gmm/internal/catalog"
	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/internal/ledger"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

type fixture struct {
	installer *Installer
	ledger    *ledger.Manager
	gameDir   string
	server    *httptest.Server
}

func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newFixture(t *testing.T, withGameDir bool, archive []byte) *fixture {
	t.Helper()

	cfg := config.Get()
	t.Cleanup(func() { _ = config.Set(&cfg) })
	cleared := cfg
	cleared.Game.Dir = ""
	require.NoError(t, config.Set(&cleared))

	core.SetPathsRoot(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	var candidates []string
	gameDir := ""
	if withGameDir {
		gameDir = t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(gameDir, core.AnchorExecutable), []byte("x"), 0o644))
		candidates = []string{gameDir}
	}

	fsm := fsx.NewManager()
	ldg := ledger.NewManagerWithPath(fsm, filepath.Join(t.TempDir(), "installed_mods.json"))
	require.NoError(t, ldg.Load())

	resolver := gamedir.NewResolverWithCandidates(fsm, candidates)
	return &fixture{
		installer: NewInstaller(ldg, software.NewDownloader(), fsm, resolver),
		ledger:    ldg,
		gameDir:   gameDir,
		server:    srv,
	}
}

func testRecord(f *fixture, name, category string) catalog.Record {
	return catalog.Record{
		Name:        name,
		Author:      "tester",
		Category:    category,
		Version:     "1.0",
		DownloadURL: f.server.URL + "/package.zip",
	}
}

// Test: installing extracts the archive into a sanitized folder under the
// mods directory and commits an installed ledger record with the file list.
func TestInstall(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{
		"trainer.asi":        "code",
		"config/trainer.ini": "settings",
	}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "Simple Trainer", "tools"))
	require.NoError(t, err)

	wantPath := filepath.Join(f.gameDir, core.ModsDirName, "Simple_Trainer")
	require.Equal(t, wantPath, result.InstallPath)
	require.ElementsMatch(t, []string{"trainer.asi", filepath.Join("config", "trainer.ini")}, result.Files)
	require.NotEmpty(t, result.InstalledAt)

	_, err = os.Stat(filepath.Join(wantPath, "trainer.asi"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(wantPath, core.ModArchiveName))
	require.True(t, os.IsNotExist(err))

	record, ok := f.ledger.Get("Simple Trainer")
	require.True(t, ok)
	require.Equal(t, ledger.StatusInstalled, record.Status)
	require.Equal(t, wantPath, record.InstallPath)
	require.ElementsMatch(t, result.Files, record.Files)
}

// Test: packages in the scripts category land in the scripts folder.
func TestInstallScriptsCategory(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{"callouts.dll": "code"}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "LSPDFR", "scripts"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.gameDir, core.ScriptsDirName, "LSPDFR"), result.InstallPath)
}

// Test: without a game directory the install falls back to the application
// data mods folder instead of failing.
func TestInstallFallbackDir(t *testing.T) {
	f := newFixture(t, false, zipArchive(t, map[string]string{"a.asi": "code"}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "Thing", "tools"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(core.Paths().FallbackModsDir, "Thing"), result.InstallPath)
}

// Test: a failed download leaves neither a folder nor a ledger entry behind.
func TestInstallDownloadFailureCleansUp(t *testing.T) {
	f := newFixture(t, true, nil)
	f.server.Close()

	_, err := f.installer.Install(context.Background(), testRecord(f, "Broken", "tools"))
	require.Error(t, err)

	_, ok := f.ledger.Get("Broken")
	require.False(t, ok)
	_, statErr := os.Stat(filepath.Join(f.gameDir, core.ModsDirName, "Broken"))
	require.True(t, os.IsNotExist(statErr))
}

// Test: a second install of the same package is refused and leaves the
// existing folder and ledger record untouched, even when the new download
// would have failed.
func TestInstallRefusesReinstall(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{"a.asi": "code"}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "Thing", "tools"))
	require.NoError(t, err)

	f.server.Close()
	_, err = f.installer.Install(context.Background(), testRecord(f, "Thing", "tools"))
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, core.PackageAlreadyInstalled))

	_, statErr := os.Stat(filepath.Join(result.InstallPath, "a.asi"))
	require.NoError(t, statErr)
	record, ok := f.ledger.Get("Thing")
	require.True(t, ok)
	require.Equal(t, ledger.StatusInstalled, record.Status)
}

// Test: uninstalling removes the folder and the ledger entry; a second
// uninstall is PackageNotFound.
func TestUninstall(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{"a.asi": "code"}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "Thing", "tools"))
	require.NoError(t, err)

	removed, err := f.installer.Uninstall("Thing")
	require.NoError(t, err)
	require.Equal(t, result.InstallPath, removed.RemovedPath)

	_, statErr := os.Stat(result.InstallPath)
	require.True(t, os.IsNotExist(statErr))

	_, err = f.installer.Uninstall("Thing")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, core.PackageNotFound))
}

// Test: uninstall tolerates a folder already removed by hand.
func TestUninstallMissingFolder(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{"a.asi": "code"}))

	result, err := f.installer.Install(context.Background(), testRecord(f, "Thing", "tools"))
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(result.InstallPath))

	_, err = f.installer.Uninstall("Thing")
	require.NoError(t, err)
}

// Test: ScanOrphans reports folders the ledger does not know about and skips
// the ones it does.
func TestScanOrphans(t *testing.T) {
	f := newFixture(t, true, zipArchive(t, map[string]string{"a.asi": "code"}))

	_, err := f.installer.Install(context.Background(), testRecord(f, "Known", "tools"))
	require.NoError(t, err)

	orphanDir := filepath.Join(f.gameDir, core.ModsDirName, "dropped_in_by_hand")
	require.NoError(t, os.MkdirAll(orphanDir, 0o755))

	orphans, err := f.installer.ScanOrphans(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{orphanDir}, orphans)
}
