// SPDX-License-Identifier: Apache-2.0

// Package mods installs, removes and audits add-on packages.
package mods

import (
	"context"
	"path/filepath"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"

	"github.com/gmm-app/gmm/internal/catalog"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/internal/ledger"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/sanity"
	"github.com/gmm-app/gmm/pkg/software"
)

// Installer performs package installs against the resolved game directory,
// falling back to the application data mods directory when the game install
// cannot be located.
type Installer struct {
	ledger      *ledger.Manager
	downloader  *software.Downloader
	fileManager fsx.Manager
	resolver    *gamedir.Resolver
	log         zerolog.Logger
}

// InstallResult reports a completed install.
type InstallResult struct {
	Name        string   `json:"name" yaml:"name"`
	InstallPath string   `json:"installPath" yaml:"installPath"`
	Files       []string `json:"files" yaml:"files"`
	InstalledAt string   `json:"installedAt" yaml:"installedAt"`
}

// UninstallResult reports a completed uninstall.
type UninstallResult struct {
	Name        string `json:"name" yaml:"name"`
	RemovedPath string `json:"removedPath" yaml:"removedPath"`
}

// NewInstaller wires an Installer from its collaborators.
func NewInstaller(ldg *ledger.Manager, downloader *software.Downloader, fileManager fsx.Manager, resolver *gamedir.Resolver) *Installer {
	return &Installer{
		ledger:      ldg,
		downloader:  downloader,
		fileManager: fileManager,
		resolver:    resolver,
		log:         logx.As().With().Str("component", "mods").Logger(),
	}
}

// Install downloads and extracts the package described by the catalog record.
// A provisional ledger entry is written before any filesystem mutation so an
// interrupted install is visible to the startup reconciliation pass.
func (i *Installer) Install(ctx context.Context, meta catalog.Record) (*InstallResult, error) {
	if meta.Name == "" {
		return nil, errorx.IllegalArgument.New("package name is required")
	}
	if err := sanity.ValidateURL(meta.DownloadURL); err != nil {
		return nil, errorx.IllegalArgument.Wrap(err, "package %s has no usable download url", meta.Name)
	}

	folderName, err := sanity.DirName(meta.Name)
	if err != nil {
		return nil, errorx.IllegalArgument.Wrap(err, "package name %q cannot be used as a folder", meta.Name)
	}

	// Refuse to touch a healthy install; a failed run would otherwise tear
	// down the existing folder during cleanup. Leftover pending entries are
	// fair game, they hold nothing worth keeping.
	if existing, ok := i.ledger.Get(meta.Name); ok && existing.Status == ledger.StatusInstalled {
		return nil, core.PackageAlreadyInstalled.New(
			"package %s is already installed at %s, uninstall it first", meta.Name, existing.InstallPath)
	}

	installPath := filepath.Join(i.installRoot(ctx, meta.Category), folderName)

	pending := ledger.Record{
		Name:        meta.Name,
		Description: meta.Description,
		Author:      meta.Author,
		Category:    meta.Category,
		Version:     meta.Version,
		DownloadURL: meta.DownloadURL,
		InstallPath: installPath,
		Status:      ledger.StatusPending,
	}
	if err := i.ledger.Put(pending); err != nil {
		return nil, err
	}

	result, err := i.install(ctx, pending)
	if err != nil {
		// Best-effort cleanup; a crash here is caught by Reconcile at startup.
		_, _ = i.ledger.Remove(meta.Name)
		_ = i.fileManager.RemoveAll(installPath)
		return nil, err
	}
	return result, nil
}

func (i *Installer) install(ctx context.Context, record ledger.Record) (*InstallResult, error) {
	if err := i.fileManager.CreateDirectory(record.InstallPath, true); err != nil {
		return nil, errorx.IllegalState.Wrap(err, "failed to create package folder %s", record.InstallPath)
	}

	archivePath := filepath.Join(record.InstallPath, core.ModArchiveName)
	if err := i.downloader.Download(ctx, record.DownloadURL, archivePath); err != nil {
		return nil, err
	}

	files, err := i.downloader.ExtractAll(archivePath, record.InstallPath)
	if err != nil {
		return nil, err
	}
	_ = i.fileManager.RemoveAll(archivePath)

	record.Files = files
	record.InstalledAt = time.Now().UTC().Format(time.RFC3339)
	record.Status = ledger.StatusInstalled
	if err := i.ledger.Put(record); err != nil {
		return nil, err
	}

	i.log.Info().Str("package", record.Name).Str("path", record.InstallPath).
		Int("files", len(files)).Msg("Installed package")

	return &InstallResult{
		Name:        record.Name,
		InstallPath: record.InstallPath,
		Files:       files,
		InstalledAt: record.InstalledAt,
	}, nil
}

// Uninstall removes the package folder and its ledger entry. A folder already
// gone is tolerated; an unknown package name is a PackageNotFound error.
func (i *Installer) Uninstall(name string) (*UninstallResult, error) {
	record, ok := i.ledger.Get(name)
	if !ok {
		return nil, core.PackageNotFound.New("package %s is not installed", name)
	}

	if record.InstallPath != "" {
		if err := i.fileManager.RemoveAll(record.InstallPath); err != nil {
			return nil, errorx.IllegalState.Wrap(err, "failed to remove package folder %s", record.InstallPath)
		}
	}

	if _, err := i.ledger.Remove(name); err != nil {
		return nil, err
	}

	i.log.Info().Str("package", name).Msg("Uninstalled package")
	return &UninstallResult{Name: name, RemovedPath: record.InstallPath}, nil
}

// List returns the installed packages from the ledger.
func (i *Installer) List() []ledger.Record {
	return i.ledger.List()
}

// ScanOrphans lists package folders on disk that the ledger does not know
// about. It never mutates anything; the decision stays with the user.
func (i *Installer) ScanOrphans(ctx context.Context) ([]string, error) {
	known := map[string]struct{}{}
	for _, record := range i.ledger.List() {
		if record.InstallPath != "" {
			known[filepath.Clean(record.InstallPath)] = struct{}{}
		}
	}

	var orphans []string
	for _, root := range i.scanRoots(ctx) {
		names, err := i.fileManager.ListDirNames(root)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			dir := filepath.Join(root, name)
			if _, ok := known[filepath.Clean(dir)]; !ok {
				orphans = append(orphans, dir)
			}
		}
	}

	return orphans, nil
}

// installRoot picks where a package of the given category lands. Script
// packages go under the scripts folder, everything else under the mods
// folder. Without a resolvable game directory the application data mods
// directory is used so installs still succeed.
func (i *Installer) installRoot(ctx context.Context, category string) string {
	gameDir, err := i.resolver.Resolve(ctx)
	if err != nil {
		i.log.Warn().Msg("Game directory not found, installing into the application data mods folder")
		return core.Paths().FallbackModsDir
	}

	if category == "scripts" {
		return filepath.Join(gameDir, core.ScriptsDirName)
	}
	return filepath.Join(gameDir, core.ModsDirName)
}

func (i *Installer) scanRoots(ctx context.Context) []string {
	roots := []string{core.Paths().FallbackModsDir}
	if gameDir, err := i.resolver.Resolve(ctx); err == nil {
		roots = append(roots,
			filepath.Join(gameDir, core.ModsDirName),
			filepath.Join(gameDir, core.ScriptsDirName))
	}
	return roots
}
