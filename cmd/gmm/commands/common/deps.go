// SPDX-License-Identifier: Apache-2.0

// Package common holds helpers shared by the command implementations.
package common

import (
	"context"

	"github.com/gmm-app/gmm/internal/doctor"
	"github.com/gmm-app/gmm/internal/gamedir"
	"github.com/gmm-app/gmm/internal/ledger"
	"github.com/gmm-app/gmm/internal/mods"
	"github.com/gmm-app/gmm/pkg/fsx"
	"github.com/gmm-app/gmm/pkg/software"
)

// Deps bundles the collaborators the commands share.
type Deps struct {
	FileManager fsx.Manager
	Resolver    *gamedir.Resolver
	Ledger      *ledger.Manager
	Downloader  *software.Downloader
	Installer   *mods.Installer
}

// NewDeps wires the command dependencies. The ledger is loaded and reconciled
// so every command starts from a consistent view of the installed packages; a
// failure here is fatal.
func NewDeps(ctx context.Context) *Deps {
	fsm := fsx.NewManager()
	resolver := gamedir.NewResolver(fsm)
	downloader := software.NewDownloader()

	ldg := ledger.NewManager(fsm)
	if err := ldg.Load(); err != nil {
		doctor.CheckErr(ctx, err)
	}
	if _, err := ldg.Reconcile(); err != nil {
		doctor.CheckErr(ctx, err)
	}

	return &Deps{
		FileManager: fsm,
		Resolver:    resolver,
		Ledger:      ldg,
		Downloader:  downloader,
		Installer:   mods.NewInstaller(ldg, downloader, fsm, resolver),
	}
}
