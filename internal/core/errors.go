// SPDX-License-Identifier: Apache-2.0

package core

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("gmm")

	// GameDirNotFound covers both probe misses and cancelled/invalid
	// interactive selections. Callers recover by re-prompting; the process
	// never dies on it.
	GameDirNotFound = ErrNamespace.NewType("game_dir_not_found", errorx.NotFound())

	// PackageNotFound is returned when an uninstall names an unknown package.
	PackageNotFound = ErrNamespace.NewType("package_not_found", errorx.NotFound())

	// PackageAlreadyInstalled guards Install against clobbering a healthy
	// install. The user must uninstall first.
	PackageAlreadyInstalled = ErrNamespace.NewType("package_already_installed", errorx.Duplicate())

	// LedgerCorrupt marks an unreadable ledger document. It is logged and the
	// ledger treated as empty, never fatal.
	LedgerCorrupt = ErrNamespace.NewType("ledger_corrupt")

	// PickerCancelled is returned when the user backs out of an interactive
	// directory selection.
	PickerCancelled = ErrNamespace.NewType("picker_cancelled")
)
