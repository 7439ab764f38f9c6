// SPDX-License-Identifier: Apache-2.0

package core

const (
	// AnchorExecutable is the file whose presence marks a valid GTA V installation.
	AnchorExecutable = "GTA5.exe"

	// HookLibrary is the runtime component that lets script mods run inside the game process.
	HookLibrary = "ScriptHookV.dll"

	// LoaderPrimary and LoaderFallback are the alternate ASI loader filenames.
	// Either one satisfies the loader requirement.
	LoaderPrimary  = "dinput8.dll"
	LoaderFallback = "dsound.dll"

	// ModsDirName is the optional-content directory expected directly under the game root.
	ModsDirName = "mods"

	// ScriptsDirName is where script-category packages are installed.
	ScriptsDirName = "scripts"

	// ModArchiveName is the fixed filename a package archive is downloaded to
	// inside its install folder.
	ModArchiveName = "mod.zip"

	DefaultDirPerm  = 0o755
	DefaultFilePerm = 0o644
)

const (
	// ScriptHookArchiveURL is the distribution archive containing the hook
	// library and the ASI loader.
	ScriptHookArchiveURL = "https://ntscorp.ru/dev-c/ScriptHookV_3586.0_889.22.zip"

	// ModSiteURL is the community mod site opened by `gmm browse`.
	ModSiteURL = "https://www.gta5-mods.com/"

	// ScriptHookSiteHint is appended to fetch failures so users can finish by hand.
	ScriptHookSiteHint = "Download it from the official site and place the files in your GTA V folder."
)

// RequiredFileSuffixes is the allow list applied while filtering the
// ScriptHookV distribution archive. Matching is case-insensitive.
var RequiredFileSuffixes = []string{HookLibrary, LoaderPrimary, LoaderFallback}

// DefaultGameDirCandidates are the well-known install locations probed in
// order. First match wins.
var DefaultGameDirCandidates = []string{
	`C:\Program Files (x86)\Steam\steamapps\common\Grand Theft Auto V`,
	`D:\SteamLibrary\steamapps\common\Grand Theft Auto V`,
	`C:\Program Files\Epic Games\Grand Theft Auto V`,
	`D:\Epic Games\Grand Theft Auto V`,
	`C:\Program Files\Rockstar Games\Grand Theft Auto V`,
	`D:\Rockstar Games\Grand Theft Auto V`,
}
