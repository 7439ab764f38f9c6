// SPDX-License-Identifier: Apache-2.0

// Package gamedir locates the game installation directory and inspects the
// state of the required runtime files inside it.
package gamedir

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/pkg/fsx"
)

// DirectoryPicker asks the user for a directory. Implementations return
// core.PickerCancelled-typed errors when the user backs out.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context, title string) (string, error)
}

// Resolver finds the game directory by checking, in order, the configured
// override, the cached result and the well-known install candidates. The
// cached value is revalidated on every Resolve call so a moved or deleted
// install never yields a stale hit.
type Resolver struct {
	mu         sync.Mutex
	cached     string
	fsm        fsx.Manager
	candidates []string
}

// NewResolver creates a Resolver probing the default install candidates.
func NewResolver(fsm fsx.Manager) *Resolver {
	return NewResolverWithCandidates(fsm, core.DefaultGameDirCandidates)
}

// NewResolverWithCandidates creates a Resolver probing the given candidate
// directories in order.
func NewResolverWithCandidates(fsm fsx.Manager, candidates []string) *Resolver {
	return &Resolver{fsm: fsm, candidates: candidates}
}

// Resolve returns the game directory, or a GameDirNotFound error when neither
// the configuration, the cache nor any candidate holds a valid install.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := config.Get().Game.Dir; dir != "" && r.isGameDir(dir) {
		r.cached = dir
		return dir, nil
	}

	if r.cached != "" && r.isGameDir(r.cached) {
		return r.cached, nil
	}
	r.cached = ""

	for _, candidate := range r.candidates {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		if r.isGameDir(candidate) {
			r.cached = candidate
			return candidate, nil
		}
	}

	return "", core.GameDirNotFound.New("no game installation found in known locations")
}

// PromptAndResolve resolves the game directory, falling back to asking the
// user through the picker when automatic detection fails. A picked directory
// is validated before being cached; an invalid pick is an error, not a retry.
func (r *Resolver) PromptAndResolve(ctx context.Context, picker DirectoryPicker) (string, error) {
	dir, err := r.Resolve(ctx)
	if err == nil {
		return dir, nil
	}

	picked, err := picker.PickDirectory(ctx, "Select your GTA V installation folder")
	if err != nil {
		return "", err
	}

	return picked, r.Set(picked)
}

// Set validates and caches the directory as the game install location and
// pins it as the configured override so every later Resolve agrees.
func (r *Resolver) Set(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isGameDir(dir) {
		return core.GameDirNotFound.New("%s does not contain %s", dir, core.AnchorExecutable)
	}

	r.cached = dir
	config.SetGameDir(dir)
	return nil
}

// Invalidate drops the cached directory so the next Resolve re-probes.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = ""
}

func (r *Resolver) isGameDir(dir string) bool {
	return r.fsm.IsRegularFile(filepath.Join(dir, core.AnchorExecutable))
}
