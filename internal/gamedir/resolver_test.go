// SPDX-License-Identifier: Apache-2.0

package gamedir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/gmm-app/gmm/internal/config"
	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/pkg/fsx"
)

func newGameDir(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range append([]string{core.AnchorExecutable}, files...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func resetConfig(t *testing.T) {
	t.Helper()

	cfg := config.Get()
	t.Cleanup(func() { _ = config.Set(&cfg) })
	cleared := cfg
	cleared.Game.Dir = ""
	require.NoError(t, config.Set(&cleared))
}

type stubPicker struct {
	dir string
	err error
}

func (p stubPicker) PickDirectory(context.Context, string) (string, error) {
	return p.dir, p.err
}

// Test: the first candidate containing the anchor executable wins.
func TestResolveProbesCandidates(t *testing.T) {
	resetConfig(t)
	empty := t.TempDir()
	game := newGameDir(t)

	r := NewResolverWithCandidates(fsx.NewManager(), []string{empty, game})
	dir, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, game, dir)
}

// Test: a configured directory takes precedence over the candidates.
func TestResolveConfigOverride(t *testing.T) {
	resetConfig(t)
	configured := newGameDir(t)
	candidate := newGameDir(t)

	cfg := config.Get()
	cfg.Game.Dir = configured
	require.NoError(t, config.Set(&cfg))

	r := NewResolverWithCandidates(fsx.NewManager(), []string{candidate})
	dir, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, configured, dir)
}

// Test: a cached directory that disappears is re-probed, never returned stale.
func TestResolveRevalidatesCache(t *testing.T) {
	resetConfig(t)
	first := newGameDir(t)
	second := newGameDir(t)

	r := NewResolverWithCandidates(fsx.NewManager(), []string{first, second})
	dir, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, dir)

	require.NoError(t, os.Remove(filepath.Join(first, core.AnchorExecutable)))

	dir, err = r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, second, dir)
}

// Test: no valid install anywhere yields GameDirNotFound.
func TestResolveNotFound(t *testing.T) {
	resetConfig(t)

	r := NewResolverWithCandidates(fsx.NewManager(), []string{t.TempDir()})
	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, core.GameDirNotFound))
}

// Test: the picker is consulted only after automatic detection fails, and a
// valid pick is cached, pinned in the configuration and returned by
// subsequent resolves.
func TestPromptAndResolve(t *testing.T) {
	resetConfig(t)
	picked := newGameDir(t)

	r := NewResolverWithCandidates(fsx.NewManager(), nil)
	dir, err := r.PromptAndResolve(context.Background(), stubPicker{dir: picked})
	require.NoError(t, err)
	require.Equal(t, picked, dir)
	require.Equal(t, picked, config.Get().Game.Dir)

	dir, err = r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, picked, dir)
}

// Test: a cancelled pick surfaces the picker's error unchanged.
func TestPromptAndResolveCancelled(t *testing.T) {
	resetConfig(t)

	cancelled := core.PickerCancelled.New("selection aborted")
	r := NewResolverWithCandidates(fsx.NewManager(), nil)
	_, err := r.PromptAndResolve(context.Background(), stubPicker{err: cancelled})
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, core.PickerCancelled))
}

// Test: a picked directory without the anchor executable is rejected.
func TestPromptAndResolveInvalidPick(t *testing.T) {
	resetConfig(t)

	r := NewResolverWithCandidates(fsx.NewManager(), nil)
	_, err := r.PromptAndResolve(context.Background(), stubPicker{dir: t.TempDir()})
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, core.GameDirNotFound))
}
