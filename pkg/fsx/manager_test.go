// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestManager_PathExists(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()

	_, exists, err := m.PathExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, exists)

	file := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	fi, exists, err := m.PathExists(file)
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, fi.Mode().IsRegular())
}

func TestManager_CreateDirectory(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, m.CreateDirectory(nested, true))
	require.True(t, m.IsDirectory(nested))

	// creating an existing directory is a no-op
	require.NoError(t, m.CreateDirectory(nested, true))

	// a file in the way is an error
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	err := m.CreateDirectory(file, true)
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, FileTypeError))

	// non-recursive creation requires the parent to exist
	err = m.CreateDirectory(filepath.Join(dir, "x", "y"), false)
	require.Error(t, err)
}

func TestManager_ReadFile_SizeLimit(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()

	file := filepath.Join(dir, "payload.bin")
	require.NoError(t, os.WriteFile(file, make([]byte, 128), 0o644))

	_, err := m.ReadFile(file, 64)
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, FileTooLargeError))

	data, err := m.ReadFile(file, -1)
	require.NoError(t, err)
	require.Len(t, data, 128)

	_, err = m.ReadFile(filepath.Join(dir, "missing"), -1)
	require.True(t, errorx.IsOfType(err, FileNotFoundError))
}

func TestManager_CopyFile(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, m.CopyFile(src, dst, false))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))

	// without overwrite an existing destination is rejected
	err = m.CopyFile(src, dst, false)
	require.True(t, errorx.IsOfType(err, AlreadyExistsError))
	require.NoError(t, m.CopyFile(src, dst, true))
}

func TestManager_ListDirNames(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "beta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-dir"), []byte("x"), 0o644))

	names, err := m.ListDirNames(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, names)

	names, err = m.ListDirNames(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Empty(t, names)
}
