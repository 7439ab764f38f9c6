// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

const (
	defaultFileMode      = 0o644
	defaultDirectoryMode = 0o755
)

type localManager struct{}

// NewManager returns a Manager backed by the local filesystem.
func NewManager() Manager {
	return &localManager{}
}

func (m *localManager) PathExists(path string) (os.FileInfo, bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, NewFileSystemError(err, path)
	}
	return fi, true, nil
}

func (m *localManager) IsRegularFile(path string) bool {
	fi, exists, err := m.PathExists(path)
	return err == nil && exists && fi.Mode().IsRegular()
}

func (m *localManager) IsDirectory(path string) bool {
	fi, exists, err := m.PathExists(path)
	return err == nil && exists && fi.IsDir()
}

func (m *localManager) CreateDirectory(path string, recursive bool) error {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return err
	}
	if exists {
		if fi.IsDir() {
			return nil
		}
		return NewFileTypeError(path, "directory")
	}

	if recursive {
		err = os.MkdirAll(path, defaultDirectoryMode)
	} else {
		err = os.Mkdir(path, defaultDirectoryMode)
	}
	if err != nil {
		return NewFileSystemError(err, path)
	}
	return nil
}

func (m *localManager) ReadFile(path string, maxFileSize int64) ([]byte, error) {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewFileNotFoundError(path)
	}
	if !fi.Mode().IsRegular() {
		return nil, NewFileTypeError(path, "regular file")
	}
	if maxFileSize >= 0 && fi.Size() > maxFileSize {
		return nil, NewFileTooLargeError(path, fi.Size(), maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFileSystemError(err, path)
	}
	return data, nil
}

func (m *localManager) WriteFile(path string, payload []byte) error {
	if err := os.WriteFile(path, payload, defaultFileMode); err != nil {
		return NewFileSystemError(err, path)
	}
	return nil
}

func (m *localManager) CopyFile(src string, dst string, overwrite bool) error {
	if !m.IsRegularFile(src) {
		return NewFileNotFoundError(src)
	}

	if m.IsDirectory(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if _, exists, err := m.PathExists(dst); err != nil {
		return err
	} else if exists && !overwrite {
		return NewAlreadyExistsError(dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return NewFileSystemError(err, src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return NewFileSystemError(err, dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return NewFileSystemError(err, dst)
	}
	return nil
}

func (m *localManager) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return NewFileSystemError(err, path)
	}
	return nil
}

func (m *localManager) ListDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewFileSystemError(err, path)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
