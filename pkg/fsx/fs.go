// SPDX-License-Identifier: Apache-2.0

package fsx

import "os"

// Manager provides a narrow interface for the file and directory operations
// the application performs. It exists so filesystem behaviour can be mocked
// during tests.
type Manager interface {
	// PathExists determines if the path exists. This method does not follow symlinks.
	PathExists(path string) (os.FileInfo, bool, error)
	// IsRegularFile returns true if the path is a regular file.
	IsRegularFile(path string) bool
	// IsDirectory returns true if the path is a directory.
	IsDirectory(path string) bool
	// CreateDirectory creates a directory at the given path.
	// An existing directory is not an error. A non-existent parent is an
	// error unless the recursive argument is true.
	CreateDirectory(path string, recursive bool) error
	// ReadFile reads the whole file as long as its size is below the
	// maxFileSize argument. A negative maxFileSize disables the check.
	ReadFile(path string, maxFileSize int64) ([]byte, error)
	// WriteFile writes the payload to the file, replacing existing contents.
	WriteFile(path string, payload []byte) error
	// CopyFile copies a single file. An existing destination is replaced
	// only when overwrite is true.
	CopyFile(src string, dst string, overwrite bool) error
	// RemoveAll removes the path and its contents. A missing path is a no-op.
	RemoveAll(path string) error
	// ListDirNames returns the names of the immediate subdirectories of path,
	// sorted lexically. A missing path yields an empty list.
	ListDirNames(path string) ([]string, error)
}
