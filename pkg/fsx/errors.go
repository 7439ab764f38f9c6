// SPDX-License-Identifier: Apache-2.0

package fsx

import "github.com/joomcode/errorx"

var (
	ErrorsNamespace    = errorx.NewNamespace("fsx")
	FileSystemError    = ErrorsNamespace.NewType("file_system_error")
	FileNotFoundError  = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())
	FileTypeError      = ErrorsNamespace.NewType("file_type_error")
	FileTooLargeError  = ErrorsNamespace.NewType("file_too_large")
	AlreadyExistsError = ErrorsNamespace.NewType("already_exists", errorx.Duplicate())

	pathProperty = errorx.RegisterPrintableProperty("path")
)

func NewFileSystemError(cause error, path string) *errorx.Error {
	err := FileSystemError.New("filesystem error at %q", path).
		WithProperty(pathProperty, path)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}
	return err
}

func NewFileNotFoundError(path string) *errorx.Error {
	return FileNotFoundError.New("file not found: %q", path).
		WithProperty(pathProperty, path)
}

func NewFileTypeError(path string, expected string) *errorx.Error {
	return FileTypeError.New("path %q is not a %s", path, expected).
		WithProperty(pathProperty, path)
}

func NewFileTooLargeError(path string, size int64, limit int64) *errorx.Error {
	return FileTooLargeError.New("file %q is %d bytes, exceeds limit of %d bytes", path, size, limit).
		WithProperty(pathProperty, path)
}

func NewAlreadyExistsError(path string) *errorx.Error {
	return AlreadyExistsError.New("path already exists: %q", path).
		WithProperty(pathProperty, path)
}
