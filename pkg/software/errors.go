// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/joomcode/errorx"

var (
	ErrorsNamespace    = errorx.NewNamespace("software")
	DownloadError      = ErrorsNamespace.NewType("download_error")
	ExtractionError    = ErrorsNamespace.NewType("extraction_error")
	FileNotFoundError  = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())
	PathTraversalError = ErrorsNamespace.NewType("path_traversal_error")
	InvalidURLError    = ErrorsNamespace.NewType("invalid_url_error")

	urlProperty        = errorx.RegisterPrintableProperty("url")
	filePathProperty   = errorx.RegisterPrintableProperty("file_path")
	statusCodeProperty = errorx.RegisterPrintableProperty("status_code")
)

const (
	downloadErrorMsg      = "failed to download from URL '%s'"
	extractionErrorMsg    = "failed to extract archive '%s' to '%s'"
	fileNotFoundErrorMsg  = "file not found: '%s'"
	pathTraversalErrorMsg = "path traversal detected: entry '%s' attempts to escape extraction directory"
	invalidURLErrorMsg    = "invalid or unsafe URL: '%s'"
)

func NewDownloadError(cause error, url string, statusCode int) *errorx.Error {
	err := DownloadError.New(downloadErrorMsg, url).
		WithProperty(urlProperty, url)

	if statusCode > 0 {
		err = err.WithProperty(statusCodeProperty, statusCode)
	}

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewExtractionError(cause error, archivePath, destPath string) *errorx.Error {
	err := ExtractionError.New(extractionErrorMsg, archivePath, destPath).
		WithProperty(filePathProperty, archivePath)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewFileNotFoundError(filePath string) *errorx.Error {
	return FileNotFoundError.New(fileNotFoundErrorMsg, filePath).
		WithProperty(filePathProperty, filePath)
}

func NewPathTraversalError(entryName string) *errorx.Error {
	return PathTraversalError.New(pathTraversalErrorMsg, entryName).
		WithProperty(filePathProperty, entryName)
}

func NewInvalidURLError(cause error, url string) *errorx.Error {
	err := InvalidURLError.New(invalidURLErrorMsg, url).
		WithProperty(urlProperty, url)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}
