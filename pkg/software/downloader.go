// SPDX-License-Identifier: Apache-2.0

package software

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Downloader fetches package archives and extracts them. A zero timeout means
// the client waits indefinitely; retries are always the caller's decision.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a Downloader without a request timeout.
func NewDownloader() *Downloader {
	return &Downloader{client: &http.Client{}}
}

// NewDownloaderWithTimeout creates a Downloader whose requests are bounded by
// the given timeout.
func NewDownloaderWithTimeout(timeout time.Duration) *Downloader {
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Download fetches the URL into the destination file. A non-2xx response or a
// broken stream yields a DownloadError; bytes already written stay on disk.
func (d *Downloader) Download(ctx context.Context, url, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewInvalidURLError(err, url)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return NewDownloadError(err, url, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewDownloadError(nil, url, resp.StatusCode)
	}

	out, err := os.Create(destination)
	if err != nil {
		return NewDownloadError(err, url, 0)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return NewDownloadError(err, url, 0)
	}

	return nil
}

// FetchFiltered fetches a zip archive from the URL and writes only the entries
// whose names end with one of the given suffixes (case-insensitive) into
// destDir, flattened to their base names. Non-matching entries are skipped
// without touching disk. It returns the base names written, in archive order.
//
// The response body is streamed to a spool file first; Go's zip reader needs
// random access. A non-200 status, a broken body stream or a malformed archive
// fails the whole call, but files written before the failure are not rolled
// back — callers re-inspect the filesystem rather than trusting this result.
func (d *Downloader) FetchFiltered(ctx context.Context, url, destDir string, suffixes []string) ([]string, error) {
	spool, err := os.CreateTemp("", "gmm_fetch_*.zip")
	if err != nil {
		return nil, NewDownloadError(err, url, 0)
	}
	spoolPath := spool.Name()
	spool.Close()
	defer os.Remove(spoolPath)

	if err := d.Download(ctx, url, spoolPath); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(spoolPath)
	if err != nil {
		return nil, NewExtractionError(err, url, destDir)
	}
	defer zr.Close()

	var extracted []string
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !matchesSuffix(entry.Name, suffixes) {
			continue
		}

		name := filepath.Base(filepath.FromSlash(entry.Name))
		if err := writeZipEntry(entry, filepath.Join(destDir, name)); err != nil {
			return extracted, NewExtractionError(err, url, destDir)
		}
		extracted = append(extracted, name)
	}

	return extracted, nil
}

// ExtractAll extracts every regular-file entry of the zip archive into
// destDir, preserving the entry paths, and returns the relative paths written.
// Entries that would escape destDir fail the extraction.
func (d *Downloader) ExtractAll(archivePath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewFileNotFoundError(archivePath)
		}
		return nil, NewExtractionError(err, archivePath, destDir)
	}
	defer zr.Close()

	var files []string
	for _, entry := range zr.File {
		rel := filepath.Clean(filepath.FromSlash(entry.Name))
		if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			return files, NewPathTraversalError(entry.Name)
		}

		target := filepath.Join(destDir, rel)
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, NewExtractionError(err, archivePath, destDir)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return files, NewExtractionError(err, archivePath, destDir)
		}
		if err := writeZipEntry(entry, target); err != nil {
			return files, NewExtractionError(err, archivePath, destDir)
		}
		files = append(files, rel)
	}

	return files, nil
}

func matchesSuffix(entryName string, suffixes []string) bool {
	lower := strings.ToLower(entryName)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func writeZipEntry(entry *zip.File, target string) error {
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
