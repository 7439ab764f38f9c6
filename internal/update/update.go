// SPDX-License-Identifier: Apache-2.0

// Package update checks the project's GitHub releases for a newer build and
// downloads it on request.
package update

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/automa-saga/logx"
	"github.com/pkg/errors"

	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/internal/version"
	"github.com/gmm-app/gmm/pkg/software"
)

const (
	repoOwner     = "gmm-app"
	repoName      = "gmm"
	defaultAPIURL = "https://api.github.com/repos/" + repoOwner + "/" + repoName + "/releases"
)

// Release is the subset of the GitHub release document the checker needs.
type Release struct {
	TagName    string    `json:"tag_name"`
	Name       string    `json:"name"`
	Prerelease bool      `json:"prerelease"`
	Draft      bool      `json:"draft"`
	HTMLURL    string    `json:"html_url"`
	Published  time.Time `json:"published_at"`
	Assets     []Asset   `json:"assets"`
}

// Asset is one downloadable artifact of a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	CurrentVersion  string `json:"currentVersion" yaml:"currentVersion"`
	LatestVersion   string `json:"latestVersion" yaml:"latestVersion"`
	UpdateAvailable bool   `json:"updateAvailable" yaml:"updateAvailable"`
	ReleaseURL      string `json:"releaseUrl,omitempty" yaml:"releaseUrl,omitempty"`
	AssetName       string `json:"assetName,omitempty" yaml:"assetName,omitempty"`
	AssetURL        string `json:"assetUrl,omitempty" yaml:"assetUrl,omitempty"`
}

// Checker queries the release feed and downloads release assets.
type Checker struct {
	client     *http.Client
	apiURL     string
	downloader *software.Downloader
}

// NewChecker creates a Checker against the project's GitHub release feed.
func NewChecker() *Checker {
	return NewCheckerWithURL(defaultAPIURL)
}

// NewCheckerWithURL creates a Checker against a custom release feed.
func NewCheckerWithURL(apiURL string) *Checker {
	return &Checker{
		client:     &http.Client{Timeout: 45 * time.Second},
		apiURL:     apiURL,
		downloader: software.NewDownloader(),
	}
}

// Check fetches the newest stable release and compares it against the running
// build. Draft and pre-release entries are skipped.
func (c *Checker) Check(ctx context.Context) (*CheckResult, error) {
	release, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{CurrentVersion: version.Number()}
	if release == nil {
		result.LatestVersion = result.CurrentVersion
		return result, nil
	}

	latest, err := semver.NewVersion(strings.TrimPrefix(release.TagName, "v"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse release tag %q", release.TagName)
	}

	current, err := semver.NewVersion(result.CurrentVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse running version %q", result.CurrentVersion)
	}

	result.LatestVersion = latest.String()
	result.ReleaseURL = release.HTMLURL
	result.UpdateAvailable = latest.GreaterThan(current)
	if asset := pickAsset(release.Assets); asset != nil {
		result.AssetName = asset.Name
		result.AssetURL = asset.BrowserDownloadURL
	}

	return result, nil
}

// Perform downloads the update asset into the downloads directory and returns
// the local path. Applying the update stays a manual step.
func (c *Checker) Perform(ctx context.Context, result *CheckResult) (string, error) {
	if result == nil || !result.UpdateAvailable {
		return "", errors.New("no update available to perform")
	}
	if result.AssetURL == "" {
		return "", errors.Errorf("release %s carries no downloadable asset", result.LatestVersion)
	}

	downloadsDir := core.Paths().DownloadsDir
	if err := os.MkdirAll(downloadsDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create downloads directory")
	}

	destination := filepath.Join(downloadsDir, result.AssetName)
	if err := c.downloader.Download(ctx, result.AssetURL, destination); err != nil {
		return "", err
	}

	logx.As().Info().Str("path", destination).Str("version", result.LatestVersion).
		Msg("Downloaded update package")
	return destination, nil
}

func (c *Checker) latestRelease(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?per_page=20", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build release feed request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query release feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("release feed returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, errors.Wrap(err, "failed to decode release feed")
	}

	for i := range releases {
		if releases[i].Draft || releases[i].Prerelease {
			continue
		}
		return &releases[i], nil
	}
	return nil, nil
}

// pickAsset prefers a zip asset, falling back to the first asset listed.
func pickAsset(assets []Asset) *Asset {
	for i := range assets {
		if strings.HasSuffix(strings.ToLower(assets[i].Name), ".zip") {
			return &assets[i]
		}
	}
	if len(assets) > 0 {
		return &assets[0]
	}
	return nil
}
