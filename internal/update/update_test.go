// SPDX-License-Identifier: Apache-2.0

package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func serveReleases(t *testing.T, releases []Release) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(releases))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Test: a newer stable release is reported with its zip asset.
func TestCheckUpdateAvailable(t *testing.T) {
	srv := serveReleases(t, []Release{
		{TagName: "v99.0.0-rc.1", Prerelease: true},
		{
			TagName: "v99.0.0",
			HTMLURL: "https://example.com/releases/v99.0.0",
			Assets: []Asset{
				{Name: "gmm-99.0.0.sha256", BrowserDownloadURL: "https://example.com/sum"},
				{Name: "gmm-99.0.0.zip", BrowserDownloadURL: "https://example.com/gmm.zip"},
			},
		},
	})

	result, err := NewCheckerWithURL(srv.URL).Check(context.Background())
	require.NoError(t, err)
	require.True(t, result.UpdateAvailable)
	require.Equal(t, "99.0.0", result.LatestVersion)
	require.Equal(t, "gmm-99.0.0.zip", result.AssetName)
	require.Equal(t, "https://example.com/gmm.zip", result.AssetURL)
}

// Test: the running version being current means no update, and drafts and
// pre-releases never count as the latest release.
func TestCheckNoUpdate(t *testing.T) {
	srv := serveReleases(t, []Release{
		{TagName: "v100.0.0", Draft: true},
		{TagName: "v0.0.1"},
	})

	result, err := NewCheckerWithURL(srv.URL).Check(context.Background())
	require.NoError(t, err)
	require.False(t, result.UpdateAvailable)
	require.Equal(t, "0.0.1", result.LatestVersion)
}

// Test: an empty release feed reports the running version as latest.
func TestCheckEmptyFeed(t *testing.T) {
	srv := serveReleases(t, nil)

	result, err := NewCheckerWithURL(srv.URL).Check(context.Background())
	require.NoError(t, err)
	require.False(t, result.UpdateAvailable)
	require.Equal(t, result.CurrentVersion, result.LatestVersion)
}

// Test: a feed error surfaces instead of being treated as "no update".
func TestCheckFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := NewCheckerWithURL(srv.URL).Check(context.Background())
	require.Error(t, err)
}

// Test: Perform refuses to run without an available update.
func TestPerformWithoutUpdate(t *testing.T) {
	_, err := NewChecker().Perform(context.Background(), &CheckResult{UpdateAvailable: false})
	require.Error(t, err)
}
