package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	goversion "github.com/hashicorp/go-version"
)

const (
	// GitHub API endpoint for the latest release
	githubReleasesAPI = "https://api.github.com/repos/stashdata/stash/releases/latest"

	// Cache file for version check (avoid checking too frequently)
	versionCacheFile = ".stash/version_cache.json"

	// Only check once per day
	cacheDuration = 24 * time.Hour
)

// VersionCache stores the cached version check result
type VersionCache struct {
	LatestVersion string    `json:"latestVersion"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// githubRelease is the slice of the release response we care about
type githubRelease struct {
	TagName string `json:"tag_name"` // e.g., "v1.4.2"
}

// CheckForUpdate checks if a newer version is available.
// Returns (latestVersion, updateAvailable, error).
func CheckForUpdate(ctx context.Context) (latestVersion string, updateAvailable bool, err error) {
	// Dev builds have nothing meaningful to compare against
	if Version == "dev" {
		return "", false, nil
	}

	if cached, ok := getCachedVersion(); ok {
		return compareVersions(cached)
	}

	latest, err := fetchLatestVersion(ctx)
	if err != nil {
		// A failed check never fails the command; the notification is
		// just skipped.
		//nolint:nilerr
		return "", false, nil
	}

	cacheVersion(latest)

	return compareVersions(latest)
}

// compareVersions compares current version with latest
func compareVersions(latestVersion string) (string, bool, error) {
	current, err := goversion.NewVersion(strings.TrimPrefix(Version, "v"))
	if err != nil {
		return latestVersion, false, fmt.Errorf("invalid current version: %w", err)
	}

	latest, err := goversion.NewVersion(strings.TrimPrefix(latestVersion, "v"))
	if err != nil {
		return latestVersion, false, fmt.Errorf("invalid latest version: %w", err)
	}

	return latestVersion, latest.GreaterThan(current), nil
}

// fetchLatestVersion fetches the latest release tag from the GitHub API,
// retrying once on transient failures.
func fetchLatestVersion(ctx context.Context) (string, error) {
	client := &http.Client{
		Timeout: 3 * time.Second, // don't hold up the real command
	}

	var tag string
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, "GET", githubReleasesAPI, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			// GitHub API requires a User-Agent
			req.Header.Set("User-Agent", "stash-cli")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			//nolint:errcheck // Deferred close, error not actionable
			defer resp.Body.Close()

			if resp.StatusCode != 200 {
				return fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			var release githubRelease
			if err := json.Unmarshal(body, &release); err != nil {
				return retry.Unrecoverable(err)
			}

			tag = release.TagName
			return nil
		},
		retry.Attempts(2),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return "", err
	}

	return tag, nil
}

// getCachedVersion retrieves the cached version check result
func getCachedVersion() (string, bool) {
	cachePath, ok := versionCachePath()
	if !ok {
		return "", false
	}

	data, err := os.ReadFile(cachePath) //nolint:gosec // Cache file in user's home directory
	if err != nil {
		return "", false
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return "", false
	}

	if time.Since(cache.CheckedAt) > cacheDuration {
		return "", false
	}

	return cache.LatestVersion, true
}

// cacheVersion stores the version check result, best effort
func cacheVersion(latestVersion string) {
	cachePath, ok := versionCachePath()
	if !ok {
		return
	}

	cache := VersionCache{
		LatestVersion: latestVersion,
		CheckedAt:     time.Now(),
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o700); err != nil {
		return
	}

	_ = os.WriteFile(cachePath, data, 0o600)
}

func versionCachePath() (string, bool) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(homeDir, versionCacheFile), true
}

// PrintUpdateNotification prints an update notification if one is available.
// Respects the user's config preference for skipping version checks.
func PrintUpdateNotification(ctx context.Context, skipVersionCheck bool) {
	if skipVersionCheck {
		return
	}

	latestVersion, updateAvailable, err := CheckForUpdate(ctx)
	if err != nil || !updateAvailable {
		return
	}

	fmt.Fprintf(os.Stderr, "A new version of stash is available: %s (you have %s)\n", latestVersion, Version)
	fmt.Fprintf(os.Stderr, "Download: https://github.com/stashdata/stash/releases/latest\n")
	fmt.Fprintf(os.Stderr, "To disable these notifications: stash config set skipversioncheck true\n")
}
