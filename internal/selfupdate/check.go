// Package selfupdate checks the installer's release feed for newer builds
// and decides whether this installation can replace itself in place.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/platform"
	"github.com/larkspur-suite/larkspur-installer/internal/version"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}
var retryDelay = 250 * time.Millisecond

const fetchFeedRetryCount = 1

// PlatformAsset is one downloadable installer build in the feed.
type PlatformAsset struct {
	URL string `json:"url"`
}

// feed is the latest.json document published alongside releases.
type feed struct {
	Version   string                   `json:"version"`
	Platforms map[string]PlatformAsset `json:"platforms"`
}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
	// DownloadURL is the installer asset for this platform, empty when the
	// feed publishes none.
	DownloadURL string
}

// Check fetches the update feed from endpoint and compares it to
// currentVersion. Dev builds are never reported as outdated.
func Check(ctx context.Context, endpoint, currentVersion string, plat platform.Platform) (CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	current, isDev, err := normalizeCurrentVersion(currentVersion)
	if err != nil {
		return CheckResult{}, err
	}

	doc, err := fetchFeed(ctx, endpoint)
	if err != nil {
		return CheckResult{}, err
	}
	latest, err := version.Normalize(doc.Version)
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateInvalidFeedVersionFmt, doc.Version, err)
	}

	result := CheckResult{
		Current:      current,
		Latest:       latest,
		CurrentIsDev: isDev,
	}
	if asset, ok := doc.Platforms[string(plat)]; ok {
		result.DownloadURL = asset.URL
	}
	if !isDev {
		cur, err := semver.StrictNewVersion(current)
		if err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, current, err)
		}
		lat, err := semver.StrictNewVersion(latest)
		if err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateInvalidFeedVersionFmt, latest, err)
		}
		result.Outdated = cur.LessThan(lat)
	}
	return result, nil
}

// fetchFeed retrieves and decodes the latest.json document, retrying once
// on transient transport errors and server-side failures.
func fetchFeed(ctx context.Context, endpoint string) (*feed, error) {
	for attempt := 0; attempt <= fetchFeedRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "larkspur-installer")

		resp, err := httpClient.Do(req)
		if err != nil {
			if shouldRetryFeedFetch(err, 0, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.UpdateFetchFeedErrFmt, err)
		}

		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetryFeedFetch(nil, status, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.UpdateFetchFeedStatusFmt, statusText)
		}

		var doc feed
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf(messages.UpdateDecodeFeedErrFmt, err)
		}
		_ = resp.Body.Close()
		if strings.TrimSpace(doc.Version) == "" {
			return nil, fmt.Errorf(messages.UpdateFeedMissingVersion)
		}
		return &doc, nil
	}

	return nil, fmt.Errorf(messages.UpdateFetchFeedErrFmt, errors.New("retry budget exhausted"))
}

func shouldRetryFeedFetch(err error, statusCode int, attempt int) bool {
	if attempt >= fetchFeedRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}

// normalizeCurrentVersion validates the current version and reports dev builds.
func normalizeCurrentVersion(raw string) (string, bool, error) {
	if version.IsDev(raw) {
		return version.Dev, true, nil
	}
	normalized, err := version.Normalize(raw)
	if err != nil {
		return "", false, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, raw, err)
	}
	return normalized, false, nil
}

// executablePath is a seam for tests.
var executablePath = os.Executable

// CanAutoUpdate reports whether this installation can replace its own
// binary. On Windows only machine-wide installs under Program Files are
// serviced; on Linux only AppImage bundles carry the relaunch hook; Mac
// bundles always can.
func CanAutoUpdate(plat platform.Platform) bool {
	switch plat {
	case platform.Windows:
		exe, err := executablePath()
		if err != nil {
			return false
		}
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			return false
		}
		return strings.HasPrefix(strings.ToLower(exe), strings.ToLower(programFiles))
	case platform.Linux:
		return os.Getenv("APPIMAGE") != ""
	default:
		return true
	}
}
