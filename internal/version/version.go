// Package version handles build-version normalization for self-update checks.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// Dev is the placeholder version compiled into local builds.
const Dev = "dev"

// IsDev reports whether raw identifies a non-release build.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == Dev
}

// Normalize strips an optional leading "v" and validates the remainder as a
// semantic version, returning the canonical string form.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	v, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw, err)
	}
	return v.String(), nil
}
