// Package platform identifies the running OS/architecture pair used for
// artifact selection, removal gating, and permission handling.
package platform

import (
	"fmt"
	"runtime"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// Platform is the manifest download-slot tag for an OS/architecture pair.
type Platform string

const (
	// Windows covers all supported Windows architectures.
	Windows Platform = "windows"
	// Mac is Apple Silicon macOS.
	Mac Platform = "mac"
	// MacIntel is x86_64 macOS.
	MacIntel Platform = "mac-intel"
	// Linux covers all supported Linux architectures.
	Linux Platform = "linux"
)

// Detect returns the Platform for the running process.
func Detect() (Platform, error) {
	return FromStrings(runtime.GOOS, runtime.GOARCH)
}

// FromStrings maps a GOOS/GOARCH pair onto a manifest platform tag.
// macOS is split by architecture because the manifest carries separate
// mac and mac-intel download slots.
func FromStrings(goos, goarch string) (Platform, error) {
	switch goos {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin":
		switch goarch {
		case "arm64":
			return Mac, nil
		case "amd64":
			return MacIntel, nil
		default:
			return "", fmt.Errorf(messages.PlatformUnsupportedArchFmt, goos, goarch)
		}
	default:
		return "", fmt.Errorf(messages.PlatformUnsupportedOSFmt, goos)
	}
}

// IsPOSIX reports whether the platform has an execute-bit concept, so chmod
// requests in download specs are honored.
func (p Platform) IsPOSIX() bool {
	return p != Windows
}

// Matches reports whether p is named in a removal rule's platform tag set.
func (p Platform) Matches(tags []string) bool {
	for _, tag := range tags {
		if tag == string(p) {
			return true
		}
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}
