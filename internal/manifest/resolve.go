package manifest

import (
	"github.com/Masterminds/semver/v3"

	"github.com/larkspur-suite/larkspur-installer/internal/platform"
)

// sentinelVersion means "no version resolvable". Callers must never treat
// it as a shippable version; artifact presence distinguishes "not published"
// from "not available for this platform".
func sentinelVersion() *semver.Version {
	return semver.New(0, 0, 0, "", "")
}

// LatestVersion returns the highest version of the product by semver
// precedence. Prerelease versions only participate when allowPrerelease is
// set. When no version qualifies the 0.0.0 sentinel is returned.
//
// Versions that are textually different but compare equal (build-metadata
// differences only) resolve non-deterministically; the manifest is expected
// not to publish such pairs.
func (p *Product) LatestVersion(allowPrerelease bool) *semver.Version {
	latest := sentinelVersion()
	for i := range p.Versions {
		v := p.Versions[i].Version
		if v == nil {
			continue
		}
		if !allowPrerelease && v.Prerelease() != "" {
			continue
		}
		if v.GreaterThan(latest) {
			latest = v
		}
	}
	return latest
}

// LatestArtifact returns the download spec of the resolved latest version
// for the given platform. It returns nil when the latest version has no
// slot for that platform, even if other platforms have artifacts, and when
// nothing resolves at all.
func (p *Product) LatestArtifact(plat platform.Platform, allowPrerelease bool) *DownloadSpec {
	latest := p.LatestVersion(allowPrerelease)
	for i := range p.Versions {
		pv := &p.Versions[i]
		if pv.Version != nil && pv.Version.Equal(latest) {
			return pv.Download(plat)
		}
	}
	return nil
}
