package manifest

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larkspur-suite/larkspur-installer/internal/platform"
)

func versionEntry(v string, platforms ...string) ProductVersion {
	downloads := make(map[string]*DownloadSpec, len(platforms))
	for _, p := range platforms {
		downloads[p] = &DownloadSpec{
			URL:      "https://dl.example.com/" + v + "-" + p,
			Strategy: Strategy{Kind: StrategyGzippedTarball},
		}
	}
	return ProductVersion{Version: semver.MustParse(v), Downloads: downloads}
}

func TestLatestVersion_EmptyList(t *testing.T) {
	p := Product{ID: "p"}
	assert.Equal(t, "0.0.0", p.LatestVersion(false).String())
	assert.Equal(t, "0.0.0", p.LatestVersion(true).String())
}

func TestLatestVersion_FiltersPrereleases(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("1.0.0", "linux"),
		versionEntry("1.1.0-beta", "linux"),
	}}

	assert.Equal(t, "1.0.0", p.LatestVersion(false).String())
	assert.Equal(t, "1.1.0-beta", p.LatestVersion(true).String())
}

func TestLatestVersion_OnlyPrereleases(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("0.1.0-rc.1", "linux"),
	}}

	assert.Equal(t, "0.0.0", p.LatestVersion(false).String())
	assert.Equal(t, "0.1.0-rc.1", p.LatestVersion(true).String())
}

func TestLatestVersion_NeverReturnsPrereleaseWhenDisallowed(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("2.0.0-alpha", "linux"),
		versionEntry("1.9.0", "linux"),
		versionEntry("2.0.0-beta.2", "linux"),
		versionEntry("1.8.0", "linux"),
	}}

	resolved := p.LatestVersion(false)
	assert.Empty(t, resolved.Prerelease())
	assert.Equal(t, "1.9.0", resolved.String())
}

func TestLatestVersion_SemverPrecedence(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("1.2.10", "linux"),
		versionEntry("1.10.0", "linux"),
		versionEntry("1.9.9", "linux"),
	}}

	assert.Equal(t, "1.10.0", p.LatestVersion(false).String())
}

func TestLatestArtifact(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("1.0.0", "linux", "windows"),
		versionEntry("2.0.0", "windows"),
	}}

	win := p.LatestArtifact(platform.Windows, false)
	require.NotNil(t, win)
	assert.Equal(t, "https://dl.example.com/2.0.0-windows", win.URL)

	// 2.0.0 is latest but ships no linux slot: unavailable for this OS even
	// though 1.0.0 had one.
	assert.Nil(t, p.LatestArtifact(platform.Linux, false))
}

func TestLatestArtifact_NoVersions(t *testing.T) {
	p := Product{ID: "empty"}
	assert.Nil(t, p.LatestArtifact(platform.Linux, false))
	assert.Nil(t, p.LatestArtifact(platform.Linux, true))
}

func TestLatestArtifact_PrereleaseChannel(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("1.0.0", "linux"),
		versionEntry("1.1.0-beta", "linux"),
	}}

	stable := p.LatestArtifact(platform.Linux, false)
	require.NotNil(t, stable)
	assert.Equal(t, "https://dl.example.com/1.0.0-linux", stable.URL)

	pre := p.LatestArtifact(platform.Linux, true)
	require.NotNil(t, pre)
	assert.Equal(t, "https://dl.example.com/1.1.0-beta-linux", pre.URL)
}

func TestLatestArtifact_MacArchSlots(t *testing.T) {
	p := Product{Versions: []ProductVersion{
		versionEntry("1.0.0", "mac"),
	}}

	assert.NotNil(t, p.LatestArtifact(platform.Mac, false))
	assert.Nil(t, p.LatestArtifact(platform.MacIntel, false))
}
