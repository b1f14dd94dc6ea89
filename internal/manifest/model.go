// Package manifest defines the remote product catalog and the version and
// artifact resolution rules applied to it.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/platform"
)

// Manifest is the fetched catalog snapshot listing every installable product.
type Manifest struct {
	// LatestInstallerVersion advertises the newest installer binary.
	LatestInstallerVersion *semver.Version `json:"latest_installer_version"`
	Products               []Product       `json:"products"`
}

// Validate checks manifest invariants after decoding.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Products))
	for _, p := range m.Products {
		if p.ID == "" {
			return fmt.Errorf(messages.ManifestProductMissingID)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf(messages.ManifestDuplicateProductFmt, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Product finds a product by id, or nil when absent.
func (m *Manifest) Product(id string) *Product {
	for i := range m.Products {
		if m.Products[i].ID == id {
			return &m.Products[i]
		}
	}
	return nil
}

// Product is one independently versioned entry in the catalog.
type Product struct {
	// ID is a stable opaque identifier, never reused for a different product.
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Icon is an optional base64-encoded 64x64 image.
	Icon *string `json:"icon,omitempty"`
	// InstallDirectory is the per-product directory fragment under the
	// install root. It doubles as the uninstall target, so it must be
	// unique per product.
	InstallDirectory string           `json:"install_directory"`
	Removals         []Removal        `json:"removals"`
	Versions         []ProductVersion `json:"versions"`
}

// ProductVersion is one published version of a product with its
// per-platform downloads.
type ProductVersion struct {
	Version *semver.Version `json:"version"`
	// Downloads is keyed by platform tag (windows, mac, mac-intel, linux).
	// Absent slots mean the version does not ship for that platform.
	Downloads map[string]*DownloadSpec `json:"downloads"`
}

// Download returns the download slot for a platform, or nil when the
// version does not ship for it.
func (pv *ProductVersion) Download(p platform.Platform) *DownloadSpec {
	return pv.Downloads[p.String()]
}

// DownloadSpec describes one downloadable artifact and how it installs.
type DownloadSpec struct {
	URL      string   `json:"url"`
	Strategy Strategy `json:"strategy"`
	// Executable is the relative path to the product entry point once
	// installed, when the product can be started.
	Executable *string `json:"executable,omitempty"`
}

// Removal gates cleanup of files that newer versions no longer ship.
type Removal struct {
	// OnUpgradeFrom restricts the rule to upgrades from matching versions.
	OnUpgradeFrom VersionRange `json:"on_upgrade_from"`
	// On restricts the rule to the named platform tags. Absent means all
	// platforms; an explicitly empty list matches none.
	On []string `json:"on,omitempty"`
	// Files are relative paths under the install directory to delete
	// before re-extraction.
	Files []string `json:"files"`
}

// AppliesTo reports whether the rule fires when upgrading from installed on
// platform p.
func (r *Removal) AppliesTo(installed *semver.Version, p platform.Platform) bool {
	if installed == nil || !r.OnUpgradeFrom.Matches(installed) {
		return false
	}
	if r.On == nil {
		return true
	}
	return p.Matches(r.On)
}

// VersionRange is a semver range predicate decoded from its string form.
type VersionRange struct {
	constraints *semver.Constraints
}

// MustRange parses a range or panics. For fixtures and tests.
func MustRange(s string) VersionRange {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return VersionRange{constraints: c}
}

// Matches reports whether v satisfies the range. An unset range matches
// nothing.
func (r VersionRange) Matches(v *semver.Version) bool {
	if r.constraints == nil || v == nil {
		return false
	}
	return r.constraints.Check(v)
}

func (r VersionRange) String() string {
	if r.constraints == nil {
		return ""
	}
	return r.constraints.String()
}

// UnmarshalJSON decodes a range from its JSON string form.
func (r *VersionRange) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf(messages.ManifestInvalidRangeFmt, string(data), err)
	}
	c, err := semver.NewConstraint(raw)
	if err != nil {
		return fmt.Errorf(messages.ManifestInvalidRangeFmt, raw, err)
	}
	r.constraints = c
	return nil
}
