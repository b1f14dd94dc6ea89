package installer

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/manifest"
	"github.com/larkspur-suite/larkspur-installer/internal/state"
)

// sentinelVersionString is what offline listings report as the remote
// version: nothing resolvable.
const sentinelVersionString = "0.0.0"

// ProductStatus is the per-product view the command surface renders.
type ProductStatus struct {
	ID          string
	Name        string
	Description string
	Icon        *string
	// LocalVersion is the installed version, when installed.
	LocalVersion *string
	// RemoteVersion is the latest release-channel version, 0.0.0 when none.
	RemoteVersion string
	// RemoteVersionPrerelease is the latest version including prereleases.
	RemoteVersionPrerelease string
	// HasOSMatch reports a release-channel artifact for this platform.
	HasOSMatch bool
	// HasOSMatchPrerelease is HasOSMatch for the prerelease channel.
	HasOSMatchPrerelease bool
	// CanStart reports a recorded executable for the installed product.
	CanStart bool
	// AllowPrerelease is the stored per-product channel preference.
	AllowPrerelease bool
}

// Result is the outcome of a catalog load.
type Result struct {
	// Offline is set when the listing was synthesized from local install
	// records instead of a fetched manifest.
	Offline  bool
	Products []ProductStatus
}

// LoadManifest refreshes the install state from disk and fetches the
// catalog, building the per-product status list. When offline (configured,
// or the fetch transport fails) the listing is synthesized from installed
// products alone and installs are unavailable until a manifest loads.
func (s *Service) LoadManifest(ctx context.Context) (*Result, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	in, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.install = in

	if s.workOffline {
		log.Info("working offline by configuration")
		return offlineResult(in), nil
	}

	m, err := manifest.Fetch(ctx, s.httpClient, s.manifestURL)
	if err != nil {
		log.Warnf("manifest fetch failed, working offline: %v", err)
		return offlineResult(in), nil
	}
	s.setManifest(m)

	return &Result{Products: s.statuses(m, in)}, nil
}

func (s *Service) statuses(m *manifest.Manifest, in *state.Install) []ProductStatus {
	statuses := make([]ProductStatus, 0, len(m.Products))
	for i := range m.Products {
		prod := &m.Products[i]
		status := ProductStatus{
			ID:                      prod.ID,
			Name:                    prod.Name,
			Description:             prod.Description,
			Icon:                    prod.Icon,
			RemoteVersion:           prod.LatestVersion(false).String(),
			RemoteVersionPrerelease: prod.LatestVersion(true).String(),
			HasOSMatch:              prod.LatestArtifact(s.platform, false) != nil,
			HasOSMatchPrerelease:    prod.LatestArtifact(s.platform, true) != nil,
		}
		if rec, ok := in.Get(prod.ID); ok {
			status.LocalVersion = rec.Version
			status.CanStart = rec.MainExecutable != nil
			status.AllowPrerelease = rec.UsePrerelease
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// offlineResult lists only installed products, with the sentinel remote
// version and OS-match flags derived from the recorded executable.
func offlineResult(in *state.Install) *Result {
	result := &Result{Offline: true}
	for id, rec := range in.Products {
		if !rec.Installed() {
			continue
		}
		canStart := rec.MainExecutable != nil
		result.Products = append(result.Products, ProductStatus{
			ID:                      id,
			Name:                    rec.Name,
			Description:             rec.Description,
			Icon:                    rec.Icon,
			LocalVersion:            rec.Version,
			RemoteVersion:           sentinelVersionString,
			RemoteVersionPrerelease: sentinelVersionString,
			HasOSMatch:              canStart,
			HasOSMatchPrerelease:    canStart,
			CanStart:                canStart,
			AllowPrerelease:         rec.UsePrerelease,
		})
	}
	sort.Slice(result.Products, func(i, j int) bool {
		return result.Products[i].ID < result.Products[j].ID
	})
	return result
}
