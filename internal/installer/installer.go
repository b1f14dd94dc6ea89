// Package installer orchestrates product install, upgrade, and removal:
// it resolves the target version and artifact from the manifest, applies
// version-gated removal rules, delegates extraction, and keeps the install
// state store current.
package installer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/config"
	"github.com/larkspur-suite/larkspur-installer/internal/manifest"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/platform"
	"github.com/larkspur-suite/larkspur-installer/internal/state"
)

// Sentinel errors for the user-visible failure taxonomy.
var (
	// ErrProductNotFound reports an id the current manifest does not list.
	ErrProductNotFound = errors.New(messages.InstallerProductNotFound)
	// ErrNoArtifact reports a product with no download for this platform.
	ErrNoArtifact = errors.New(messages.InstallerNoArtifact)
	// ErrNoManifest reports an operation that needs a manifest before one
	// was loaded (or while working offline).
	ErrNoManifest = errors.New(messages.InstallerNoManifest)
	// ErrNotStartable reports a product with no recorded executable.
	ErrNotStartable = errors.New(messages.InstallerNotStartable)
)

// Downloader fetches an artifact in full to a local file.
type Downloader interface {
	ToFile(ctx context.Context, url, dstFile string) error
}

// Options configures a Service.
type Options struct {
	Store       *state.Store
	Paths       config.Paths
	Platform    platform.Platform
	Downloader  Downloader
	ManifestURL string
	// HTTPClient is used for the manifest fetch; nil uses the manifest
	// package default.
	HTTPClient *http.Client
	// WorkOffline skips the manifest fetch and serves listings from the
	// install state alone.
	WorkOffline bool
}

// Service owns one in-memory manifest snapshot and one install-state
// snapshot. Each shared resource has its own lock; operations run to
// completion under the state lock so changes never interleave.
type Service struct {
	store       *state.Store
	paths       config.Paths
	platform    platform.Platform
	downloader  Downloader
	manifestURL string
	httpClient  *http.Client
	workOffline bool

	manifestMu sync.Mutex
	manifest   *manifest.Manifest

	stateMu sync.Mutex
	install *state.Install
}

// New validates opts and returns a Service.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf(messages.InstallerStoreRequired)
	}
	if opts.Downloader == nil {
		return nil, fmt.Errorf(messages.InstallerDownloaderRequired)
	}
	if opts.Platform == "" {
		return nil, fmt.Errorf(messages.InstallerPlatformRequired)
	}
	return &Service{
		store:       opts.Store,
		paths:       opts.Paths,
		platform:    opts.Platform,
		downloader:  opts.Downloader,
		manifestURL: opts.ManifestURL,
		httpClient:  opts.HTTPClient,
		workOffline: opts.WorkOffline,
	}, nil
}

// ensureInstallLocked loads the install state on first use. Callers hold
// stateMu.
func (s *Service) ensureInstallLocked() (*state.Install, error) {
	if s.install != nil {
		return s.install, nil
	}
	in, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.install = in
	return in, nil
}

// currentManifest returns the loaded manifest snapshot, or ErrNoManifest.
func (s *Service) currentManifest() (*manifest.Manifest, error) {
	s.manifestMu.Lock()
	defer s.manifestMu.Unlock()
	if s.manifest == nil {
		return nil, ErrNoManifest
	}
	return s.manifest, nil
}

func (s *Service) setManifest(m *manifest.Manifest) {
	s.manifestMu.Lock()
	s.manifest = m
	s.manifestMu.Unlock()
}

// Platform returns the platform the service resolves artifacts for.
func (s *Service) Platform() platform.Platform {
	return s.platform
}

// Paths returns the resolved filesystem locations in use.
func (s *Service) Paths() config.Paths {
	return s.paths
}

func logBestEffort(action, path string, err error) {
	if err != nil {
		log.Warnf("%s %s: %v", action, path, err)
	}
}
