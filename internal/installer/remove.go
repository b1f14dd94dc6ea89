package installer

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/state"
)

// Remove deletes a product's entire install directory and clears its
// installed fields, keeping identity and the prerelease preference. A
// missing directory is not an error: the product may have been partially
// or manually removed already.
//
// Removal does not need the catalog: the install directory recorded at
// install time takes precedence, so removing offline works. The catalog,
// when loaded, covers records from before the directory was recorded.
func (s *Service) Remove(id string) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	in, err := s.ensureInstallLocked()
	if err != nil {
		return err
	}

	installDir, err := s.removalDir(id, in)
	if err != nil {
		return err
	}

	if installDir != "" {
		log.Infof("removing %s", installDir)
		if err := os.RemoveAll(installDir); err != nil {
			log.Warnf("failed to delete directory %s: %v", installDir, err)
		}
	}

	rec := in.GetOrCreate(id)
	rec.ClearInstall()
	return s.store.Save(in)
}

// removalDir resolves the directory to delete for id: the recorded install
// directory when present, the catalog's otherwise. An id unknown to both is
// an error; a known record without a directory ("" return) still gets its
// installed fields cleared.
func (s *Service) removalDir(id string, in *state.Install) (string, error) {
	rec, known := in.Get(id)
	if known && rec.InstallDirectory != nil {
		return *rec.InstallDirectory, nil
	}
	if m, err := s.currentManifest(); err == nil {
		if prod := m.Product(id); prod != nil {
			return s.paths.ProductDir(prod.InstallDirectory), nil
		}
		if !known {
			return "", fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}
	if !known {
		return "", fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return "", nil
}

// SetPrerelease stores the prerelease-channel preference for a product and
// persists immediately. It does not re-resolve versions; the next catalog
// load recomputes them with the new preference.
func (s *Service) SetPrerelease(id string, allow bool) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	in, err := s.ensureInstallLocked()
	if err != nil {
		return err
	}

	log.Debugf("changing prerelease to %t for product %s", allow, id)
	in.GetOrCreate(id).UsePrerelease = allow
	return s.store.Save(in)
}
