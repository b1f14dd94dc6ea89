package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/archive"
	"github.com/larkspur-suite/larkspur-installer/internal/manifest"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// Install installs or upgrades one product. Re-entering while already
// installed is the upgrade path: removal rules gated on the currently
// installed version run before re-extraction so stale files do not linger.
//
// Failures after extraction has begun leave already-written files in place
// and the recorded state untouched; re-running the install recovers.
func (s *Service) Install(ctx context.Context, id string) error {
	m, err := s.currentManifest()
	if err != nil {
		return err
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	prod := m.Product(id)
	if prod == nil {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	in, err := s.ensureInstallLocked()
	if err != nil {
		return err
	}
	rec := in.GetOrCreate(id)

	installDir := s.paths.ProductDir(prod.InstallDirectory)
	log.Infof("installing %s to %s", id, installDir)

	current, err := installedVersion(rec.Version)
	if err != nil {
		return err
	}
	target := prod.LatestVersion(rec.UsePrerelease)
	log.Debugf("local version %v, remote version %s", rec.Version, target)

	artifact := prod.LatestArtifact(s.platform, rec.UsePrerelease)
	if artifact == nil {
		return fmt.Errorf("%w: %s", ErrNoArtifact, id)
	}

	if current != nil {
		s.applyRemovals(prod, current, installDir)
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallerCreateDirFmt, installDir, err)
	}

	tempDir, err := os.MkdirTemp("", "lsi-download-*")
	if err != nil {
		return fmt.Errorf(messages.InstallerTempDirFmt, err)
	}
	defer func() {
		logBestEffort("remove temp dir", tempDir, os.RemoveAll(tempDir))
	}()

	artifactPath := filepath.Join(tempDir, "artifact")
	if err := s.downloader.ToFile(ctx, artifact.URL, artifactPath); err != nil {
		return err
	}

	if err := s.applyStrategy(ctx, artifact, artifactPath, installDir); err != nil {
		return err
	}

	log.Infof("install of %s %s complete, saving state", id, target)
	rec.Name = prod.Name
	rec.Description = prod.Description
	rec.Icon = prod.Icon
	versionStr := target.String()
	rec.Version = &versionStr
	recDir := installDir
	rec.InstallDirectory = &recDir
	if artifact.Executable != nil {
		exe := filepath.Join(installDir, filepath.FromSlash(*artifact.Executable))
		rec.MainExecutable = &exe
		workDir := installDir
		rec.ExecuteWorkingDirectory = &workDir
	}
	return s.store.Save(in)
}

// installedVersion parses the recorded version string, nil when absent.
func installedVersion(raw *string) (*semver.Version, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := semver.NewVersion(*raw)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallerBadRecordedVersionFmt, *raw, err)
	}
	return v, nil
}

// applyRemovals deletes the files of every matching removal rule under the
// install directory. Missing files are not errors, and individual failures
// are reported but do not abort the install.
func (s *Service) applyRemovals(prod *manifest.Product, current *semver.Version, installDir string) {
	for i := range prod.Removals {
		rule := &prod.Removals[i]
		if !rule.AppliesTo(current, s.platform) {
			continue
		}
		log.Debugf("removal rule %q applies to installed version %s", rule.OnUpgradeFrom, current)
		for _, rel := range rule.Files {
			path := filepath.Join(installDir, filepath.FromSlash(rel))
			info, err := os.Lstat(path)
			if err != nil {
				continue
			}
			if info.IsDir() {
				log.Debugf("removing directory %s", path)
				logBestEffort("remove directory", path, os.RemoveAll(path))
			} else {
				log.Debugf("removing file %s", path)
				logBestEffort("remove file", path, os.Remove(path))
			}
		}
	}
}

// applyStrategy turns the downloaded artifact into installed files.
func (s *Service) applyStrategy(ctx context.Context, artifact *manifest.DownloadSpec, artifactPath, installDir string) error {
	switch artifact.Strategy.Kind {
	case manifest.StrategyFile:
		return s.installFile(artifact.Strategy.File, artifactPath, installDir)
	case manifest.StrategyZipFile:
		if err := archive.ExtractZip(artifactPath, installDir); err != nil {
			return fmt.Errorf(messages.InstallerExtractFmt, err)
		}
		return nil
	case manifest.StrategyGzippedTarball:
		if err := archive.ExtractTarGz(artifactPath, installDir); err != nil {
			return fmt.Errorf(messages.InstallerExtractFmt, err)
		}
		return nil
	case manifest.StrategyMsi:
		return runMsiInstaller(ctx, artifactPath, artifact.Strategy.Msi.ProductCode)
	default:
		return fmt.Errorf(messages.InstallerUnknownStrategyFmt, artifact.Strategy.Kind)
	}
}

// installFile copies the downloaded bytes to their target name, granting
// owner-execute when requested on platforms that have an execute bit.
func (s *Service) installFile(spec *manifest.FileStrategy, artifactPath, installDir string) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf(messages.InstallerFileNameRequired)
	}
	target := filepath.Join(installDir, spec.Name)

	src, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf(messages.InstallerCopyFileFmt, target, err)
	}
	defer func() {
		_ = src.Close()
	}()
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf(messages.InstallerCopyFileFmt, target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf(messages.InstallerCopyFileFmt, target, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf(messages.InstallerCopyFileFmt, target, err)
	}

	if spec.Chmod && s.platform.IsPOSIX() {
		log.Debugf("granting execute permission on %s", target)
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf(messages.InstallerChmodFmt, target, err)
		}
		if err := os.Chmod(target, info.Mode().Perm()|0o100); err != nil {
			return fmt.Errorf(messages.InstallerChmodFmt, target, err)
		}
	}
	return nil
}
