package installer

import (
	"fmt"

	"github.com/larkspur-suite/larkspur-installer/internal/envfile"
	"github.com/larkspur-suite/larkspur-installer/internal/launch"
)

// startFunc is a seam for tests.
var startFunc = launch.Start

// Start launches an installed product as a detached process in its
// recorded working directory, merging in environment variables from the
// shared .env file when present.
func (s *Service) Start(id string) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	in, err := s.ensureInstallLocked()
	if err != nil {
		return err
	}
	rec, ok := in.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if rec.MainExecutable == nil {
		return fmt.Errorf("%w: %s", ErrNotStartable, id)
	}

	extraEnv, err := envfile.ParseFile(s.paths.EnvFile)
	if err != nil {
		return err
	}

	workDir := s.paths.InstallRoot
	if rec.ExecuteWorkingDirectory != nil {
		workDir = *rec.ExecuteWorkingDirectory
	}
	return startFunc(*rec.MainExecutable, workDir, extraEnv)
}
