package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// ErrCorrupt reports a state file that exists but cannot be parsed. This is
// unrecoverable corruption requiring operator intervention, not a soft
// error: silently replacing the file would lose install records.
var ErrCorrupt = errors.New(messages.StateCorrupt)

// Store loads and saves the install structure at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the install structure. A missing file is initialized with an
// empty structure and re-read, so every successful Load is backed by a file
// that subsequent saves will succeed against. An unparseable file fails
// with ErrCorrupt.
func (s *Store) Load() (*Install, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("creating install state file at %s", s.path)
		if err := s.Save(NewInstall()); err != nil {
			return nil, err
		}
		if data, err = os.ReadFile(s.path); err != nil {
			return nil, fmt.Errorf(messages.StateReadFmt, s.path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf(messages.StateReadFmt, s.path, err)
	}

	var in Install
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if in.Products == nil {
		in.Products = make(map[string]*InstalledProduct)
	}
	return &in, nil
}

// Save serializes the whole structure and atomically replaces the backing
// file (write to a temp file in the same directory, then rename), so a
// crash mid-write never truncates the previous valid file.
func (s *Store) Save(in *Install) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf(messages.StateWriteFmt, s.path, err)
	}
	committed = true
	return nil
}
