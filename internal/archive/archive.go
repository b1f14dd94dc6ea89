// Package archive extracts downloaded product artifacts into their install
// directory, flattening the single wrapping directory that packaging tools
// commonly add (e.g. "myapp-v1.2.3/bin/...").
//
// Extraction reads from a file path rather than a one-shot stream: tarballs
// need a second pass after wrapper detection, and a file handle is the safe
// reopenable contract for that.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// ErrUnsafePath reports an archive entry whose resolved output path would
// escape the target directory.
var ErrUnsafePath = errors.New(messages.ArchiveUnsafePath)

// wrapperScan tracks the candidate wrapping directory across an entry walk.
//
// A directory seen before any candidate becomes the candidate. Every later
// entry must live under it; the first entry that does not (or a file seen
// before any directory) abandons detection for good.
type wrapperScan struct {
	candidate string
	abandoned bool
}

// observe feeds one entry to the scan. It returns true once the outcome is
// final and the caller may stop scanning.
func (w *wrapperScan) observe(name string, isDir bool) bool {
	if w.abandoned {
		return true
	}
	if isDir {
		dir := ensureSlash(name)
		if w.candidate == "" {
			w.candidate = dir
			return false
		}
		if strings.HasPrefix(dir, w.candidate) {
			return false
		}
		w.abandon()
		return true
	}
	if w.candidate != "" && strings.HasPrefix(name, w.candidate) {
		return false
	}
	w.abandon()
	return true
}

func (w *wrapperScan) abandon() {
	w.candidate = ""
	w.abandoned = true
}

// wrapper returns the confirmed wrapping directory (with trailing slash), or
// "" when none was detected.
func (w *wrapperScan) wrapper() string {
	if w.abandoned {
		return ""
	}
	return w.candidate
}

func ensureSlash(name string) string {
	if strings.HasSuffix(name, "/") {
		return name
	}
	return name + "/"
}

// stripWrapper maps an entry name to its output-relative path. The second
// return is false for entries that should be skipped: the wrapper directory
// itself, and anything outside a confirmed wrapper.
func stripWrapper(name, wrapper string) (string, bool) {
	if wrapper == "" {
		return name, true
	}
	if !strings.HasPrefix(name, wrapper) {
		// Either the wrapper entry itself without its trailing slash, or an
		// entry outside a confirmed wrapper; neither is content.
		return "", false
	}
	rel := strings.TrimPrefix(name, wrapper)
	if rel == "" {
		return "", false
	}
	return rel, true
}

// securePath resolves an entry name under dest, rejecting absolute names and
// parent traversal.
func securePath(dest, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) ||
		cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return filepath.Join(dest, cleaned), nil
}

// secureLinkTarget rejects symlink targets that resolve outside dest. The
// target is resolved relative to the link's own directory (linkPath must
// already be a vetted path under dest), so a link followed by entries routed
// through it cannot reach past the extraction root.
func secureLinkTarget(dest, linkPath, target string) error {
	t := filepath.FromSlash(target)
	if filepath.IsAbs(t) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, target)
	}
	resolved := filepath.Join(filepath.Dir(linkPath), t)
	rel, err := filepath.Rel(dest, resolved)
	if err != nil ||
		rel == ".." ||
		strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, target)
	}
	return nil
}
