package archive

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// ExtractZip extracts a zip archive at archivePath into dest, stripping a
// shared top-level directory like ExtractTarGz does. The central directory
// is seekable, so detection and extraction share one open archive.
func ExtractZip(archivePath, dest string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ArchiveCorruptFmt, err)
	}
	defer func() {
		_ = r.Close()
	}()

	wrapper := zipWrapper(r.File)
	if wrapper != "" {
		log.Debugf("stripping wrapper directory %q from zip", wrapper)
	}

	for _, f := range r.File {
		if err := extractZipEntry(f, wrapper, dest); err != nil {
			return err
		}
	}
	return nil
}

// zipWrapper detects the wrapping directory of a zip: the top-level directory
// name shared by every entry. Zip writers routinely omit directory entries, so
// the leading segment of a file entry's path counts as a directory sighting.
// A file at the top level means nothing wraps the content.
func zipWrapper(files []*zip.File) string {
	wrapper := ""
	for _, f := range files {
		seg, ok := zipLeadingSegment(f)
		if !ok {
			return ""
		}
		if wrapper == "" {
			wrapper = seg
			continue
		}
		if seg != wrapper {
			return ""
		}
	}
	return wrapper
}

// zipLeadingSegment returns the first path segment of an entry with its
// trailing slash. The second return is false for top-level file entries,
// which rule out any wrapper. Relative and absolute prefixes are not
// wrappers either; stripping them would hide a traversal attempt from the
// per-entry path check.
func zipLeadingSegment(f *zip.File) (string, bool) {
	if idx := strings.Index(f.Name, "/"); idx >= 0 {
		seg := f.Name[:idx+1]
		if seg == "/" || seg == "./" || seg == "../" {
			return "", false
		}
		return seg, true
	}
	if zipEntryIsDir(f) {
		return f.Name + "/", true
	}
	return "", false
}

func zipEntryIsDir(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}

func extractZipEntry(f *zip.File, wrapper, dest string) error {
	rel, ok := stripWrapper(f.Name, wrapper)
	if !ok {
		return nil
	}
	outPath, err := securePath(dest, rel)
	if err != nil {
		return err
	}

	if zipEntryIsDir(f) {
		if err := os.MkdirAll(outPath, 0o755); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf(messages.ArchiveCorruptFmt, err)
	}
	defer func() {
		_ = rc.Close()
	}()
	if err := writeFileFrom(rc, outPath, f.Mode().Perm()); err != nil {
		return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
	}
	return nil
}
