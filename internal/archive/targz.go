package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// ExtractTarGz extracts a gzip-compressed tarball at archivePath into dest.
// A single wrapping top-level directory is detected in a first pass and
// stripped during extraction; genuine multi-root archives extract verbatim.
func ExtractTarGz(archivePath, dest string) error {
	wrapper, err := detectTarWrapper(archivePath)
	if err != nil {
		return err
	}
	if wrapper != "" {
		log.Debugf("stripping wrapper directory %q from tarball", wrapper)
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ArchiveOpenFmt, err)
	}
	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf(messages.ArchiveCorruptFmt, err)
	}
	defer func() {
		_ = gz.Close()
	}()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.ArchiveCorruptFmt, err)
		}
		if err := extractTarEntry(tr, header, wrapper, dest); err != nil {
			return err
		}
	}
}

// detectTarWrapper runs the first pass over the tarball entries.
func detectTarWrapper(archivePath string) (string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf(messages.ArchiveOpenFmt, err)
	}
	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf(messages.ArchiveCorruptFmt, err)
	}
	defer func() {
		_ = gz.Close()
	}()

	scan := wrapperScan{}
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf(messages.ArchiveCorruptFmt, err)
		}
		if !tarEntryRelevant(header) {
			continue
		}
		if scan.observe(header.Name, header.Typeflag == tar.TypeDir) {
			break
		}
	}
	return scan.wrapper(), nil
}

// tarEntryRelevant filters metadata pseudo-entries out of wrapper detection
// and extraction.
func tarEntryRelevant(header *tar.Header) bool {
	switch header.Typeflag {
	case tar.TypeDir, tar.TypeReg, tar.TypeSymlink:
		return true
	default:
		return false
	}
}

func extractTarEntry(tr *tar.Reader, header *tar.Header, wrapper, dest string) error {
	if !tarEntryRelevant(header) {
		return nil
	}
	rel, ok := stripWrapper(header.Name, wrapper)
	if !ok {
		return nil
	}
	outPath, err := securePath(dest, rel)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(outPath, 0o755); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
	case tar.TypeSymlink:
		if err := secureLinkTarget(dest, outPath, header.Linkname); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
		if err := os.Symlink(header.Linkname, outPath); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
		if err := writeFileFrom(tr, outPath, header.FileInfo().Mode().Perm()); err != nil {
			return fmt.Errorf(messages.ArchiveWriteFmt, rel, err)
		}
	}
	return nil
}

func writeFileFrom(r io.Reader, outPath string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
