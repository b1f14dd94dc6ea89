package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// StrategyKind discriminates how a downloaded artifact becomes installed
// files.
type StrategyKind string

const (
	// StrategyFile copies the downloaded bytes to a named file as-is.
	StrategyFile StrategyKind = "File"
	// StrategyZipFile extracts the download as a zip archive.
	StrategyZipFile StrategyKind = "ZipFile"
	// StrategyGzippedTarball extracts the download as a gzipped tarball.
	StrategyGzippedTarball StrategyKind = "GzippedTarball"
	// StrategyMsi hands the download to the Windows installer service.
	StrategyMsi StrategyKind = "Msi"
)

// FileStrategy carries the parameters of the raw-file strategy.
type FileStrategy struct {
	// Name is the file name to write under the install directory.
	Name string `json:"name"`
	// Chmod requests the execute bit on platforms that have one.
	Chmod bool `json:"chmod"`
}

// MsiStrategy carries the parameters of the Windows installer strategy.
type MsiStrategy struct {
	ProductCode string `json:"product_code"`
}

// Strategy is the tagged install-strategy variant of a download spec.
//
// The wire form is either a bare string for parameterless variants
// ("ZipFile", "GzippedTarball") or a single-key object for parameterized
// ones ({"File": {...}}, {"Msi": {...}}).
type Strategy struct {
	Kind StrategyKind
	File *FileStrategy
	Msi  *MsiStrategy
}

// UnmarshalJSON decodes either wire form of the variant.
func (s *Strategy) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		switch StrategyKind(name) {
		case StrategyZipFile, StrategyGzippedTarball:
			s.Kind = StrategyKind(name)
			return nil
		default:
			return fmt.Errorf(messages.ManifestUnknownStrategyFmt, name)
		}
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf(messages.ManifestInvalidStrategyFmt, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf(messages.ManifestInvalidStrategyFmt,
			fmt.Errorf(messages.ManifestStrategyNotSingleKey))
	}
	for tag, payload := range tagged {
		switch StrategyKind(tag) {
		case StrategyFile:
			var file FileStrategy
			if err := json.Unmarshal(payload, &file); err != nil {
				return fmt.Errorf(messages.ManifestInvalidStrategyFmt, err)
			}
			s.Kind = StrategyFile
			s.File = &file
		case StrategyMsi:
			var msi MsiStrategy
			if err := json.Unmarshal(payload, &msi); err != nil {
				return fmt.Errorf(messages.ManifestInvalidStrategyFmt, err)
			}
			s.Kind = StrategyMsi
			s.Msi = &msi
		default:
			return fmt.Errorf(messages.ManifestUnknownStrategyFmt, tag)
		}
	}
	return nil
}
