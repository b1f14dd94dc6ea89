// Package config loads the installer's own configuration and resolves the
// filesystem locations it works against.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// DefaultManifestURL is the catalog endpoint baked into release builds.
const DefaultManifestURL = "https://releases.larkspur-suite.dev/manifest.json"

// DefaultUpdateEndpoint advertises new installer binaries.
const DefaultUpdateEndpoint = "https://releases.larkspur-suite.dev/installer/latest.json"

// Environment overrides. They take precedence over the config file so
// tests and CI can redirect the installer without writing one.
const (
	EnvManifestURL = "LSI_MANIFEST_URL"
	EnvWorkOffline = "LSI_WORK_OFFLINE"
	EnvConfigDir   = "LSI_CONFIG_DIR"
)

// Config is the installer configuration read from config.toml.
type Config struct {
	// ManifestURL overrides the catalog endpoint.
	ManifestURL string `toml:"manifest_url"`
	// UpdateEndpoint overrides the installer self-update endpoint.
	UpdateEndpoint string `toml:"update_endpoint"`
	// InstallRoot overrides where product directories are created.
	// A leading ~ expands to the user's home directory.
	InstallRoot string `toml:"install_root"`
	// WorkOffline skips the manifest fetch and lists only installed
	// products.
	WorkOffline bool `toml:"work_offline"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ManifestURL:    DefaultManifestURL,
		UpdateEndpoint: DefaultUpdateEndpoint,
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf(messages.ConfigInvalidFmt, path, err)
		}
		if cfg.ManifestURL == "" {
			cfg.ManifestURL = DefaultManifestURL
		}
		if cfg.UpdateEndpoint == "" {
			cfg.UpdateEndpoint = DefaultUpdateEndpoint
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if url := strings.TrimSpace(os.Getenv(EnvManifestURL)); url != "" {
		cfg.ManifestURL = url
	}
	if offline := strings.TrimSpace(os.Getenv(EnvWorkOffline)); offline != "" {
		cfg.WorkOffline = true
	}
}
