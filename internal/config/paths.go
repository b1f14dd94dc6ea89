package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

const appDirName = "larkspur"

// Paths holds the resolved locations the installer reads and writes.
type Paths struct {
	// ConfigDir holds config.toml, the install state file, and the .env
	// file merged into launched products.
	ConfigDir  string
	ConfigFile string
	StateFile  string
	EnvFile    string
	// InstallRoot is the base directory product install directories are
	// created under.
	InstallRoot string
}

// Resolve determines all paths. The config directory comes from
// LSI_CONFIG_DIR or the platform user config dir; the install root comes
// from cfg.InstallRoot (with ~ expansion) or defaults to a directory next
// to the config files.
func Resolve(cfg *Config) (Paths, error) {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf(messages.ConfigResolveDirFmt, err)
		}
		configDir = filepath.Join(base, appDirName)
	}

	installRoot := filepath.Join(configDir, "apps")
	if cfg != nil && cfg.InstallRoot != "" {
		expanded, err := homedir.Expand(cfg.InstallRoot)
		if err != nil {
			return Paths{}, fmt.Errorf(messages.ConfigResolveInstallRootFmt, cfg.InstallRoot, err)
		}
		installRoot = expanded
	}

	return Paths{
		ConfigDir:   configDir,
		ConfigFile:  filepath.Join(configDir, "config.toml"),
		StateFile:   filepath.Join(configDir, "install.json"),
		EnvFile:     filepath.Join(configDir, ".env"),
		InstallRoot: installRoot,
	}, nil
}

// ProductDir returns the install directory for a product's directory
// fragment.
func (p Paths) ProductDir(installDirectory string) string {
	return filepath.Join(p.InstallRoot, installDirectory)
}
