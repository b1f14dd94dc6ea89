// Package state persists per-product install records between runs.
package state

// InstalledProduct is the persisted record for one product. A record is
// created the first time any operation references its id and is never
// deleted: remove clears the installed fields but keeps identity and the
// prerelease preference.
type InstalledProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        *string `json:"icon,omitempty"`
	// Version is the installed version string, or nil when not installed.
	Version *string `json:"version"`
	// InstallDirectory is the absolute directory the product was installed
	// into, recorded so removal works without a catalog.
	InstallDirectory *string `json:"install_directory,omitempty"`
	// ExecuteWorkingDirectory is the absolute working directory to launch
	// from, when the product can be started.
	ExecuteWorkingDirectory *string `json:"execute_working_directory"`
	// MainExecutable is the absolute path of the product entry point, when
	// the product can be started.
	MainExecutable *string `json:"main_executable"`
	// UsePrerelease selects the prerelease channel for version resolution.
	UsePrerelease bool `json:"use_prerelease"`
}

// Installed reports whether a version is currently recorded.
func (p *InstalledProduct) Installed() bool {
	return p.Version != nil
}

// ClearInstall nulls the installed fields, keeping identity and the
// prerelease preference.
func (p *InstalledProduct) ClearInstall() {
	p.Version = nil
	p.InstallDirectory = nil
	p.MainExecutable = nil
	p.ExecuteWorkingDirectory = nil
}

// Install is the persisted root structure: product id to record.
type Install struct {
	Products map[string]*InstalledProduct `json:"products"`
}

// NewInstall returns an empty install structure.
func NewInstall() *Install {
	return &Install{Products: make(map[string]*InstalledProduct)}
}

// GetOrCreate returns the record for id, inserting a default record when
// absent. This is the only sanctioned mutation entry point into the map.
func (in *Install) GetOrCreate(id string) *InstalledProduct {
	if in.Products == nil {
		in.Products = make(map[string]*InstalledProduct)
	}
	if p, ok := in.Products[id]; ok {
		return p
	}
	p := &InstalledProduct{}
	in.Products[id] = p
	return p
}

// Get returns the record for id without creating one.
func (in *Install) Get(id string) (*InstalledProduct, bool) {
	p, ok := in.Products[id]
	return p, ok
}
