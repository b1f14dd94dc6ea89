package messages

// Configuration messages.
const (
	// ConfigReadFmt formats config file read errors.
	ConfigReadFmt    = "read config %s: %w"
	ConfigInvalidFmt = "invalid config %s: %w"

	ConfigResolveDirFmt         = "resolve config dir: %w"
	ConfigResolveInstallRootFmt = "resolve install root %q: %w"
)
