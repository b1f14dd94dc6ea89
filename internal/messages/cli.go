package messages

// CLI and interactive picker messages.
const (
	// RootUse is the root command usage line.
	RootUse   = "lsi"
	RootShort = "Larkspur installer: install, update, and launch Larkspur products"

	ListUse      = "list"
	ListShort    = "List available and installed products"
	InstallUse   = "install <product-id>"
	InstallShort = "Install or update a product"
	RemoveUse    = "remove <product-id>"
	RemoveShort  = "Remove an installed product"
	StartUse     = "start <product-id>"
	StartShort   = "Launch an installed product"
	PrereleaseUse      = "prerelease <product-id> <on|off>"
	PrereleaseShort    = "Toggle the prerelease channel for a product"
	SelfUpdateUse      = "self-update"
	SelfUpdateShort    = "Check for a newer installer release"
	PrereleaseInvalidFmt = "invalid prerelease setting %q: expected on or off"

	// VersionTemplate renders `lsi --version`.
	VersionTemplate = "{{.Version}}\n"
	VersionFullFmt  = "%s (commit %s, built %s)"

	ListOfflineNotice  = "Working offline: showing installed products only.\n"
	ListEmptyOffline   = "No products installed.\n"
	ListHeaderFmt      = "%-20s %-12s %-12s %s\n"
	ListRowFmt         = "%-20s %-12s %-12s %s\n"
	ListNotInstalled   = "-"
	ListNoOSMatch      = "(unavailable)"
	ListPrereleaseMark = " (prerelease)"

	InstallDoneFmt   = "Installed %s\n"
	RemoveDoneFmt    = "Removed %s\n"
	StartDoneFmt     = "Started %s\n"
	PrereleaseSetFmt = "Prerelease channel for %s: %s\n"

	SelfUpdateUpToDateFmt  = "lsi %s is up to date.\n"
	SelfUpdateDevBuildFmt  = "Running a dev build; latest release is %s.\n"
	SelfUpdateAvailableFmt = "A new installer version %s is available (you have %s).\n"
	SelfUpdateDownloadFmt  = "Download: %s\n"
	SelfUpdateManual       = "This installation cannot update itself; install the new version manually.\n"

	// PickerRequiresTerminal indicates interactive mode needs a terminal.
	PickerRequiresTerminal = "interactive mode requires a terminal; use subcommands instead (see `lsi --help`)"
	PickerProductTitle     = "Select a product"
	PickerActionTitleFmt   = "What do you want to do with %s?"

	PickerProductRowFmt          = "%s (installed %s)"
	PickerProductRowNotInstalled = "%s (not installed)"

	PickerActionInstallFmt      = "Install %s"
	PickerActionUpdateFmt       = "Update to %s"
	PickerActionStart           = "Start"
	PickerActionRemove          = "Remove"
	PickerActionUsePrerelease   = "Switch to prerelease versions"
	PickerActionUseRelease      = "Switch to release versions"
	PickerActionBack            = "Back"
	PickerQuit                  = "Quit"
)
